package dex

import (
	"strconv"
	"strings"
)

// amountStrategy names one way of pulling the quoted amount out of a
// venue response. Aggregator APIs rename their amount field across
// versions, so adapters try a fixed list of strategies in order.
type amountStrategy struct {
	name    string
	extract func(body map[string]interface{}) (string, bool)
}

// topField extracts a top-level field by key.
func topField(key string) amountStrategy {
	return amountStrategy{
		name: key,
		extract: func(body map[string]interface{}) (string, bool) {
			return stringField(body, key)
		},
	}
}

// firstElemField extracts a field from the first element of a
// top-level array, the shape older Jupiter responses use.
func firstElemField(arrayKey, key string) amountStrategy {
	return amountStrategy{
		name: arrayKey + "[0]." + key,
		extract: func(body map[string]interface{}) (string, bool) {
			arr, ok := body[arrayKey].([]interface{})
			if !ok || len(arr) == 0 {
				return "", false
			}
			elem, ok := arr[0].(map[string]interface{})
			if !ok {
				return "", false
			}
			return stringField(elem, key)
		},
	}
}

// runStrategies tries each strategy in order and returns the first hit
// together with the winning strategy's name.
func runStrategies(body map[string]interface{}, strategies []amountStrategy) (value, name string, ok bool) {
	for _, s := range strategies {
		if v, found := s.extract(body); found {
			return v, s.name, true
		}
	}
	return "", "", false
}

// strategyNames joins strategy names for failure messages.
func strategyNames(strategies []amountStrategy) string {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = s.name
	}
	return strings.Join(names, ", ")
}

// stringField reads a field that venues serve as either a JSON string
// or a bare number.
func stringField(m map[string]interface{}, key string) (string, bool) {
	switch v := m[key].(type) {
	case string:
		if v != "" {
			return v, true
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}
	return "", false
}
