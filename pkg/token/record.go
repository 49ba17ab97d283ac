// Package token resolves trading symbols to on-chain token records.
// Resolution consults a static table of well-known tokens first, then a
// prioritized cascade of external lookup sources whose answers are
// merged by address agreement.
package token

import "strings"

// DefaultDecimals is assumed when no source reports a decimal count.
const DefaultDecimals = 18

// DecimalsUnknown marks a candidate whose source does not carry decimal
// information. Resolved records never expose it; the resolver replaces
// it with DefaultDecimals.
const DecimalsUnknown = -1

// Record describes one token on one chain.
type Record struct {
	Symbol   string `json:"symbol"`
	ChainID  int64  `json:"chain_id"`
	Address  string `json:"address"`
	Decimals int    `json:"decimals"`
	Name     string `json:"name,omitempty"`

	// SourceName identifies where the record came from: "static", a
	// lookup source name, or the winning source of a merged vote.
	SourceName string `json:"source,omitempty"`

	// Verified is set for static records and for records confirmed by
	// at least two independent sources.
	Verified bool `json:"verified"`
}

// NormalizeSymbol canonicalizes a symbol for table and cache keys.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
