package httpx

import "errors"

// ErrUpstreamStatus indicates the upstream returned a non-2xx status.
var ErrUpstreamStatus = errors.New("upstream returned status")
