package ratelimit

import "time"

// Limiter answers whether a client may hit an endpoint category right now.
// When denied, the returned duration says how long until the window resets.
type Limiter interface {
	Allow(clientID, category string) (bool, time.Duration, error)
	LimitFor(category string) Limit
	Stats() Stats
}

// Stats counts what the limiter has seen since start.
type Stats struct {
	TotalRequests   int64 `json:"totalRequests"`
	BlockedRequests int64 `json:"blockedRequests"`
}
