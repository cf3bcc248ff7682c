package model

import "time"

// ClientWindowCounter tracks one client's requests inside the current fixed window.
type ClientWindowCounter struct {
	Count     int       `json:"count"`
	ResetTime time.Time `json:"reset_time"`
}

type RateLimitConfig struct {
	EndpointType string        `json:"endpoint_type"`
	MaxRequests  int           `json:"max_requests"`
	WindowSize   time.Duration `json:"window_size"`
	Description  string        `json:"description"`
}
