package httputil

import (
	"net/http"
	"time"
)

const DefaultTimeout = 15 * time.Second

// NewClient returns an HTTP client for upstream weather calls. Idle
// connections are pooled per host since a refresh hits the same API
// once per drop zone.
func NewClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 16
	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: transport,
	}
}
