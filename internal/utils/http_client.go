package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://localhost:8080")
//	resp, err := client.R().SetAuthToken(token).Get("/api/dashboard")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a JSON client for the portal API rooted at baseURL.
// Each call returns an independent client instance.
func NewHTTPClient(baseURL string) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(10 * time.Second)

	return &HTTPClient{Client: client}
}
