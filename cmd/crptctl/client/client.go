// Package client provides the crptd gateway API client used by crptctl.
//
// The GatewayClient wraps the Resty HTTP client: timeouts and retries on
// connection errors are configured once, and every request and response is
// logged through the logging package.
package client

import (
	"fmt"
	"time"

	"github.com/concave-dev/crpt/cmd/crptctl/config"
	"github.com/concave-dev/crpt/internal/api/handlers"
	"github.com/concave-dev/crpt/internal/logging"
	"github.com/go-resty/resty/v2"
)

// GatewayClient wraps Resty client with crptd-specific functionality
type GatewayClient struct {
	client  *resty.Client
	baseURL string
}

// NewGatewayClient creates a client for the gateway at addr ("host:port")
func NewGatewayClient(addr string, timeout time.Duration) *GatewayClient {
	client := resty.New()
	client.SetLogger(logging.RestyLogger{})

	baseURL := fmt.Sprintf("http://%s/api/v1", addr)

	client.
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", fmt.Sprintf("crptctl/%s", config.Version)).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Only retry on connection errors, not HTTP errors
			return err != nil
		})

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logging.Debug("Making API request: %s %s", req.Method, req.URL)
		return nil
	})

	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logging.Debug("API response: %d %s (took %v)",
			resp.StatusCode(), resp.Status(), resp.Time())
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		logging.Debug("API request failed: %s %s - %v", req.Method, req.URL, err)
	})

	return &GatewayClient{
		client:  client,
		baseURL: baseURL,
	}
}

// GetHealth fetches the gateway health status
func (c *GatewayClient) GetHealth() (*handlers.HealthResponse, error) {
	var health handlers.HealthResponse
	if err := c.get("/health", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetQueue fetches the gateway queue and throttle gate statistics
func (c *GatewayClient) GetQueue() (*handlers.QueueResponse, error) {
	var queue handlers.QueueResponse
	if err := c.get("/queue", &queue); err != nil {
		return nil, err
	}
	return &queue, nil
}

func (c *GatewayClient) get(path string, out any) error {
	resp, err := c.client.R().
		SetResult(out).
		Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to connect to gateway: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("gateway returned error: %d %s", resp.StatusCode(), resp.String())
	}
	return nil
}
