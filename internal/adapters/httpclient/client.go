package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"yasen/internal/metrics"

	"golang.org/x/time/rate"
)

const DefaultTimeout = 10 * time.Second

// New returns a client for one upstream service. Requests are limited to rps
// per second and recorded under the service label.
func New(service string, rps float64) *http.Client {
	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: NewMetricsRoundTripper(service, NewRateLimitRoundTripper(rps, http.DefaultTransport)),
	}
}

type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// GetJSON issues a GET request and decodes a 200 response into dest.
func GetJSON(ctx context.Context, client *http.Client, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, URL: req.URL.Redacted()}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// -- Middleware --

type MetricsRoundTripper struct {
	Service string
	Proxied http.RoundTripper
}

func NewMetricsRoundTripper(service string, proxied http.RoundTripper) *MetricsRoundTripper {
	if proxied == nil {
		proxied = http.DefaultTransport
	}
	return &MetricsRoundTripper{Service: service, Proxied: proxied}
}

func (mrt *MetricsRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := mrt.Proxied.RoundTrip(req)
	duration := time.Since(start).Seconds()

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	metrics.HTTPRequestDuration.WithLabelValues(mrt.Service, status).Observe(duration)
	metrics.HTTPRequests.WithLabelValues(mrt.Service, status).Inc()

	return resp, err
}

type RateLimitRoundTripper struct {
	Limiter *rate.Limiter
	Proxied http.RoundTripper
}

func NewRateLimitRoundTripper(rps float64, proxied http.RoundTripper) *RateLimitRoundTripper {
	if proxied == nil {
		proxied = http.DefaultTransport
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &RateLimitRoundTripper{
		Limiter: rate.NewLimiter(rate.Limit(rps), burst),
		Proxied: proxied,
	}
}

func (rrt *RateLimitRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := rrt.Limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	return rrt.Proxied.RoundTrip(req)
}
