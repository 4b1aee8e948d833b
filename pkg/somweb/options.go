package somweb

import (
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// ClientOption configures a Client.
type ClientOption func(*clientConfig) error

// clientConfig holds the configuration for a Client.
type clientConfig struct {
	httpClient     *http.Client
	requestTimeout time.Duration
	pollInterval   time.Duration
	logger         *slog.Logger
}

// defaultConfig returns the default client configuration.
func defaultConfig() *clientConfig {
	return &clientConfig{
		httpClient:     nil,
		requestTimeout: 30 * time.Second,
		pollInterval:   1 * time.Second,
		logger:         nil,
	}
}

// WithHTTPClient sets the underlying HTTP client, for callers that want to
// share a connection pool or supply a custom transport. The client's cookie
// jar is replaced so the gateway session cookie can be tracked.
// By default a dedicated HTTP client is created.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *clientConfig) error {
		if hc == nil {
			return errors.New("http client must not be nil")
		}
		c.httpClient = hc
		return nil
	}
}

// WithRequestTimeout sets the timeout applied to each request when no
// deadline is set on the context.
// Default is 30 seconds.
func WithRequestTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) error {
		if d <= 0 {
			return errors.New("request timeout must be positive")
		}
		c.requestTimeout = d
		return nil
	}
}

// WithPollInterval sets the fixed interval between status checks in
// WaitForDoorState. There is no backoff or jitter.
// Default is 1 second.
func WithPollInterval(d time.Duration) ClientOption {
	return func(c *clientConfig) error {
		if d <= 0 {
			return errors.New("poll interval must be positive")
		}
		c.pollInterval = d
		return nil
	}
}

// WithLogger sets a structured logger for debug and error logging.
// By default, no logging is performed.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *clientConfig) error {
		c.logger = logger
		return nil
	}
}
