package somweb

import (
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRequestTimeout_Valid(t *testing.T) {
	cfg := defaultConfig()

	err := WithRequestTimeout(10 * time.Second)(cfg)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.requestTimeout)
}

func TestWithRequestTimeout_Invalid(t *testing.T) {
	cfg := defaultConfig()

	err := WithRequestTimeout(0)(cfg)
	assert.Error(t, err)

	err = WithRequestTimeout(-1 * time.Second)(cfg)
	assert.Error(t, err)
}

func TestWithPollInterval_Valid(t *testing.T) {
	cfg := defaultConfig()

	err := WithPollInterval(2 * time.Second)(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.pollInterval)
}

func TestWithPollInterval_Invalid(t *testing.T) {
	cfg := defaultConfig()

	err := WithPollInterval(0)(cfg)
	assert.Error(t, err)

	err = WithPollInterval(-1 * time.Second)(cfg)
	assert.Error(t, err)
}

func TestWithHTTPClient(t *testing.T) {
	cfg := defaultConfig()
	assert.Nil(t, cfg.httpClient)

	hc := &http.Client{}
	err := WithHTTPClient(hc)(cfg)
	require.NoError(t, err)
	assert.Equal(t, hc, cfg.httpClient)
}

func TestWithHTTPClient_Nil(t *testing.T) {
	cfg := defaultConfig()

	err := WithHTTPClient(nil)(cfg)
	assert.Error(t, err)
}

func TestWithLogger(t *testing.T) {
	cfg := defaultConfig()
	assert.Nil(t, cfg.logger)

	logger := slog.Default()
	err := WithLogger(logger)(cfg)
	require.NoError(t, err)
	assert.Equal(t, logger, cfg.logger)
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	assert.Nil(t, cfg.httpClient)
	assert.Equal(t, 30*time.Second, cfg.requestTimeout)
	assert.Equal(t, 1*time.Second, cfg.pollInterval)
	assert.Nil(t, cfg.logger)
}
