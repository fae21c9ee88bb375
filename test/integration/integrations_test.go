package integration_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketData_UnconfiguredUpstreamReturns503(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	// No stock API is configured in the test environment, so the quote
	// endpoint must answer with the upstream error envelope rather than
	// panic or hang.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/integrations/market-data/AAPL", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "UPSTREAM_UNAVAILABLE")
}
