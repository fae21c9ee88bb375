package integrations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"iwork_backend/internal/cache"
	"iwork_backend/pkg/apperrors"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCache(t *testing.T) cache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	return cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestStockClient_QuoteComputesChange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "k", r.Header.Get("X-API-Key"))
		w.Write([]byte(`{"symbol":"AAPL","company_name":"Apple Inc.","price":210.5,"previous_close":200.0,"currency":"USD"}`))
	}))
	defer srv.Close()

	c := NewStockClient(srv.URL, "k", time.Second, testCache(t))
	quote, err := c.Quote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", quote.Symbol)
	require.NotNil(t, quote.Change)
	assert.Equal(t, 10.5, *quote.Change)
	require.NotNil(t, quote.ChangePercent)
	assert.Equal(t, 5.25, *quote.ChangePercent)
}

func TestStockClient_QuoteCaches(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"symbol":"MSFT","price":100.0,"previous_close":100.0}`))
	}))
	defer srv.Close()

	c := NewStockClient(srv.URL, "", time.Second, testCache(t))
	_, err := c.Quote(context.Background(), "MSFT")
	require.NoError(t, err)
	_, err = c.Quote(context.Background(), "MSFT")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestStockClient_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewStockClient(srv.URL, "", time.Second, testCache(t))
	_, err := c.Quote(context.Background(), "AAPL")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeUpstreamUnavailable, appErr.Code)
}

func TestStockClient_NotConfigured(t *testing.T) {
	c := NewStockClient("", "", time.Second, testCache(t))
	_, err := c.Quote(context.Background(), "AAPL")
	assert.Error(t, err)
}

func TestTaxClient_ParsesFilings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/CIK0000320193.json", r.URL.Path)
		w.Write([]byte(`{"facts":{"us-gaap":{"IncomeTaxExpenseBenefit":{"units":{"USD":[
			{"fy":2021,"val":1000},
			{"fy":2022,"val":2000},
			{"fy":2023,"val":3000},
			{"fy":2023,"val":3500}
		]}}}}}`))
	}))
	defer srv.Close()

	c := NewTaxClient(srv.URL, time.Second, testCache(t))
	data, err := c.CompanyTaxData(context.Background(), "Apple", "320193")
	require.NoError(t, err)

	assert.True(t, data.IsPublic)
	require.Len(t, data.YearlyTaxes, 3)
	// Most recent year first, later entries for a year win.
	assert.Equal(t, 2023, data.YearlyTaxes[0].Year)
	assert.Equal(t, 3500.0, data.YearlyTaxes[0].Amount)
	assert.Equal(t, "SEC EDGAR", data.YearlyTaxes[0].Source)
}

func TestTaxClient_EstimatesForPrivateCompanies(t *testing.T) {
	c := NewTaxClient("", time.Second, testCache(t))

	data, err := c.CompanyTaxData(context.Background(), "Small Private Co", "")
	require.NoError(t, err)

	assert.False(t, data.IsPublic)
	assert.Len(t, data.YearlyTaxes, 5)
	assert.Equal(t, "Estimated", data.YearlyTaxes[0].Source)

	// Deterministic: same name, same estimate.
	again, err := c.CompanyTaxData(context.Background(), "Small Private Co", "")
	require.NoError(t, err)
	assert.Equal(t, data.YearlyTaxes, again.YearlyTaxes)
}

func TestTaxClient_FallsBackToEstimateOnUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewTaxClient(srv.URL, time.Second, testCache(t))
	data, err := c.CompanyTaxData(context.Background(), "Apple", "320193")
	require.NoError(t, err)

	assert.False(t, data.IsPublic)
	require.Len(t, data.YearlyTaxes, 5)
	assert.Equal(t, "Estimated", data.YearlyTaxes[0].Source)
}
