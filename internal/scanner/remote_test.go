package scanner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteScanner_ParsesFindings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"profanity": ["damn"], "unknown_category": ["x"], "toxic": []}`))
	}))
	defer srv.Close()

	s := NewRemoteScanner(srv.URL, "secret", time.Second)
	result, err := s.Scan(context.Background(), "damn office")
	require.NoError(t, err)

	assert.Equal(t, []string{"damn"}, result.Findings[CategoryProfanity])
	assert.Empty(t, result.Findings[CategoryToxic])
	assert.False(t, result.IsSafe())
}

func TestRemoteScanner_ErrorOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewRemoteScanner(srv.URL, "", time.Second)
	_, err := s.Scan(context.Background(), "anything")
	assert.Error(t, err)
}

func TestRemoteScanner_ErrorOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	s := NewRemoteScanner(srv.URL, "", time.Second)
	_, err := s.Scan(context.Background(), "anything")
	assert.Error(t, err)
}

func TestFallbackScanner_UsesSecondaryOnPrimaryError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	fallback := NewFallbackScanner(
		NewRemoteScanner(srv.URL, "", time.Second),
		NewPatternScanner(),
	)

	result, err := fallback.Scan(context.Background(), "worst company ever")
	require.NoError(t, err)
	assert.Contains(t, result.Findings[CategoryToxic], "worst")
}

func TestFallbackScanner_PrimaryWinsWhenHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	fallback := NewFallbackScanner(
		NewRemoteScanner(srv.URL, "", time.Second),
		NewPatternScanner(),
	)

	// Pattern scanner would flag this, but the healthy primary said clean.
	result, err := fallback.Scan(context.Background(), "worst company ever")
	require.NoError(t, err)
	assert.True(t, result.IsSafe())
}
