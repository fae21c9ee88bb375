package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"iwork_backend/internal/cache"
	"iwork_backend/internal/services/dto"
	"iwork_backend/pkg/apperrors"
)

const stockQuoteCacheTTL = 30 * time.Minute

// StockClient fetches market quotes from the configured upstream. Results
// are cached for thirty minutes; a cache outage only costs extra calls.
type StockClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	cache   cache.Cache
}

func NewStockClient(baseURL, apiKey string, timeout time.Duration, c cache.Cache) *StockClient {
	return &StockClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		cache:   c,
	}
}

// Quote returns the latest snapshot for a stock symbol. Failures surface
// as UpstreamUnavailable; callers attach quotes best-effort and drop them
// on error.
func (s *StockClient) Quote(ctx context.Context, symbol string) (*dto.StockQuote, error) {
	if s.baseURL == "" {
		return nil, apperrors.NewUpstreamUnavailableError("stock", fmt.Errorf("stock API not configured"))
	}

	cacheKey := "stock:quote:" + symbol
	var cached dto.StockQuote
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	endpoint := fmt.Sprintf("%s/quote?symbol=%s", s.baseURL, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailableError("stock", err)
	}
	if s.apiKey != "" {
		req.Header.Set("X-API-Key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailableError("stock", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUpstreamUnavailableError("stock",
			fmt.Errorf("quote endpoint returned status %d for %s", resp.StatusCode, symbol))
	}

	var raw struct {
		Symbol        string   `json:"symbol"`
		CompanyName   string   `json:"company_name"`
		Price         *float64 `json:"price"`
		PreviousClose *float64 `json:"previous_close"`
		MarketCap     *float64 `json:"market_cap"`
		Currency      string   `json:"currency"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, apperrors.NewUpstreamUnavailableError("stock", err)
	}

	quote := &dto.StockQuote{
		Symbol:        symbol,
		CompanyName:   raw.CompanyName,
		Price:         raw.Price,
		PreviousClose: raw.PreviousClose,
		MarketCap:     raw.MarketCap,
		Currency:      raw.Currency,
	}
	if quote.Currency == "" {
		quote.Currency = "USD"
	}
	if raw.Price != nil && raw.PreviousClose != nil && *raw.PreviousClose != 0 {
		change := *raw.Price - *raw.PreviousClose
		changePct := change / *raw.PreviousClose * 100
		quote.Change = round2p(change)
		quote.ChangePercent = round2p(changePct)
	}

	_ = s.cache.Set(ctx, cacheKey, quote, stockQuoteCacheTTL)
	return quote, nil
}
