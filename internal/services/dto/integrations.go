package dto

// StockQuote is the market snapshot attached to public companies when the
// upstream quote service responds in time.
type StockQuote struct {
	Symbol        string   `json:"symbol"`
	CompanyName   string   `json:"company_name,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	PreviousClose *float64 `json:"previous_close,omitempty"`
	Change        *float64 `json:"change,omitempty"`
	ChangePercent *float64 `json:"change_percent,omitempty"`
	MarketCap     *float64 `json:"market_cap,omitempty"`
	Currency      string   `json:"currency,omitempty"`
}

// TaxRecord is one fiscal year of reported income tax, sourced from
// regulatory filings for public companies.
type TaxRecord struct {
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
	Source string  `json:"source"`
}

type TaxDataResponse struct {
	CompanyName string      `json:"company_name"`
	IsPublic    bool        `json:"is_public"`
	YearlyTaxes []TaxRecord `json:"yearly_taxes"`
}
