// Package rates implements exchange-rate providers backed by external quote
// services.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chriscouch/ledgercore/internal/core/domain"
	portssvc "github.com/chriscouch/ledgercore/internal/core/ports/services"
)

const defaultRequestTimeout = 10 * time.Second

// HTTPProvider quotes historical rates from a JSON-over-HTTP rate service.
// It expects GET {baseURL}/historical?base=USD&quote=EUR&date=2024-01-15 to
// answer {"rate": "0.9215"}.
type HTTPProvider struct {
	name    string
	baseURL string
	client  *http.Client
}

var _ portssvc.RateProvider = (*HTTPProvider)(nil)

// NewHTTPProvider creates a rate provider for the given quote service.
// A nil client falls back to a default with a request timeout.
func NewHTTPProvider(name, baseURL string, client *http.Client) *HTTPProvider {
	if client == nil {
		client = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &HTTPProvider{name: name, baseURL: baseURL, client: client}
}

// Name identifies the provider; recorded as the rate's source.
func (p *HTTPProvider) Name() string {
	return p.name
}

type historicalRateResponse struct {
	Rate decimal.Decimal `json:"rate"`
}

// HistoricalRate quotes the pair for the given date. Errors come back
// unchanged to the caller; nothing is cached here.
func (p *HTTPProvider) HistoricalRate(ctx context.Context, pair domain.CurrencyPair, date time.Time) (decimal.Decimal, error) {
	query := url.Values{}
	query.Set("base", pair.Base)
	query.Set("quote", pair.Quote)
	query.Set("date", date.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/historical?"+query.Encode(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build rate request for %s: %w", pair, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate provider %s unreachable: %w", p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate provider %s returned status %d for %s", p.name, resp.StatusCode, pair)
	}

	var body historicalRateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("rate provider %s returned malformed body for %s: %w", p.name, pair, err)
	}
	if body.Rate.IsZero() {
		return decimal.Zero, fmt.Errorf("rate provider %s has no rate for %s on %s", p.name, pair, date.Format("2006-01-02"))
	}
	return body.Rate, nil
}
