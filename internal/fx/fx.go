package fx

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wishbox/wishbox/internal/adapter"
	"github.com/wishbox/wishbox/internal/domain"
	"github.com/wishbox/wishbox/internal/logger"
)

// fallbackRates are the units-per-USD table used when the provider is
// unreachable. Values are refreshed manually and only need to be plausible;
// the engine's invariants do not depend on rate accuracy.
var fallbackRates = map[domain.Currency]float64{
	domain.CurrencyUSD: 1,
	domain.CurrencyEUR: 0.92,
	domain.CurrencyGBP: 0.79,
	domain.CurrencyRUB: 76.6,
}

// Converter translates display-currency amounts into reference-currency cents
//
//go:generate mockgen -source=fx.go -destination=../mocks/fx.go -package=mocks -mock_names=Converter=MockConverter
type Converter interface {
	// ConvertToUSDCents converts amountCents of the given currency into USD
	// cents, rounding half away from zero
	ConvertToUSDCents(ctx context.Context, amountCents int64, currency domain.Currency) (int64, error)
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Service fetches USD-base exchange rates and caches them in memory. Rates
// from the provider are kept for CacheTTL; when a fetch fails the fallback
// table is served for the shorter FallbackTTL so the provider is retried soon.
type Service struct {
	providerURL string
	cacheTTL    time.Duration
	fallbackTTL time.Duration

	httpClient adapter.HTTPClient
	clock      adapter.Clock

	mu         sync.Mutex
	rates      map[domain.Currency]float64
	expiresAt  time.Time
	isFallback bool
}

// NewService creates a rate converter backed by the given provider endpoint
func NewService(providerURL string, cacheTTL, fallbackTTL time.Duration, httpClient adapter.HTTPClient, clock adapter.Clock) *Service {
	if cacheTTL == 0 {
		cacheTTL = 15 * time.Minute
	}
	if fallbackTTL == 0 {
		fallbackTTL = 5 * time.Minute
	}
	return &Service{
		providerURL: providerURL,
		cacheTTL:    cacheTTL,
		fallbackTTL: fallbackTTL,
		httpClient:  httpClient,
		clock:       clock,
	}
}

// ConvertToUSDCents converts amountCents of the given currency into USD cents.
// The reference currency converts as identity without touching the cache.
func (s *Service) ConvertToUSDCents(ctx context.Context, amountCents int64, currency domain.Currency) (int64, error) {
	if currency == domain.ReferenceCurrency {
		return amountCents, nil
	}
	if !currency.Valid() {
		return 0, fmt.Errorf("unsupported currency %q: %w", currency, domain.ErrConversionFailed)
	}

	rate, err := s.rateToUSD(ctx, currency)
	if err != nil {
		return 0, err
	}
	if rate <= 0 {
		return 0, fmt.Errorf("non-positive rate for %s: %w", currency, domain.ErrConversionFailed)
	}

	// math.Round ties away from zero, which is the rounding the ledger wants
	return int64(math.Round(float64(amountCents) / rate)), nil
}

// rateToUSD returns the units-per-USD rate for the currency, refreshing the
// cache when stale
func (s *Service) rateToUSD(ctx context.Context, currency domain.Currency) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rates == nil || s.clock.Now().After(s.expiresAt) {
		s.refreshLocked(ctx)
	}

	rate, ok := s.rates[currency]
	if !ok {
		return 0, fmt.Errorf("no rate for %s: %w", currency, domain.ErrConversionFailed)
	}
	return rate, nil
}

// refreshLocked replaces the cached table, falling back to the static table
// when the provider call fails. Callers hold s.mu.
func (s *Service) refreshLocked(ctx context.Context) {
	rates, err := s.fetchRates(ctx)
	now := s.clock.Now()
	if err != nil {
		logger.WarnCtx(ctx, "exchange rate fetch failed, serving fallback table",
			zap.Error(err))
		s.rates = fallbackRates
		s.expiresAt = now.Add(s.fallbackTTL)
		s.isFallback = true
		return
	}

	s.rates = rates
	s.expiresAt = now.Add(s.cacheTTL)
	s.isFallback = false
}

func (s *Service) fetchRates(ctx context.Context) (map[domain.Currency]float64, error) {
	symbols := make([]string, 0, len(domain.SupportedCurrencies)-1)
	for _, c := range domain.SupportedCurrencies {
		if c != domain.ReferenceCurrency {
			symbols = append(symbols, string(c))
		}
	}

	endpoint := fmt.Sprintf("%s/latest?%s", strings.TrimRight(s.providerURL, "/"),
		url.Values{
			"from": []string{string(domain.ReferenceCurrency)},
			"to":   []string{strings.Join(symbols, ",")},
		}.Encode())

	var resp ratesResponse
	if err := s.httpClient.Get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	if len(resp.Rates) == 0 {
		return nil, fmt.Errorf("rate provider returned no rates")
	}

	rates := map[domain.Currency]float64{domain.ReferenceCurrency: 1}
	for _, c := range domain.SupportedCurrencies {
		if c == domain.ReferenceCurrency {
			continue
		}
		rate, ok := resp.Rates[string(c)]
		if !ok || rate <= 0 {
			return nil, fmt.Errorf("rate provider missing %s", c)
		}
		rates[c] = rate
	}
	return rates, nil
}
