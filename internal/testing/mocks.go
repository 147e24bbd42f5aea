package testing

import (
	"context"
	"sync"

	"github.com/aristath/exportadvisor/internal/domain"
)

// FakeLookup is an in-memory domain.MarketDataLookup.
// Products and countries map to the record the store would return first.
// Setting Err makes every lookup fail with it.
type FakeLookup struct {
	mu        sync.Mutex
	Markets   map[string]domain.MarketSignal
	Countries map[string]domain.CountrySignal
	Err       error

	MarketCalls  []string
	CountryCalls []string
}

// NewFakeLookup creates an empty fake lookup
func NewFakeLookup() *FakeLookup {
	return &FakeLookup{
		Markets:   make(map[string]domain.MarketSignal),
		Countries: make(map[string]domain.CountrySignal),
	}
}

// WithMarket registers a market signal under its product name
func (f *FakeLookup) WithMarket(s domain.MarketSignal) *FakeLookup {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Markets[s.Product] = s
	return f
}

// WithCountry registers a country signal under its country name
func (f *FakeLookup) WithCountry(s domain.CountrySignal) *FakeLookup {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Countries[s.Country] = s
	return f
}

// FindMarketSignal implements domain.MarketDataLookup
func (f *FakeLookup) FindMarketSignal(ctx context.Context, product string) (*domain.MarketSignal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.MarketCalls = append(f.MarketCalls, product)

	if f.Err != nil {
		return nil, f.Err
	}
	s, ok := f.Markets[product]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// FindCountrySignal implements domain.MarketDataLookup
func (f *FakeLookup) FindCountrySignal(ctx context.Context, country string) (*domain.CountrySignal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CountryCalls = append(f.CountryCalls, country)

	if f.Err != nil {
		return nil, f.Err
	}
	s, ok := f.Countries[country]
	if !ok {
		return nil, nil
	}
	return &s, nil
}
