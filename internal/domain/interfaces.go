package domain

import (
	"context"
	"time"
)

// MarketDataLookup is the read capability the advisory engine depends on.
// Both methods return the first record the store yields for an exact key match
// (newest first) and nil when nothing matches. Errors are transport or driver
// failures only; a missing record is never an error.
type MarketDataLookup interface {
	FindMarketSignal(ctx context.Context, product string) (*MarketSignal, error)
	FindCountrySignal(ctx context.Context, country string) (*CountrySignal, error)
}

// Clock supplies the current time. Engines take one so that calendar-dependent
// rules can be pinned in tests.
type Clock func() time.Time

// SystemClock returns a Clock reading the wall time in loc (time.Local when nil).
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// FixedClock always returns t
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
