package quote

import (
	"context"

	"navwatch/internal/model"
)

// Provider defines the standard interface for quote snapshot providers.
// History returns a short recent daily-close history for one instrument,
// chronologically ordered. The retrieval window is wide enough (five
// trading days) to guarantee at least two closes across weekends and
// holidays when the feed is healthy.
type Provider interface {
	History(ctx context.Context, symbol string) ([]model.PricePoint, error)
}
