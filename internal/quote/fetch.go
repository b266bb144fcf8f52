package quote

import (
	"context"
	"log/slog"
	"sync"

	"navwatch/internal/model"
)

// FetchAll retrieves the histories for a batch of symbols concurrently.
// Each goroutine writes into its own pre-allocated slot, so no locking is
// needed beyond the final assembly. A failed symbol yields a nil history
// and a warning log; the batch always completes, it never aborts on a bad
// feed.
func FetchAll(ctx context.Context, provider Provider, symbols []string, logger *slog.Logger) map[string][]model.PricePoint {
	histories := make([][]model.PricePoint, len(symbols))

	var wg sync.WaitGroup
	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			history, err := provider.History(ctx, symbol)
			if err != nil {
				logger.Warn("quote fetch failed, substituting empty history", "symbol", symbol, "error", err)
				return
			}
			histories[i] = history
		}(i, symbol)
	}
	wg.Wait()

	result := make(map[string][]model.PricePoint, len(symbols))
	for i, symbol := range symbols {
		result[symbol] = histories[i]
	}
	return result
}
