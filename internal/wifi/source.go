package wifi

import (
	"context"

	"wifi-finder.klederson.com/internal/signal"
)

// Source produces one batch of samples per call. An active scan asks the
// radio to rescan first; a passive one returns the last cached results.
type Source interface {
	Scan(ctx context.Context, active bool) ([]signal.Sample, error)
}
