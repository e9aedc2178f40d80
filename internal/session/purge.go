// purge.go houses the expiry sweep for stores that keep dead rows around.
// Every interval it asks the store to drop expired sessions, logs the count,
// and hands it to onPurge (the boot code feeds a Prometheus counter).
//
// Redis expires keys on its own and does not implement Purger.
package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger is implemented by MemoryStore and SQLStore.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// RunPurger blocks until ctx ends.  A failed sweep is logged and retried on
// the next tick.
func RunPurger(ctx context.Context, p Purger, every time.Duration, log *zap.SugaredLogger, onPurge func(int64)) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := p.PurgeExpired(ctx)
			if err != nil {
				if ctx.Err() == nil {
					log.Warnw("session purge failed", "err", err)
				}
				continue
			}
			if n > 0 {
				log.Infow("expired sessions purged", "count", n)
				if onPurge != nil {
					onPurge(n)
				}
			}
		}
	}
}
