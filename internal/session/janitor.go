package session

import (
	"context"
	"time"

	"github.com/wolfman30/wellness-portal/pkg/logging"
)

// Purger is implemented by stores that keep expired rows until swept.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Janitor periodically removes expired sessions from a Purger.
type Janitor struct {
	store    Purger
	logger   *logging.Logger
	interval time.Duration
}

func NewJanitor(store Purger, logger *logging.Logger) *Janitor {
	if logger == nil {
		logger = logging.Default()
	}
	return &Janitor{store: store, logger: logger, interval: 10 * time.Minute}
}

func (j *Janitor) WithInterval(d time.Duration) *Janitor {
	if d > 0 {
		j.interval = d
	}
	return j
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	j.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *Janitor) sweep(ctx context.Context) {
	if j.store == nil {
		return
	}
	removed, err := j.store.PurgeExpired(ctx)
	if err != nil {
		if ctx.Err() == nil {
			j.logger.Error("session purge failed", "error", err)
		}
		return
	}
	if removed > 0 {
		j.logger.Debug("expired sessions purged", "count", removed)
	}
}
