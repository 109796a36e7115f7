package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Refresher updates the NAV cache from the external provider.
type Refresher interface {
	RefreshAll(ctx context.Context) error
}

// Settler confirms pending trade events whose NAV has arrived.
type Settler interface {
	SettlePendingEvents() (int, error)
}

// RefreshJob refreshes market data and then settles whatever pending
// events the new NAVs unlock.
type RefreshJob struct {
	refresher Refresher
	settler   Settler
	timeout   time.Duration
	log       zerolog.Logger
}

// NewRefreshJob creates the scheduled market data refresh job.
func NewRefreshJob(refresher Refresher, settler Settler, log zerolog.Logger) *RefreshJob {
	return &RefreshJob{
		refresher: refresher,
		settler:   settler,
		timeout:   5 * time.Minute,
		log:       log.With().Str("job", "refresh").Logger(),
	}
}

// Name returns the job name.
func (j *RefreshJob) Name() string { return "market-data-refresh" }

// Run refreshes all NAV caches and settles pending events.
func (j *RefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if err := j.refresher.RefreshAll(ctx); err != nil {
		return err
	}

	settled, err := j.settler.SettlePendingEvents()
	if err != nil {
		return err
	}
	if settled > 0 {
		j.log.Info().Int("settled", settled).Msg("Pending events settled")
	}
	return nil
}
