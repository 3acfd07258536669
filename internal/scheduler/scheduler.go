package scheduler

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/lox/skylog/internal/dropzone"
)

const (
	DefaultRefreshInterval     = 30 * time.Minute
	DefaultMaintenanceInterval = time.Hour
	DefaultRetention           = 30 * 24 * time.Hour
)

type Refresher interface {
	Refresh(ctx context.Context, reason string) (dropzone.Summary, error)
}

// Maintainer prunes expired rows. *store.Store satisfies it.
type Maintainer interface {
	DeleteExpiredSessions(now time.Time) (int64, error)
	CleanupRefreshRuns(before time.Time) (int64, error)
	CleanupScanImages(before time.Time) (int64, error)
}

type Scheduler struct {
	refresher           Refresher
	store               Maintainer
	clock               clockwork.Clock
	logger              *zap.SugaredLogger
	refreshInterval     time.Duration
	maintenanceInterval time.Duration
	retention           time.Duration
}

func New(refresher Refresher, store Maintainer, clock clockwork.Clock, logger *zap.SugaredLogger) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Scheduler{
		refresher:           refresher,
		store:               store,
		clock:               clock,
		logger:              logger,
		refreshInterval:     DefaultRefreshInterval,
		maintenanceInterval: DefaultMaintenanceInterval,
		retention:           DefaultRetention,
	}
}

func (s *Scheduler) SetRefreshInterval(d time.Duration) {
	if d > 0 {
		s.refreshInterval = d
	}
}

// SetRetention sets how long refresh audit rows and uploaded scans are kept.
func (s *Scheduler) SetRetention(d time.Duration) {
	if d > 0 {
		s.retention = d
	}
}

// Run refreshes immediately, then on every interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	s.refresh(ctx)
	s.maintain()

	refreshTicker := s.clock.NewTicker(s.refreshInterval)
	maintenanceTicker := s.clock.NewTicker(s.maintenanceInterval)
	defer refreshTicker.Stop()
	defer maintenanceTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler: shutting down")
			return
		case <-refreshTicker.Chan():
			s.refresh(ctx)
		case <-maintenanceTicker.Chan():
			s.maintain()
		}
	}
}

func (s *Scheduler) refresh(ctx context.Context) {
	if _, err := s.refresher.Refresh(ctx, "schedule"); err != nil {
		s.logger.Warnw("scheduler: refresh", "error", err)
	}
}

func (s *Scheduler) maintain() {
	if s.store == nil {
		return
	}
	now := s.clock.Now()

	if n, err := s.store.DeleteExpiredSessions(now); err != nil {
		s.logger.Warnw("scheduler: delete expired sessions", "error", err)
	} else if n > 0 {
		s.logger.Infow("scheduler: deleted expired sessions", "count", n)
	}

	cutoff := now.Add(-s.retention)
	if n, err := s.store.CleanupRefreshRuns(cutoff); err != nil {
		s.logger.Warnw("scheduler: cleanup refresh runs", "error", err)
	} else if n > 0 {
		s.logger.Infow("scheduler: cleaned up refresh runs", "count", n)
	}
	if n, err := s.store.CleanupScanImages(cutoff); err != nil {
		s.logger.Warnw("scheduler: cleanup scan images", "error", err)
	} else if n > 0 {
		s.logger.Infow("scheduler: cleaned up scan images", "count", n)
	}
}
