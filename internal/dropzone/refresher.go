package dropzone

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lox/skylog/internal/metrics"
	"github.com/lox/skylog/internal/models"
	"github.com/lox/skylog/internal/safety"
	"github.com/lox/skylog/internal/store"
	"github.com/lox/skylog/internal/weather"
)

const (
	DefaultConcurrency  = 8
	DefaultFetchTimeout = 20 * time.Second
)

// RunRecorder persists an audit row per refresh. *store.Store satisfies it.
type RunRecorder interface {
	StartRefreshRun(reason string, zones int, startedAt time.Time) (*store.RefreshRun, error)
	CompleteRefreshRun(run *store.RefreshRun, finishedAt time.Time) error
}

// Snapshot is the latest observation held for a zone.
type Snapshot struct {
	Observation models.WeatherObservation
	UpdatedAt   time.Time
}

// Summary describes the outcome of one refresh.
type Summary struct {
	Zones     int
	Live      int
	Synthetic int
	Failed    int
	Levels    map[safety.Level]int
	Duration  time.Duration
}

type Refresher struct {
	dir          *Directory
	primary      weather.Provider
	synthetic    *weather.Synthetic
	source       *weather.Fallback
	runs         RunRecorder
	clock        clockwork.Clock
	logger       *zap.SugaredLogger
	thresholds   safety.Thresholds
	concurrency  int
	fetchTimeout time.Duration

	refreshMu sync.Mutex // one refresh at a time

	mu          sync.RWMutex
	snapshots   map[string]Snapshot
	lastUpdated time.Time
}

type Option func(*Refresher)

func WithClock(c clockwork.Clock) Option { return func(r *Refresher) { r.clock = c } }

func WithLogger(l *zap.SugaredLogger) Option { return func(r *Refresher) { r.logger = l } }

func WithRunRecorder(rec RunRecorder) Option { return func(r *Refresher) { r.runs = rec } }

func WithSynthetic(s *weather.Synthetic) Option { return func(r *Refresher) { r.synthetic = s } }

func WithThresholds(th safety.Thresholds) Option { return func(r *Refresher) { r.thresholds = th } }

func WithConcurrency(n int) Option {
	return func(r *Refresher) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

func WithFetchTimeout(d time.Duration) Option {
	return func(r *Refresher) {
		if d > 0 {
			r.fetchTimeout = d
		}
	}
}

// NewRefresher builds a refresher over dir. A nil primary serves synthetic
// observations for every zone.
func NewRefresher(dir *Directory, primary weather.Provider, opts ...Option) *Refresher {
	r := &Refresher{
		dir:          dir,
		primary:      primary,
		clock:        clockwork.NewRealClock(),
		logger:       zap.NewNop().Sugar(),
		thresholds:   safety.DefaultThresholds,
		concurrency:  DefaultConcurrency,
		fetchTimeout: DefaultFetchTimeout,
		snapshots:    make(map[string]Snapshot),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.source = weather.NewFallback(r.primary, r.synthetic, r.logger)
	return r
}

// Refresh fetches current weather for every zone, at most concurrency at a
// time. A zone whose fetch fails gets a synthetic observation instead and
// never holds up the others. Results land in whatever order fetches finish.
// The returned error is only non-nil when ctx ends before the refresh does.
func (r *Refresher) Refresh(ctx context.Context, reason string) (Summary, error) {
	r.refreshMu.Lock()
	defer r.refreshMu.Unlock()

	list := r.dir.All()
	start := r.clock.Now()
	r.logger.Infow("refreshing drop zone weather", "zones", len(list), "reason", reason)

	var run *store.RefreshRun
	if r.runs != nil {
		var err error
		if run, err = r.runs.StartRefreshRun(reason, len(list), start); err != nil {
			r.logger.Warnw("record refresh run", "error", err)
		}
	}

	var (
		countMu sync.Mutex
		sum     = Summary{Zones: len(list), Levels: make(map[safety.Level]int)}
	)

	g := new(errgroup.Group)
	g.SetLimit(r.concurrency)
	for _, z := range list {
		g.Go(func() error {
			obs, ok := r.fetch(ctx, z)
			countMu.Lock()
			defer countMu.Unlock()
			if !ok {
				sum.Failed++
				return nil
			}
			if obs.Synthetic {
				sum.Synthetic++
			} else {
				sum.Live++
			}

			level := safety.Evaluate(obs, r.thresholds)
			sum.Levels[level]++
			metrics.DropzoneSafetyRank.WithLabelValues(z.ID).Set(float64(level.Rank()))

			r.mu.Lock()
			r.snapshots[z.ID] = Snapshot{Observation: obs, UpdatedAt: r.clock.Now()}
			r.mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	finished := r.clock.Now()
	sum.Duration = finished.Sub(start)
	metrics.RefreshDuration.Observe(sum.Duration.Seconds())

	r.mu.Lock()
	r.lastUpdated = finished
	r.mu.Unlock()

	ctxErr := ctx.Err()
	if run != nil {
		run.Live, run.Synthetic, run.Failed = sum.Live, sum.Synthetic, sum.Failed
		run.Success = ctxErr == nil
		if ctxErr != nil {
			run.ErrorMessage = sql.NullString{String: ctxErr.Error(), Valid: true}
		}
		if err := r.runs.CompleteRefreshRun(run, finished); err != nil {
			r.logger.Warnw("complete refresh run", "error", err)
		}
	}

	r.logger.Infow("drop zone weather refreshed",
		"live", sum.Live, "synthetic", sum.Synthetic, "failed", sum.Failed,
		"dangerous", sum.Levels[safety.LevelDangerous], "duration", sum.Duration)

	if ctxErr != nil {
		return sum, fmt.Errorf("refresh interrupted: %w", ctxErr)
	}
	return sum, nil
}

// fetch returns the zone's observation. It reports false only when ctx has
// ended, since the source substitutes synthetic data for any other failure.
func (r *Refresher) fetch(ctx context.Context, z models.Dropzone) (models.WeatherObservation, bool) {
	fctx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()
	obs, err := r.source.CurrentConditions(fctx, z.Coordinates.Lat, z.Coordinates.Lng)
	if err != nil {
		return models.WeatherObservation{}, false
	}
	return obs, true
}

// Snapshot returns the latest observation held for a zone.
func (r *Refresher) Snapshot(id string) (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.snapshots[id]
	return s, ok
}

// Snapshots returns a copy of every held observation keyed by zone ID.
func (r *Refresher) Snapshots() map[string]Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Snapshot, len(r.snapshots))
	for id, s := range r.snapshots {
		out[id] = s
	}
	return out
}

// LastUpdated is when the most recent refresh finished, zero before the first.
func (r *Refresher) LastUpdated() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastUpdated
}

func (r *Refresher) Thresholds() safety.Thresholds { return r.thresholds }
