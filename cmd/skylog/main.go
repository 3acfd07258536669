package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jonboulle/clockwork"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/lox/skylog/internal/api"
	"github.com/lox/skylog/internal/auth"
	"github.com/lox/skylog/internal/dropzone"
	"github.com/lox/skylog/internal/logbook"
	"github.com/lox/skylog/internal/models"
	"github.com/lox/skylog/internal/safety"
	"github.com/lox/skylog/internal/scheduler"
	"github.com/lox/skylog/internal/store"
	"github.com/lox/skylog/internal/weather"
)

type globals struct {
	EnvFile        kongdotenv.ENVFileConfig `kong:"optional,name=env-file,default='.env',help='Path to .env file'"`
	Debug          bool                     `help:"Enable debug logging." env:"SKYLOG_DEBUG"`
	OpenWeatherKey string                   `name:"openweather-key" help:"OpenWeatherMap API key. Without one every zone gets synthetic weather." env:"OPENWEATHER_API_KEY"`
	Concurrency    int                      `name:"refresh-concurrency" default:"8" help:"Maximum concurrent weather fetches." env:"SKYLOG_REFRESH_CONCURRENCY"`
}

type cli struct {
	globals

	Serve    serveCmd    `cmd:"" default:"withargs" help:"Run the API server and the background weather refresh."`
	Refresh  refreshCmd  `cmd:"" help:"Fetch weather for every drop zone once and print the safety table."`
	Evaluate evaluateCmd `cmd:"" help:"Score a single set of conditions."`
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("skylog"),
		kong.Description("Skydiving logbook and drop zone weather service."),
		kong.UsageOnError(),
	)

	logger, err := newLogger(c.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx.FatalIfErrorf(ctx.Run(&c.globals, logger))
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if debug {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// weatherProvider returns the live provider, or nil when no key is set.
func (g *globals) weatherProvider() weather.Provider {
	if g.OpenWeatherKey == "" {
		return nil
	}
	return weather.NewOpenWeather(g.OpenWeatherKey)
}

func (g *globals) refresher(dir *dropzone.Directory, logger *zap.SugaredLogger, opts ...dropzone.Option) *dropzone.Refresher {
	opts = append([]dropzone.Option{
		dropzone.WithLogger(logger),
		dropzone.WithConcurrency(g.Concurrency),
		dropzone.WithSynthetic(weather.NewSynthetic(nil)),
	}, opts...)
	return dropzone.NewRefresher(dir, g.weatherProvider(), opts...)
}

type serveCmd struct {
	DB              string        `name:"db" default:"data/skylog.db" help:"Path to SQLite database." env:"SKYLOG_DB"`
	Port            string        `default:"8080" help:"HTTP server port." env:"PORT"`
	RefreshInterval time.Duration `default:"30m" help:"How often drop zone weather is refreshed." env:"SKYLOG_REFRESH_INTERVAL"`
	SessionTTL      time.Duration `name:"session-ttl" default:"168h" help:"Lifetime of a sign-in session." env:"SKYLOG_SESSION_TTL"`
	Retention       time.Duration `default:"720h" help:"How long refresh history and uploaded scans are kept." env:"SKYLOG_RETENTION"`
	NoPoll          bool          `name:"no-poll" help:"Disable the background refresh (server only, for local dev)."`
}

func (s *serveCmd) Run(g *globals, logger *zap.SugaredLogger) error {
	db, err := store.Open(s.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	st := store.New(db, logger)
	if err := st.Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("database migrated")

	clock := clockwork.NewRealClock()
	dir := dropzone.NewDirectory()
	refresher := g.refresher(dir, logger, dropzone.WithClock(clock), dropzone.WithRunRecorder(st))
	if g.OpenWeatherKey == "" {
		logger.Warn("no OpenWeatherMap key configured, serving synthetic weather")
	}

	server := api.NewServer(api.Config{
		Store:     st,
		Auth:      auth.NewService(st, auth.WithClock(clock), auth.WithSessionTTL(s.SessionTTL)),
		Logbook:   logbook.New(st, clock),
		Directory: dir,
		Refresher: refresher,
		Weather:   weather.NewFallback(g.weatherProvider(), weather.NewSynthetic(nil), logger),
		Clock:     clock,
		Logger:    logger,
	}, s.Port)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if !s.NoPoll {
		sched := scheduler.New(refresher, st, clock, logger)
		sched.SetRefreshInterval(s.RefreshInterval)
		sched.SetRetention(s.Retention)
		go sched.Run(ctx)
	} else {
		logger.Info("polling disabled (--no-poll)")
	}

	return server.Run(ctx)
}

type refreshCmd struct {
	Seed uint64 `help:"Seed for synthetic weather, for reproducible output."`
}

func (r *refreshCmd) Run(g *globals, logger *zap.SugaredLogger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var opts []dropzone.Option
	if r.Seed != 0 {
		opts = append(opts, dropzone.WithSynthetic(weather.NewSynthetic(rand.New(rand.NewPCG(r.Seed, r.Seed)))))
	}
	dir := dropzone.NewDirectory()
	refresher := g.refresher(dir, logger, opts...)

	sum, err := refresher.Refresh(ctx, "cli")
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCITY\tWIND\tVISIBILITY\tCONDITIONS\tSCORE\tLEVEL\tSOURCE")
	for _, z := range dir.All() {
		snap, ok := refresher.Snapshot(z.ID)
		if !ok {
			continue
		}
		obs := snap.Observation
		a := safety.Assess(obs, refresher.Thresholds())
		source := "live"
		if obs.Synthetic {
			source = "synthetic"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.0f km/h\t%s\t%s\t%d\t%s\t%s\n",
			z.ID, z.City, obs.WindSpeedKmh, obs.Visibility, obs.Conditions, a.Score, api.DisplayFor(a.Level).Label, source)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d zones: %d live, %d synthetic, %d failed in %s\n",
		sum.Zones, sum.Live, sum.Synthetic, sum.Failed, sum.Duration.Round(time.Millisecond))
	return nil
}

type evaluateCmd struct {
	Wind       float64 `required:"" help:"Wind speed in km/h."`
	Visibility string  `default:"10 km" help:"Visibility, e.g. \"8 km\"."`
	Conditions string  `help:"Weather description, e.g. \"Pluie légère\"."`
}

func (e *evaluateCmd) Run(g *globals, logger *zap.SugaredLogger) error {
	a := safety.Assess(models.WeatherObservation{
		WindSpeedKmh: e.Wind,
		Visibility:   e.Visibility,
		Conditions:   e.Conditions,
	}, safety.DefaultThresholds)
	d := api.DisplayFor(a.Level)

	fmt.Printf("%s %s (%s)\n", d.Emoji, d.Label, a.Level)
	fmt.Printf("score       %d\n", a.Score)
	fmt.Printf("wind        -%d\n", a.WindPenalty)
	fmt.Printf("visibility  -%d\n", a.VisibilityPenalty)
	fmt.Printf("conditions  -%d\n", a.ConditionPenalty)
	return nil
}
