package weather

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lox/skylog/internal/metrics"
	"github.com/lox/skylog/internal/models"
)

var syntheticConditions = []string{"Ensoleillé", "Partiellement nuageux", "Nuageux", "Venteux"}

// Synthetic generates plausible observations without any network access.
type Synthetic struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// NewSynthetic returns a generator drawing from rnd. A nil rnd uses a
// time-seeded source.
func NewSynthetic(rnd *rand.Rand) *Synthetic {
	if rnd == nil {
		seed := uint64(time.Now().UnixNano())
		rnd = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Synthetic{rnd: rnd, now: time.Now}
}

func (s *Synthetic) CurrentConditions(_ context.Context, _, _ float64) (models.WeatherObservation, error) {
	return s.Generate(), nil
}

// Generate draws one observation. Temperature is 5–30°C, wind 5–35 km/h,
// visibility 5–12 km, pressure 1000–1050 hPa and humidity 40–80%.
func (s *Synthetic) Generate() models.WeatherObservation {
	s.mu.Lock()
	defer s.mu.Unlock()

	wind := 5 + s.rnd.IntN(31)
	deg := s.rnd.IntN(360)
	return models.WeatherObservation{
		TemperatureCelsius: float64(5 + s.rnd.IntN(26)),
		WindSpeedKmh:       float64(wind),
		Wind:               fmt.Sprintf("%d km/h %s", wind, Compass(float64(deg))),
		Visibility:         fmt.Sprintf("%d km", 5+s.rnd.IntN(8)),
		Conditions:         syntheticConditions[s.rnd.IntN(len(syntheticConditions))],
		Pressure:           sql.NullFloat64{Float64: float64(1000 + s.rnd.IntN(51)), Valid: true},
		Humidity:           sql.NullInt64{Int64: int64(40 + s.rnd.IntN(41)), Valid: true},
		WindDirection:      sql.NullInt64{Int64: int64(deg), Valid: true},
		ObservedAt:         s.now().UTC(),
		Synthetic:          true,
	}
}

// Fallback serves from the primary provider and substitutes a synthetic
// observation whenever it fails. A nil primary always serves synthetic data.
type Fallback struct {
	primary   Provider
	synthetic *Synthetic
	logger    *zap.SugaredLogger
}

func NewFallback(primary Provider, synthetic *Synthetic, logger *zap.SugaredLogger) *Fallback {
	if synthetic == nil {
		synthetic = NewSynthetic(nil)
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Fallback{primary: primary, synthetic: synthetic, logger: logger}
}

// CurrentConditions never returns an error unless ctx is already done.
func (f *Fallback) CurrentConditions(ctx context.Context, lat, lon float64) (models.WeatherObservation, error) {
	if err := ctx.Err(); err != nil {
		return models.WeatherObservation{}, err
	}
	if f.primary != nil {
		obs, err := f.primary.CurrentConditions(ctx, lat, lon)
		if err == nil {
			if flags := Validate(obs); len(flags) > 0 {
				countFlags(flags)
				f.logger.Warnw("implausible observation", "lat", lat, "lon", lon, "flags", flags)
			}
			return obs, nil
		}
		f.logger.Warnw("weather fetch failed, using synthetic observation", "lat", lat, "lon", lon, "error", err)
	}
	metrics.FallbackObservations.Inc()
	return f.synthetic.Generate(), nil
}
