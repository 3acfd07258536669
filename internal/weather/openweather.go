// Package weather fetches current surface conditions for a point.
package weather

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/cenkalti/backoff/v4"

	"github.com/lox/skylog/internal/httputil"
	"github.com/lox/skylog/internal/metrics"
	"github.com/lox/skylog/internal/models"
)

const DefaultBaseURL = "https://api.openweathermap.org"

var (
	ErrNoAPIKey  = errors.New("openweathermap: no api key configured")
	ErrMalformed = errors.New("openweathermap: response has no weather description")
)

// Provider returns the current conditions at a coordinate.
type Provider interface {
	CurrentConditions(ctx context.Context, lat, lon float64) (models.WeatherObservation, error)
}

type OpenWeather struct {
	apiKey     string
	baseURL    string
	client     *http.Client
	maxElapsed time.Duration
	now        func() time.Time
}

type Option func(*OpenWeather)

// WithBaseURL points the client at another host, typically an httptest server.
func WithBaseURL(u string) Option {
	return func(o *OpenWeather) { o.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *OpenWeather) { o.client = c }
}

// WithMaxElapsed bounds the total time spent retrying rate-limited calls.
func WithMaxElapsed(d time.Duration) Option {
	return func(o *OpenWeather) { o.maxElapsed = d }
}

func NewOpenWeather(apiKey string, opts ...Option) *OpenWeather {
	o := &OpenWeather{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		client:     httputil.NewClient(),
		maxElapsed: 30 * time.Second,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type currentResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64  `json:"temp"`
		Pressure *float64 `json:"pressure"`
		Humidity *int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s
		Deg   *int    `json:"deg"`
	} `json:"wind"`
	Visibility *float64 `json:"visibility"` // metres
	Dt         int64    `json:"dt"`
}

func (o *OpenWeather) CurrentConditions(ctx context.Context, lat, lon float64) (models.WeatherObservation, error) {
	if o.apiKey == "" {
		return models.WeatherObservation{}, ErrNoAPIKey
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 4, 64))
	q.Set("appid", o.apiKey)
	q.Set("units", "metric")
	q.Set("lang", "fr")
	endpoint := o.baseURL + "/data/2.5/weather?" + q.Encode()

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build request: %w", err))
		}

		start := time.Now()
		resp, err := o.client.Do(req)
		metrics.WeatherAPILatency.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.WeatherAPICallsTotal.WithLabelValues("error").Inc()
			return backoff.Permanent(fmt.Errorf("fetch weather: %w", err))
		}
		defer resp.Body.Close()
		metrics.WeatherAPICallsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

		// OpenWeatherMap answers a bad key with 401, so only 429 is worth retrying.
		if resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("rate limited: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return backoff.Permanent(fmt.Errorf("fetch weather: status %d: %s", resp.StatusCode, string(b)))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read body: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = o.maxElapsed
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return models.WeatherObservation{}, err
	}

	var data currentResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return models.WeatherObservation{}, fmt.Errorf("unmarshal: %w", err)
	}
	if len(data.Weather) == 0 {
		return models.WeatherObservation{}, ErrMalformed
	}
	return o.toObservation(data), nil
}

func (o *OpenWeather) toObservation(data currentResponse) models.WeatherObservation {
	kmh := data.Wind.Speed * 3.6
	obs := models.WeatherObservation{
		TemperatureCelsius: math.Round(data.Main.Temp),
		WindSpeedKmh:       kmh,
		Visibility:         "N/A",
		ObservedAt:         o.now().UTC(),
	}
	if data.Dt > 0 {
		obs.ObservedAt = time.Unix(data.Dt, 0).UTC()
	}

	wind := fmt.Sprintf("%d km/h", int(math.Round(kmh)))
	if data.Wind.Deg != nil {
		obs.WindDirection = sql.NullInt64{Int64: int64(*data.Wind.Deg), Valid: true}
		wind += " " + Compass(float64(*data.Wind.Deg))
	}
	obs.Wind = wind

	// A reported 0 m becomes "0 km" and scores as zero visibility; only an
	// absent field is "N/A".
	if data.Visibility != nil {
		obs.Visibility = fmt.Sprintf("%d km", int(math.Round(*data.Visibility/1000)))
	}
	if data.Main.Pressure != nil {
		obs.Pressure = sql.NullFloat64{Float64: *data.Main.Pressure, Valid: true}
	}
	if data.Main.Humidity != nil {
		obs.Humidity = sql.NullInt64{Int64: int64(*data.Main.Humidity), Valid: true}
	}
	if len(data.Weather) > 0 {
		desc := data.Weather[0].Description
		if desc == "" {
			desc = data.Weather[0].Main
		}
		obs.Conditions = capitalize(desc)
	}
	return obs
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSO", "SO", "OSO", "O", "ONO", "NO", "NNO",
}

// Compass converts a bearing in degrees to a 16-point French compass label.
func Compass(deg float64) string {
	i := int(math.Round(deg/22.5)) % 16
	if i < 0 {
		i += 16
	}
	return compassPoints[i]
}
