package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WeatherAPICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skylog_weather_api_calls_total",
			Help: "Total OpenWeatherMap API calls",
		},
		[]string{"status"},
	)

	WeatherAPILatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skylog_weather_api_latency_seconds",
			Help:    "OpenWeatherMap API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	FallbackObservations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skylog_weather_fallback_observations_total",
			Help: "Synthetic observations served in place of a failed fetch",
		},
	)

	QualityFlags = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skylog_weather_quality_flags_total",
			Help: "Live observations carrying an implausible value, by flag",
		},
		[]string{"flag"},
	)

	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skylog_dropzone_refresh_duration_seconds",
			Help:    "Wall time of a full drop zone weather refresh",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// DropzoneSafetyRank is the evaluated level per zone as a rank, 0 for
	// dangerous up to 4 for excellent.
	DropzoneSafetyRank = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "skylog_dropzone_safety_rank",
			Help: "Jump safety level of each drop zone at the last refresh (0=dangerous, 4=excellent)",
		},
		[]string{"dropzone"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skylog_http_requests_total",
			Help: "HTTP requests served",
		},
		[]string{"method", "route", "code"},
	)

	JumpsLogged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skylog_jumps_logged_total",
			Help: "Jumps added to logbooks",
		},
	)
)
