package weather

import (
	"github.com/lox/skylog/internal/metrics"
	"github.com/lox/skylog/internal/models"
)

const (
	FlagTempOutOfRange     = "temp_out_of_range"
	FlagHumidityInvalid    = "humidity_invalid"
	FlagWindDirInvalid     = "wind_dir_invalid"
	FlagWindSpeedUnlikely  = "wind_speed_unlikely"
	FlagPressureOutOfRange = "pressure_out_of_range"
)

// Validate returns quality flags for values no real French station would
// report. Flags are advisory: a flagged observation is still scored as
// received.
func Validate(obs models.WeatherObservation) []string {
	var flags []string

	if obs.TemperatureCelsius < -40 || obs.TemperatureCelsius > 50 {
		flags = append(flags, FlagTempOutOfRange)
	}
	if obs.Humidity.Valid && (obs.Humidity.Int64 < 0 || obs.Humidity.Int64 > 100) {
		flags = append(flags, FlagHumidityInvalid)
	}
	if obs.WindDirection.Valid && (obs.WindDirection.Int64 < 0 || obs.WindDirection.Int64 > 360) {
		flags = append(flags, FlagWindDirInvalid)
	}
	if obs.WindSpeedKmh < 0 || obs.WindSpeedKmh > 250 {
		flags = append(flags, FlagWindSpeedUnlikely)
	}
	if obs.Pressure.Valid && (obs.Pressure.Float64 < 900 || obs.Pressure.Float64 > 1100) {
		flags = append(flags, FlagPressureOutOfRange)
	}
	return flags
}

func countFlags(flags []string) {
	for _, f := range flags {
		metrics.QualityFlags.WithLabelValues(f).Inc()
	}
}
