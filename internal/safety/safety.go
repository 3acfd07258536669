// Package safety rates current weather for skydiving on a five-point scale.
//
// The rating starts from a perfect score of 100 and subtracts one penalty per
// weather signal (wind, visibility, conditions text). Only the worst tier of
// each signal applies. The resulting score is bucketed into a Level.
package safety

import (
	"strconv"
	"strings"

	"github.com/lox/skylog/internal/models"
)

// Level is a discrete jump-safety rating.
type Level string

const (
	LevelExcellent Level = "excellent"
	LevelGood      Level = "good"
	LevelModerate  Level = "moderate"
	LevelPoor      Level = "poor"
	LevelDangerous Level = "dangerous"
)

// Levels lists every level from worst to best.
var Levels = []Level{LevelDangerous, LevelPoor, LevelModerate, LevelGood, LevelExcellent}

// Rank orders levels from worst (0) to best (4). Unknown levels rank -1.
func (l Level) Rank() int {
	for i, lv := range Levels {
		if lv == l {
			return i
		}
	}
	return -1
}

// ParseLevel returns the level named s, or false if there is none.
func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	return l, l.Rank() >= 0
}

// Breakpoints are the tier boundaries for one weather signal.
type Breakpoints struct {
	Excellent float64
	Good      float64
	Moderate  float64
	Poor      float64
}

// Thresholds configures the wind (km/h) and visibility (km) tiers.
type Thresholds struct {
	Wind       Breakpoints
	Visibility Breakpoints
}

// DefaultThresholds are the limits used for every drop zone.
var DefaultThresholds = Thresholds{
	Wind:       Breakpoints{Excellent: 10, Good: 15, Moderate: 25, Poor: 35},
	Visibility: Breakpoints{Excellent: 10, Good: 8, Moderate: 5, Poor: 2},
}

// DefaultVisibilityKm is assumed when the visibility string has no number.
const DefaultVisibilityKm = 10

// Assessment is the breakdown behind a Level.
type Assessment struct {
	WindPenalty       int
	VisibilityPenalty int
	ConditionPenalty  int
	Score             int
	Level             Level
}

// Evaluate rates an observation. It is Assess(obs, th).Level.
func Evaluate(obs models.WeatherObservation, th Thresholds) Level {
	return Assess(obs, th).Level
}

// Assess scores an observation against th. Inputs are not validated: negative
// or out-of-range numbers simply flow through the arithmetic.
func Assess(obs models.WeatherObservation, th Thresholds) Assessment {
	a := Assessment{
		WindPenalty:       WindPenalty(obs.WindSpeedKmh, th.Wind),
		VisibilityPenalty: VisibilityPenalty(ParseVisibility(obs.Visibility), th.Visibility),
		ConditionPenalty:  ConditionPenalty(obs.Conditions),
	}
	a.Score = 100 - a.WindPenalty - a.VisibilityPenalty - a.ConditionPenalty
	a.Level = LevelForScore(a.Score)
	return a
}

// WindPenalty returns the deduction for a ground wind speed in km/h.
func WindPenalty(kmh float64, bp Breakpoints) int {
	switch {
	case kmh > bp.Poor:
		return 50
	case kmh > bp.Moderate:
		return 30
	case kmh > bp.Good:
		return 15
	case kmh > bp.Excellent:
		return 5
	default:
		return 0
	}
}

// VisibilityPenalty returns the deduction for a horizontal visibility in km.
func VisibilityPenalty(km float64, bp Breakpoints) int {
	switch {
	case km < bp.Poor:
		return 40
	case km < bp.Moderate:
		return 25
	case km < bp.Good:
		return 10
	default:
		return 0
	}
}

// conditionRules are checked in order; the first match wins so overlapping
// hazards ("pluie forte avec orage") are only counted once.
var conditionRules = []struct {
	keywords []string
	penalty  int
}{
	{[]string{"orage", "tempête"}, 60},
	{[]string{"pluie forte", "grêle"}, 40},
	{[]string{"pluie", "bruine"}, 20},
	{[]string{"brouillard"}, 30},
}

// ConditionPenalty returns the deduction for a localized weather description.
func ConditionPenalty(conditions string) int {
	lower := strings.ToLower(conditions)
	for _, rule := range conditionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.penalty
			}
		}
	}
	return 0
}

// LevelForScore buckets a score. Each bound is inclusive: 85 is excellent,
// 84 is good.
func LevelForScore(score int) Level {
	switch {
	case score >= 85:
		return LevelExcellent
	case score >= 70:
		return LevelGood
	case score >= 50:
		return LevelModerate
	case score >= 30:
		return LevelPoor
	default:
		return LevelDangerous
	}
}

// ParseVisibility reads the leading number of a display string such as
// "10 km" or "10+ km". Strings without a leading number yield
// DefaultVisibilityKm. A parsed zero stays zero: "0 km" is scored as no
// visibility rather than being treated as unknown.
func ParseVisibility(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	seenDigit, seenDot, seenExp := false, false, false
scan:
	for end < len(s) {
		c := s[end]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case (c == '+' || c == '-') && (end == 0 || s[end-1] == 'e' || s[end-1] == 'E'):
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == 'e' || c == 'E') && seenDigit && !seenExp:
			seenExp = true
		default:
			break scan
		}
		end++
	}
	for end > 0 {
		if v, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return v
		}
		end--
	}
	return DefaultVisibilityKm
}
