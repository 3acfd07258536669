package safety

import (
	"testing"

	"github.com/lox/skylog/internal/models"
)

func obs(wind float64, visibility, conditions string) models.WeatherObservation {
	return models.WeatherObservation{WindSpeedKmh: wind, Visibility: visibility, Conditions: conditions}
}

func TestAssessScenarios(t *testing.T) {
	tests := []struct {
		name      string
		obs       models.WeatherObservation
		wantScore int
		want      Level
	}{
		{
			name:      "calm and sunny",
			obs:       models.WeatherObservation{TemperatureCelsius: 20, WindSpeedKmh: 5, Visibility: "10 km", Conditions: "Ensoleillé"},
			wantScore: 100,
			want:      LevelExcellent,
		},
		{
			name:      "strong wind, cloudy",
			obs:       obs(28, "9 km", "Nuageux"),
			wantScore: 70,
			want:      LevelGood,
		},
		{
			name:      "fog with light wind",
			obs:       obs(12, "3 km", "Brouillard"),
			wantScore: 40,
			want:      LevelPoor,
		},
		{
			name:      "violent storm",
			obs:       obs(40, "1 km", "Orage violent"),
			wantScore: -50,
			want:      LevelDangerous,
		},
		{
			name:      "drizzle",
			obs:       obs(8, "10 km", "Bruine légère"),
			wantScore: 80,
			want:      LevelGood,
		},
		{
			name:      "hail",
			obs:       obs(0, "12 km", "Averses de grêle"),
			wantScore: 60,
			want:      LevelModerate,
		},
		{
			name:      "unparsable visibility defaults to 10 km",
			obs:       obs(0, "N/A", "Nuageux"),
			wantScore: 100,
			want:      LevelExcellent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assess(tt.obs, DefaultThresholds)
			if got.Score != tt.wantScore {
				t.Errorf("Assess().Score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.Level != tt.want {
				t.Errorf("Assess().Level = %v, want %v", got.Level, tt.want)
			}
			if lv := Evaluate(tt.obs, DefaultThresholds); lv != tt.want {
				t.Errorf("Evaluate() = %v, want %v", lv, tt.want)
			}
		})
	}
}

func TestWindPenaltyBoundaries(t *testing.T) {
	tests := []struct {
		kmh  float64
		want int
	}{
		{-5, 0},
		{0, 0},
		{10, 0},
		{10.0001, 5},
		{15, 5},
		{15.5, 15},
		{25, 15},
		{25.1, 30},
		{35, 30},
		{35.1, 50},
		{120, 50},
	}
	for _, tt := range tests {
		if got := WindPenalty(tt.kmh, DefaultThresholds.Wind); got != tt.want {
			t.Errorf("WindPenalty(%v) = %d, want %d", tt.kmh, got, tt.want)
		}
	}
}

func TestVisibilityPenaltyBoundaries(t *testing.T) {
	tests := []struct {
		km   float64
		want int
	}{
		{1000, 0},
		{8, 0},
		{7.9, 10},
		{5, 10},
		{4.9, 25},
		{2, 25},
		{1.9, 40},
		{0, 40},
		{-1, 40},
	}
	for _, tt := range tests {
		if got := VisibilityPenalty(tt.km, DefaultThresholds.Visibility); got != tt.want {
			t.Errorf("VisibilityPenalty(%v) = %d, want %d", tt.km, got, tt.want)
		}
	}
}

func TestConditionPenaltyPrecedence(t *testing.T) {
	tests := []struct {
		conditions string
		want       int
	}{
		{"Pluie forte avec orage", 60},
		{"TEMPÊTE", 60},
		{"Tempête", 60},
		{"Pluie forte", 40},
		{"Grêle", 40},
		{"Pluie modérée", 20},
		{"bruine", 20},
		{"Brouillard et pluie", 20},
		{"Brouillard", 30},
		{"Ciel dégagé", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ConditionPenalty(tt.conditions); got != tt.want {
			t.Errorf("ConditionPenalty(%q) = %d, want %d", tt.conditions, got, tt.want)
		}
	}
}

func TestLevelForScoreBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  Level
	}{
		{100, LevelExcellent},
		{85, LevelExcellent},
		{84, LevelGood},
		{70, LevelGood},
		{69, LevelModerate},
		{50, LevelModerate},
		{49, LevelPoor},
		{30, LevelPoor},
		{29, LevelDangerous},
		{-150, LevelDangerous},
	}
	for _, tt := range tests {
		if got := LevelForScore(tt.score); got != tt.want {
			t.Errorf("LevelForScore(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestEvaluateBenignIsExcellent(t *testing.T) {
	for _, wind := range []float64{0, 2.5, 7, 10} {
		for _, vis := range []string{"10 km", "15 km", "10+ km", "50"} {
			for _, cond := range []string{"Ensoleillé", "Nuageux", "Partiellement nuageux", "Venteux"} {
				if got := Evaluate(obs(wind, vis, cond), DefaultThresholds); got != LevelExcellent {
					t.Errorf("Evaluate(%v, %q, %q) = %v, want excellent", wind, vis, cond, got)
				}
			}
		}
	}
}

func TestEvaluateMonotonicInWind(t *testing.T) {
	for _, vis := range []string{"10 km", "6 km", "3 km", "1 km"} {
		for _, cond := range []string{"Ensoleillé", "Pluie", "Orage"} {
			prev := Assess(obs(0, vis, cond), DefaultThresholds)
			for wind := 0.5; wind <= 60; wind += 0.5 {
				cur := Assess(obs(wind, vis, cond), DefaultThresholds)
				if cur.Score > prev.Score {
					t.Fatalf("score rose from %d to %d at wind %v (%s, %s)", prev.Score, cur.Score, wind, vis, cond)
				}
				if cur.Level.Rank() > prev.Level.Rank() {
					t.Fatalf("level improved from %v to %v at wind %v (%s, %s)", prev.Level, cur.Level, wind, vis, cond)
				}
				prev = cur
			}
		}
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	o := obs(22, "6 km", "Pluie")
	first := Assess(o, DefaultThresholds)
	second := Assess(o, DefaultThresholds)
	if first != second {
		t.Errorf("Assess not idempotent: %+v vs %+v", first, second)
	}
}

func TestEvaluateCustomThresholds(t *testing.T) {
	strict := Thresholds{
		Wind:       Breakpoints{Excellent: 5, Good: 8, Moderate: 12, Poor: 18},
		Visibility: DefaultThresholds.Visibility,
	}
	if got := Evaluate(obs(20, "10 km", "Ensoleillé"), strict); got != LevelModerate {
		t.Errorf("Evaluate() with strict thresholds = %v, want moderate", got)
	}
}

func TestParseVisibility(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"10 km", 10},
		{"10+ km", 10},
		{"  7.5km", 7.5},
		{"3", 3},
		{"0 km", 0},
		{"N/A", DefaultVisibilityKm},
		{"", DefaultVisibilityKm},
		{"km", DefaultVisibilityKm},
		{"-2 km", -2},
		{"1e", 1},
	}
	for _, tt := range tests {
		if got := ParseVisibility(tt.in); got != tt.want {
			t.Errorf("ParseVisibility(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, l := range Levels {
		got, ok := ParseLevel(string(l))
		if !ok || got != l {
			t.Errorf("ParseLevel(%q) = %v, %v", l, got, ok)
		}
	}
	if _, ok := ParseLevel("unknown"); ok {
		t.Error("ParseLevel(unknown) should fail")
	}
	if LevelDangerous.Rank() >= LevelPoor.Rank() || LevelGood.Rank() >= LevelExcellent.Rank() {
		t.Error("levels not ordered worst to best")
	}
}
