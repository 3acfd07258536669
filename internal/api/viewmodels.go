package api

import (
	"time"

	"github.com/lox/skylog/internal/dropzone"
	"github.com/lox/skylog/internal/logbook"
	"github.com/lox/skylog/internal/models"
	"github.com/lox/skylog/internal/safety"
	"github.com/lox/skylog/internal/scan"
	"github.com/lox/skylog/internal/store"
)

// LevelDisplay is how a safety level is shown to jumpers.
type LevelDisplay struct {
	Label string `json:"label"`
	Color string `json:"color"` // CSS utility classes
	Emoji string `json:"emoji"`
}

var levelDisplays = map[safety.Level]LevelDisplay{
	safety.LevelExcellent: {Label: "Excellent", Color: "bg-green-100 text-green-800", Emoji: "🟢"},
	safety.LevelGood:      {Label: "Bon", Color: "bg-blue-100 text-blue-800", Emoji: "🔵"},
	safety.LevelModerate:  {Label: "Modéré", Color: "bg-yellow-100 text-yellow-800", Emoji: "🟡"},
	safety.LevelPoor:      {Label: "Difficile", Color: "bg-orange-100 text-orange-800", Emoji: "🟠"},
	safety.LevelDangerous: {Label: "Dangereux", Color: "bg-red-100 text-red-800", Emoji: "🔴"},
}

var unknownLevelDisplay = LevelDisplay{Label: "Inconnu", Color: "bg-gray-100 text-gray-800", Emoji: "⚪"}

// DisplayFor returns the display attributes for a level; unknown levels get
// a neutral grey.
func DisplayFor(l safety.Level) LevelDisplay {
	if d, ok := levelDisplays[l]; ok {
		return d
	}
	return unknownLevelDisplay
}

type StatusDisplay struct {
	Label string `json:"label"`
	Color string `json:"color"` // hex
}

var statusDisplays = map[models.DropzoneStatus]StatusDisplay{
	models.StatusOpen:    {Label: "Ouvert", Color: "#10b981"},
	models.StatusLimited: {Label: "Limité", Color: "#f59e0b"},
	models.StatusClosed:  {Label: "Fermé", Color: "#ef4444"},
}

func StatusDisplayFor(s models.DropzoneStatus) StatusDisplay {
	if d, ok := statusDisplays[s]; ok {
		return d
	}
	return StatusDisplay{Label: "Inconnu", Color: "#6b7280"}
}

type AccountView struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	License    string    `json:"license"`
	JoinedAt   time.Time `json:"joinedAt"`
	TotalJumps int       `json:"totalJumps"`
}

func newAccountView(a *models.Account) AccountView {
	return AccountView{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		License:    a.License,
		JoinedAt:   a.JoinedAt,
		TotalJumps: a.TotalJumps,
	}
}

type JumpView struct {
	ID            string    `json:"id"`
	JumpNumber    int       `json:"jumpNumber"`
	Date          string    `json:"date"`
	Location      string    `json:"location"`
	Aircraft      string    `json:"aircraft"`
	Altitude      int       `json:"altitude"`
	CanopySize    *int      `json:"canopySize,omitempty"`
	Weather       string    `json:"weather,omitempty"`
	Wind          string    `json:"wind,omitempty"`
	FreefallNotes string    `json:"freefallNotes,omitempty"`
	CanopyNotes   string    `json:"canopyNotes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func newJumpView(j models.Jump) JumpView {
	v := JumpView{
		ID:            j.ID,
		JumpNumber:    j.JumpNumber,
		Date:          j.Date.Format(time.DateOnly),
		Location:      j.Location,
		Aircraft:      j.Aircraft,
		Altitude:      j.AltitudeM,
		Weather:       j.Weather.String,
		Wind:          j.Wind.String,
		FreefallNotes: j.FreefallNotes.String,
		CanopyNotes:   j.CanopyNotes.String,
		CreatedAt:     j.CreatedAt,
	}
	if j.CanopySize.Valid {
		size := int(j.CanopySize.Int64)
		v.CanopySize = &size
	}
	return v
}

type StatsView struct {
	TotalJumps       int    `json:"totalJumps"`
	TotalAltitude    int    `json:"totalAltitude"`
	TotalFreefall    string `json:"totalFreefall"`
	FavoriteDropzone string `json:"favoriteDropzone"`
	UniqueLocations  int    `json:"uniqueLocations"`
}

func newStatsView(s logbook.Stats) StatsView {
	return StatsView{
		TotalJumps:       s.TotalJumps,
		TotalAltitude:    s.TotalAltitudeM,
		TotalFreefall:    s.FreefallDisplay(),
		FavoriteDropzone: s.FavoriteDropzone,
		UniqueLocations:  s.UniqueLocations,
	}
}

type WeatherView struct {
	Temperature  float64   `json:"temperature"`
	Conditions   string    `json:"conditions"`
	Wind         string    `json:"wind"`
	WindSpeedKmh float64   `json:"windSpeedKmh"`
	Visibility   string    `json:"visibility"`
	Pressure     *float64  `json:"pressure,omitempty"`
	Humidity     *int64    `json:"humidity,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Synthetic    bool      `json:"synthetic"`
}

func newWeatherView(o models.WeatherObservation) WeatherView {
	v := WeatherView{
		Temperature:  o.TemperatureCelsius,
		Conditions:   o.Conditions,
		Wind:         o.Wind,
		WindSpeedKmh: o.WindSpeedKmh,
		Visibility:   o.Visibility,
		Timestamp:    o.ObservedAt,
		Synthetic:    o.Synthetic,
	}
	if o.Pressure.Valid {
		p := o.Pressure.Float64
		v.Pressure = &p
	}
	if o.Humidity.Valid {
		h := o.Humidity.Int64
		v.Humidity = &h
	}
	return v
}

type PenaltiesView struct {
	Wind       int `json:"wind"`
	Visibility int `json:"visibility"`
	Conditions int `json:"conditions"`
}

type SafetyView struct {
	Level     safety.Level  `json:"level"`
	Score     int           `json:"score"`
	Penalties PenaltiesView `json:"penalties"`
	LevelDisplay
}

func newSafetyView(a safety.Assessment) SafetyView {
	return SafetyView{
		Level: a.Level,
		Score: a.Score,
		Penalties: PenaltiesView{
			Wind:       a.WindPenalty,
			Visibility: a.VisibilityPenalty,
			Conditions: a.ConditionPenalty,
		},
		LevelDisplay: DisplayFor(a.Level),
	}
}

type DropzoneView struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	City        string                `json:"city"`
	Region      string                `json:"region"`
	Coordinates models.Coordinates    `json:"coordinates"`
	Phone       string                `json:"phone"`
	Website     string                `json:"website"`
	Aircraft    []string              `json:"aircraft"`
	MaxAltitude int                   `json:"maxAltitude"`
	Status      models.DropzoneStatus `json:"status"`
	StatusLabel string                `json:"statusLabel"`
	StatusColor string                `json:"statusColor"`
	Favorite    bool                  `json:"favorite"`
	Weather     *WeatherView          `json:"weather,omitempty"`
	Safety      *SafetyView           `json:"safety,omitempty"`
	UpdatedAt   *time.Time            `json:"updatedAt,omitempty"`
}

// newDropzoneView attaches the zone's held observation, if any, and
// evaluates it afresh. The level is never stored alongside the snapshot.
func newDropzoneView(z models.Dropzone, snap *dropzone.Snapshot, favorite bool, th safety.Thresholds) DropzoneView {
	sd := StatusDisplayFor(z.Status)
	v := DropzoneView{
		ID:          z.ID,
		Name:        z.Name,
		City:        z.City,
		Region:      z.Region,
		Coordinates: z.Coordinates,
		Phone:       z.Phone,
		Website:     z.Website,
		Aircraft:    z.Aircraft,
		MaxAltitude: z.MaxAltitude,
		Status:      z.Status,
		StatusLabel: sd.Label,
		StatusColor: sd.Color,
		Favorite:    favorite,
	}
	if snap != nil {
		w := newWeatherView(snap.Observation)
		s := newSafetyView(safety.Assess(snap.Observation, th))
		updated := snap.UpdatedAt
		v.Weather, v.Safety, v.UpdatedAt = &w, &s, &updated
	}
	return v
}

type ScanEntryView struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	Location      string  `json:"location"`
	Aircraft      string  `json:"aircraft"`
	Altitude      int     `json:"altitude"`
	CanopySize    int     `json:"canopySize,omitempty"`
	Weather       string  `json:"weather,omitempty"`
	Wind          string  `json:"wind,omitempty"`
	FreefallNotes string  `json:"freefallNotes,omitempty"`
	CanopyNotes   string  `json:"canopyNotes,omitempty"`
	Confidence    float64 `json:"confidence"`
}

func newScanEntryView(e scan.Entry) ScanEntryView {
	return ScanEntryView{
		ID:            e.ID,
		Date:          e.Date,
		Location:      e.Location,
		Aircraft:      e.Aircraft,
		Altitude:      e.AltitudeM,
		CanopySize:    e.CanopySize,
		Weather:       e.Weather,
		Wind:          e.Wind,
		FreefallNotes: e.FreefallNotes,
		CanopyNotes:   e.CanopyNotes,
		Confidence:    e.Confidence,
	}
}

type RefreshRunView struct {
	ID         int64      `json:"id"`
	Reason     string     `json:"reason"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	Zones      int        `json:"zones"`
	Live       int        `json:"live"`
	Synthetic  int        `json:"synthetic"`
	Failed     int        `json:"failed"`
	Success    bool       `json:"success"`
	Error      string     `json:"error,omitempty"`
}

func newRefreshRunView(r store.RefreshRun) RefreshRunView {
	v := RefreshRunView{
		ID:        r.ID,
		Reason:    r.Reason,
		StartedAt: r.StartedAt,
		Zones:     r.Zones,
		Live:      r.Live,
		Synthetic: r.Synthetic,
		Failed:    r.Failed,
		Success:   r.Success,
		Error:     r.ErrorMessage.String,
	}
	if r.FinishedAt.Valid {
		t := r.FinishedAt.Time
		v.FinishedAt = &t
	}
	return v
}
