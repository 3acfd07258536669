package models

import (
	"database/sql"
	"time"
)

type Account struct {
	ID           string
	Name         string
	Email        string
	License      string
	PasswordHash string
	JoinedAt     time.Time
	TotalJumps   int
	CreatedAt    time.Time
}

type Session struct {
	Token     string
	AccountID string
	CreatedAt time.Time
	ExpiresAt time.Time
}

type Jump struct {
	ID            string
	AccountID     string
	JumpNumber    int
	Date          time.Time
	Location      string
	Aircraft      string
	AltitudeM     int
	CanopySize    sql.NullInt64 // ft²
	Weather       sql.NullString
	Wind          sql.NullString
	FreefallNotes sql.NullString
	CanopyNotes   sql.NullString
	CreatedAt     time.Time
}

type Favorite struct {
	AccountID  string
	DropzoneID string
	CreatedAt  time.Time
}

// ScanImage is an uploaded photo of a paper logbook page.
type ScanImage struct {
	ID          string
	AccountID   string
	UploadedAt  time.Time
	Filename    string
	ContentType string
	SizeBytes   int64
	Hash        string // sha256 hex of the image bytes
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type DropzoneStatus string

const (
	StatusOpen    DropzoneStatus = "open"
	StatusLimited DropzoneStatus = "limited"
	StatusClosed  DropzoneStatus = "closed"
)

type Dropzone struct {
	ID          string
	Name        string
	City        string
	Region      string
	Coordinates Coordinates
	Phone       string
	Website     string
	Aircraft    []string
	MaxAltitude int // metres
	Status      DropzoneStatus
}

// WeatherObservation is the current surface weather at a point. Pressure,
// humidity and wind direction are carried for display only.
type WeatherObservation struct {
	TemperatureCelsius float64
	WindSpeedKmh       float64
	Wind               string // display, e.g. "18 km/h NO"
	Visibility         string // display, e.g. "10 km"
	Conditions         string
	Pressure           sql.NullFloat64
	Humidity           sql.NullInt64
	WindDirection      sql.NullInt64
	ObservedAt         time.Time
	Synthetic          bool
}
