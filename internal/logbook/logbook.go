// Package logbook records jumps for an account and derives the summary
// statistics shown on the profile page.
package logbook

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/lox/skylog/internal/htmlutil"
	"github.com/lox/skylog/internal/models"
)

var (
	ErrInvalidJump  = errors.New("invalid jump")
	ErrJumpNotFound = errors.New("jump not found")
)

// FreefallPerJump is the nominal freefall time credited for each jump.
const FreefallPerJump = 70 * time.Second

type Store interface {
	InsertJump(j models.Jump) (int, error)
	GetJumps(accountID string) ([]models.Jump, error)
	GetLatestJump(accountID string) (*models.Jump, error)
	DeleteJump(accountID, jumpID string) (bool, error)
}

type Logbook struct {
	store Store
	clock clockwork.Clock
}

func New(store Store, clock clockwork.Clock) *Logbook {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Logbook{store: store, clock: clock}
}

// Entry is a jump as submitted by the jumper, before it is numbered.
type Entry struct {
	Date          string // YYYY-MM-DD
	Location      string
	Aircraft      string
	AltitudeM     int
	CanopySize    int // ft², 0 when unknown
	Weather       string
	Wind          string
	FreefallNotes string
	CanopyNotes   string
}

// Add validates an entry and appends it to the account's logbook.
func (l *Logbook) Add(accountID string, e Entry) (*models.Jump, error) {
	date, err := time.Parse(time.DateOnly, strings.TrimSpace(e.Date))
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidJump)
	}
	location := strings.TrimSpace(e.Location)
	aircraft := strings.TrimSpace(e.Aircraft)
	switch {
	case location == "":
		return nil, fmt.Errorf("%w: location is required", ErrInvalidJump)
	case aircraft == "":
		return nil, fmt.Errorf("%w: aircraft is required", ErrInvalidJump)
	case e.AltitudeM <= 0:
		return nil, fmt.Errorf("%w: altitude must be positive", ErrInvalidJump)
	case e.CanopySize < 0:
		return nil, fmt.Errorf("%w: canopy size must not be negative", ErrInvalidJump)
	}

	j := models.Jump{
		ID:            uuid.NewString(),
		AccountID:     accountID,
		Date:          date,
		Location:      location,
		Aircraft:      aircraft,
		AltitudeM:     e.AltitudeM,
		Weather:       optionalText(e.Weather),
		Wind:          optionalText(e.Wind),
		FreefallNotes: optionalText(htmlutil.CleanNote(e.FreefallNotes)),
		CanopyNotes:   optionalText(htmlutil.CleanNote(e.CanopyNotes)),
		CreatedAt:     l.clock.Now().UTC(),
	}
	if e.CanopySize > 0 {
		j.CanopySize = sql.NullInt64{Int64: int64(e.CanopySize), Valid: true}
	}

	number, err := l.store.InsertJump(j)
	if err != nil {
		return nil, fmt.Errorf("insert jump: %w", err)
	}
	j.JumpNumber = number
	return &j, nil
}

func optionalText(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

// List returns the account's jumps, most recent first.
func (l *Logbook) List(accountID string) ([]models.Jump, error) {
	jumps, err := l.store.GetJumps(accountID)
	if err != nil {
		return nil, fmt.Errorf("get jumps: %w", err)
	}
	return jumps, nil
}

func (l *Logbook) Delete(accountID, jumpID string) error {
	ok, err := l.store.DeleteJump(accountID, jumpID)
	if err != nil {
		return fmt.Errorf("delete jump: %w", err)
	}
	if !ok {
		return ErrJumpNotFound
	}
	return nil
}

type Stats struct {
	TotalJumps       int
	TotalAltitudeM   int
	TotalFreefall    time.Duration
	FavoriteDropzone string
	UniqueLocations  int
}

// FreefallDisplay formats the freefall total as "Xm Ys".
func (s Stats) FreefallDisplay() string {
	secs := int(s.TotalFreefall / time.Second)
	return fmt.Sprintf("%dm %ds", secs/60, secs%60)
}

// Stats summarises the account's logbook. The favourite drop zone is the
// location of the most recently logged jump.
func (l *Logbook) Stats(accountID string) (Stats, error) {
	jumps, err := l.store.GetJumps(accountID)
	if err != nil {
		return Stats{}, fmt.Errorf("get jumps: %w", err)
	}
	latest, err := l.store.GetLatestJump(accountID)
	if err != nil {
		return Stats{}, fmt.Errorf("get latest jump: %w", err)
	}
	return Summarize(jumps, latest), nil
}

// Summarize computes Stats from a set of jumps and the most recently logged one.
func Summarize(jumps []models.Jump, latest *models.Jump) Stats {
	st := Stats{
		TotalJumps:       len(jumps),
		TotalFreefall:    time.Duration(len(jumps)) * FreefallPerJump,
		FavoriteDropzone: "N/A",
	}
	locations := make(map[string]struct{})
	for _, j := range jumps {
		st.TotalAltitudeM += j.AltitudeM
		locations[j.Location] = struct{}{}
	}
	st.UniqueLocations = len(locations)
	if latest != nil {
		st.FavoriteDropzone = latest.Location
	}
	return st
}
