// Package scan extracts jump entries from photos of paper logbook pages.
package scan

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// MaxImageBytes caps the size of an uploaded page.
const MaxImageBytes = 10 << 20

var (
	ErrEmptyImage = errors.New("no image provided")
	ErrNotImage   = errors.New("upload is not an image")
	ErrTooLarge   = errors.New("image too large")
)

// Entry is one jump read off a logbook page, ready for review before it is
// added to the logbook.
type Entry struct {
	ID            string
	Date          string
	Location      string
	Aircraft      string
	AltitudeM     int
	CanopySize    int
	Weather       string
	Wind          string
	FreefallNotes string
	CanopyNotes   string
	Confidence    float64
}

type Recognizer interface {
	Recognize(ctx context.Context, image []byte) ([]Entry, error)
}

// ContentType sniffs the image type and rejects anything that is not an
// image.
func ContentType(image []byte) (string, error) {
	switch {
	case len(image) == 0:
		return "", ErrEmptyImage
	case len(image) > MaxImageBytes:
		return "", ErrTooLarge
	}
	ct := http.DetectContentType(image)
	if !strings.HasPrefix(ct, "image/") {
		return "", ErrNotImage
	}
	return ct, nil
}

// Mock returns a fixed sample page regardless of the image content.
type Mock struct{}

func (Mock) Recognize(ctx context.Context, image []byte) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}
	return []Entry{{
		ID:            uuid.NewString(),
		Date:          "2024-02-15",
		Location:      "Bourg-en-Bresse",
		Aircraft:      "Cessna 182",
		AltitudeM:     4000,
		CanopySize:    260,
		Weather:       "Nuageux 18°C",
		Wind:          "10 kt NO",
		FreefallNotes: "Bon saut, position stable",
		CanopyNotes:   "Atterrissage précis",
		Confidence:    0.85,
	}}, nil
}
