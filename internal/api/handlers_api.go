package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/lox/skylog/internal/models"
	"github.com/lox/skylog/internal/safety"
	"github.com/lox/skylog/internal/scan"
)

type healthResponse struct {
	Status           string     `json:"status"`
	Timestamp        time.Time  `json:"timestamp"`
	Database         string     `json:"database"`
	MigrationVersion int        `json:"migrationVersion"`
	LastRefresh      *time.Time `json:"lastRefresh,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Timestamp: s.clock.Now().UTC(),
		Database:  "ok",
	}
	status := http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warnw("health: database ping failed", "error", err)
		resp.Status, resp.Database = "degraded", "unavailable"
		status = http.StatusServiceUnavailable
	} else if v, err := s.store.MigrationVersion(); err == nil {
		resp.MigrationVersion = v
	}

	if s.refresher != nil {
		if last := s.refresher.LastUpdated(); !last.IsZero() {
			resp.LastRefresh = &last
		}
	}
	writeJSON(w, status, resp)
}

func floatParam(r *http.Request, name string) (float64, bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, true, fmt.Errorf("%s must be a number", name)
	}
	return f, true, nil
}

func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

// handleSafety evaluates ad-hoc conditions. Wind defaults to 0 and an
// absent or unreadable visibility counts as 10 km.
func (s *Server) handleSafety(w http.ResponseWriter, r *http.Request) {
	wind, _, err := floatParam(r, "wind")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q := r.URL.Query()
	obs := models.WeatherObservation{
		WindSpeedKmh: wind,
		Visibility:   q.Get("visibility"),
		Conditions:   q.Get("conditions"),
	}
	writeJSON(w, http.StatusOK, newSafetyView(safety.Assess(obs, s.thresholds())))
}

type weatherResponse struct {
	Weather WeatherView `json:"weather"`
	Safety  SafetyView  `json:"safety"`
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	lat, okLat, errLat := floatParam(r, "lat")
	lon, okLon, errLon := floatParam(r, "lon")
	if err := errors.Join(errLat, errLon); err != nil || !okLat || !okLon {
		writeError(w, http.StatusBadRequest, "lat and lon are required numbers")
		return
	}

	obs, err := s.weather.CurrentConditions(r.Context(), lat, lon)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, weatherResponse{
		Weather: newWeatherView(obs),
		Safety:  newSafetyView(safety.Assess(obs, s.thresholds())),
	})
}

func (s *Server) thresholds() safety.Thresholds {
	if s.refresher != nil {
		return s.refresher.Thresholds()
	}
	return safety.DefaultThresholds
}

type scanResponse struct {
	ImageURL    string          `json:"imageUrl"`
	Duplicate   bool            `json:"duplicate"`
	ScannedData []ScanEntryView `json:"scannedData"`
}

// handleScan stores an uploaded logbook page and returns the entries read
// from it for the jumper to review.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, scan.MaxImageBytes+(1<<20))
	file, header, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeDomainError(w, scan.ErrTooLarge)
			return
		}
		s.writeDomainError(w, scan.ErrEmptyImage)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, scan.MaxImageBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read image: "+err.Error())
		return
	}
	contentType, err := scan.ContentType(data)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	img, duplicate, err := s.store.SaveScanImage(models.ScanImage{
		ID:          uuid.NewString(),
		AccountID:   acc.ID,
		UploadedAt:  s.clock.Now().UTC(),
		Filename:    filepath.Base(header.Filename),
		ContentType: contentType,
	}, data)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	entries, err := s.recognizer.Recognize(r.Context(), data)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	views := make([]ScanEntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, newScanEntryView(e))
	}

	writeJSON(w, http.StatusOK, scanResponse{
		ImageURL:    "/api/scans/" + img.ID,
		Duplicate:   duplicate,
		ScannedData: views,
	})
}

func (s *Server) handleScanImage(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r.Context())
	img, data, err := s.store.GetScanImage(acc.ID, mux.Vars(r)["id"])
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if img == nil {
		writeError(w, http.StatusNotFound, "scan not found")
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(img.SizeBytes, 10))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
