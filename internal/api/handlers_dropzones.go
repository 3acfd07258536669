package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/lox/skylog/internal/dropzone"
	"github.com/lox/skylog/internal/models"
	"github.com/lox/skylog/internal/safety"
)

type dropzonesResponse struct {
	Dropzones   []DropzoneView `json:"dropzones"`
	Count       int            `json:"count"`
	LastUpdated *time.Time     `json:"lastUpdated,omitempty"`
}

// handleListDropzones serves the directory filtered by ?q=, ?status= and
// ?region=, with each zone's weather evaluated at read time. ?minLevel=
// keeps only zones at or above a safety level.
func (s *Server) handleListDropzones(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	minRank := -1
	if v := q.Get("minLevel"); v != "" {
		level, ok := safety.ParseLevel(v)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown level %q", v))
			return
		}
		minRank = level.Rank()
	}

	favorites, err := s.favoritesFor(accountFrom(r.Context()))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	isFavorite := make(map[string]bool, len(favorites))
	for _, id := range favorites {
		isFavorite[id] = true
	}

	zones := dropzone.SortFavoritesFirst(
		s.directory.Filter(q.Get("q"), q.Get("status"), q.Get("region")),
		favorites,
	)
	snaps := s.refresher.Snapshots()
	th := s.refresher.Thresholds()

	views := make([]DropzoneView, 0, len(zones))
	for _, z := range zones {
		var snap *dropzone.Snapshot
		if sn, ok := snaps[z.ID]; ok {
			snap = &sn
		}
		v := newDropzoneView(z, snap, isFavorite[z.ID], th)
		if minRank >= 0 && (v.Safety == nil || v.Safety.Level.Rank() < minRank) {
			continue
		}
		views = append(views, v)
	}

	resp := dropzonesResponse{Dropzones: views, Count: len(views)}
	if last := s.refresher.LastUpdated(); !last.IsZero() {
		resp.LastUpdated = &last
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetDropzone(w http.ResponseWriter, r *http.Request) {
	z, ok := s.directory.Get(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "dropzone not found")
		return
	}

	favorites, err := s.favoritesFor(accountFrom(r.Context()))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	favorite := false
	for _, id := range favorites {
		if id == z.ID {
			favorite = true
			break
		}
	}

	var snap *dropzone.Snapshot
	if sn, ok := s.refresher.Snapshot(z.ID); ok {
		snap = &sn
	}
	writeJSON(w, http.StatusOK, map[string]DropzoneView{
		"dropzone": newDropzoneView(z, snap, favorite, s.refresher.Thresholds()),
	})
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"regions": s.directory.Regions()})
}

type refreshResponse struct {
	Zones      int            `json:"zones"`
	Live       int            `json:"live"`
	Synthetic  int            `json:"synthetic"`
	Failed     int            `json:"failed"`
	Levels     map[string]int `json:"levels"`
	DurationMS int64          `json:"durationMs"`
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	sum, err := s.refresher.Refresh(r.Context(), "manual")
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	levels := make(map[string]int, len(sum.Levels))
	for l, n := range sum.Levels {
		levels[string(l)] = n
	}
	writeJSON(w, http.StatusOK, refreshResponse{
		Zones:      sum.Zones,
		Live:       sum.Live,
		Synthetic:  sum.Synthetic,
		Failed:     sum.Failed,
		Levels:     levels,
		DurationMS: sum.Duration.Milliseconds(),
	})
}

func (s *Server) handleRefreshRuns(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", 20)
	if err != nil || limit < 1 || limit > 100 {
		writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
		return
	}

	runs, err := s.store.GetRecentRefreshRuns(limit)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	views := make([]RefreshRunView, 0, len(runs))
	for _, run := range runs {
		views = append(views, newRefreshRunView(run))
	}
	writeJSON(w, http.StatusOK, map[string][]RefreshRunView{"runs": views})
}

func (s *Server) favoritesFor(acc *models.Account) ([]string, error) {
	if acc == nil {
		return nil, nil
	}
	return s.store.GetFavorites(acc.ID)
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := s.store.GetFavorites(accountFrom(r.Context()).ID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"favorites": favorites})
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r.Context())
	id := mux.Vars(r)["dropzoneID"]
	if _, ok := s.directory.Get(id); !ok {
		writeError(w, http.StatusNotFound, "dropzone not found")
		return
	}

	if err := s.store.AddFavorite(models.Favorite{AccountID: acc.ID, DropzoneID: id, CreatedAt: s.clock.Now().UTC()}); err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.handleListFavorites(w, r)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r.Context())
	if err := s.store.RemoveFavorite(acc.ID, mux.Vars(r)["dropzoneID"]); err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.handleListFavorites(w, r)
}
