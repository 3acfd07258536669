package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lox/skylog/internal/logbook"
	"github.com/lox/skylog/internal/metrics"
)

type createJumpRequest struct {
	Date          string `json:"date"`
	Location      string `json:"location"`
	Aircraft      string `json:"aircraft"`
	Altitude      int    `json:"altitude"`
	CanopySize    int    `json:"canopySize"`
	Weather       string `json:"weather"`
	Wind          string `json:"wind"`
	FreefallNotes string `json:"freefallNotes"`
	CanopyNotes   string `json:"canopyNotes"`
}

func (s *Server) handleListJumps(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r.Context())
	jumps, err := s.logbook.List(acc.ID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	views := make([]JumpView, 0, len(jumps))
	for _, j := range jumps {
		views = append(views, newJumpView(j))
	}
	writeJSON(w, http.StatusOK, map[string][]JumpView{"jumps": views})
}

func (s *Server) handleCreateJump(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r.Context())

	var req createJumpRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	j, err := s.logbook.Add(acc.ID, logbook.Entry{
		Date:          req.Date,
		Location:      req.Location,
		Aircraft:      req.Aircraft,
		AltitudeM:     req.Altitude,
		CanopySize:    req.CanopySize,
		Weather:       req.Weather,
		Wind:          req.Wind,
		FreefallNotes: req.FreefallNotes,
		CanopyNotes:   req.CanopyNotes,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	metrics.JumpsLogged.Inc()
	writeJSON(w, http.StatusCreated, map[string]JumpView{"jump": newJumpView(*j)})
}

func (s *Server) handleDeleteJump(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r.Context())
	if err := s.logbook.Delete(acc.ID, mux.Vars(r)["id"]); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type profileResponse struct {
	Account AccountView `json:"account"`
	Stats   StatsView   `json:"stats"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r.Context())

	// Re-read so the jump total reflects writes made with this session.
	fresh, err := s.store.GetAccount(acc.ID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if fresh == nil {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}

	stats, err := s.logbook.Stats(acc.ID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		Account: newAccountView(fresh),
		Stats:   newStatsView(stats),
	})
}
