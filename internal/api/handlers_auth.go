package api

import (
	"net/http"
	"time"

	"github.com/lox/skylog/internal/auth"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	License  string `json:"license"`
}

type signinRequest struct {
	License  string `json:"license"`
	Password string `json:"password"`
}

type sessionResponse struct {
	AccessToken string      `json:"accessToken"`
	ExpiresAt   string      `json:"expiresAt"`
	Account     AccountView `json:"account"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	acc, err := s.auth.Signup(auth.SignupRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		License:  req.License,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.logger.Infow("account created", "account", acc.ID, "license", acc.License)
	writeJSON(w, http.StatusCreated, map[string]AccountView{"account": newAccountView(acc)})
}

func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, acc, err := s.auth.Signin(req.License, req.Password)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		AccessToken: sess.Token,
		ExpiresAt:   sess.ExpiresAt.UTC().Format(time.RFC3339),
		Account:     newAccountView(acc),
	})
}

func (s *Server) handleSignout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, auth.ErrUnauthorized.Error())
		return
	}
	if err := s.auth.Signout(token); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
