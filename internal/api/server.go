package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lox/skylog/internal/auth"
	"github.com/lox/skylog/internal/dropzone"
	"github.com/lox/skylog/internal/logbook"
	"github.com/lox/skylog/internal/scan"
	"github.com/lox/skylog/internal/store"
	"github.com/lox/skylog/internal/weather"
)

// Config holds the server's collaborators. Weather and Recognizer are
// optional.
type Config struct {
	Store      *store.Store
	Auth       *auth.Service
	Logbook    *logbook.Logbook
	Directory  *dropzone.Directory
	Refresher  *dropzone.Refresher
	Weather    weather.Provider
	Recognizer scan.Recognizer
	Clock      clockwork.Clock
	Logger     *zap.SugaredLogger
}

type Server struct {
	store      *store.Store
	auth       *auth.Service
	logbook    *logbook.Logbook
	directory  *dropzone.Directory
	refresher  *dropzone.Refresher
	weather    weather.Provider
	recognizer scan.Recognizer
	clock      clockwork.Clock
	logger     *zap.SugaredLogger
	port       string
}

func NewServer(cfg Config, port string) *Server {
	s := &Server{
		store:      cfg.Store,
		auth:       cfg.Auth,
		logbook:    cfg.Logbook,
		directory:  cfg.Directory,
		refresher:  cfg.Refresher,
		weather:    cfg.Weather,
		recognizer: cfg.Recognizer,
		clock:      cfg.Clock,
		logger:     cfg.Logger,
		port:       port,
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.logger == nil {
		s.logger = zap.NewNop().Sugar()
	}
	if s.weather == nil {
		s.weather = weather.NewFallback(nil, nil, s.logger)
	}
	if s.recognizer == nil {
		s.recognizer = scan.Mock{}
	}
	return s
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(s.instrument)

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/signup", s.handleSignup).Methods(http.MethodPost)
	api.HandleFunc("/auth/signin", s.handleSignin).Methods(http.MethodPost)
	api.HandleFunc("/auth/signout", s.handleSignout).Methods(http.MethodPost)

	// Public, with favourites applied when a valid token is sent.
	api.HandleFunc("/dropzones", s.withOptionalAccount(s.handleListDropzones)).Methods(http.MethodGet)
	api.HandleFunc("/dropzones/regions", s.handleRegions).Methods(http.MethodGet)
	api.HandleFunc("/dropzones/refresh", s.handleRefresh).Methods(http.MethodPost)
	api.HandleFunc("/dropzones/refresh/runs", s.handleRefreshRuns).Methods(http.MethodGet)
	api.HandleFunc("/dropzones/{id}", s.withOptionalAccount(s.handleGetDropzone)).Methods(http.MethodGet)
	api.HandleFunc("/safety", s.handleSafety).Methods(http.MethodGet)
	api.HandleFunc("/weather", s.handleWeather).Methods(http.MethodGet)

	private := api.NewRoute().Subrouter()
	private.Use(s.requireAccount)
	private.HandleFunc("/profile", s.handleProfile).Methods(http.MethodGet)
	private.HandleFunc("/jumps", s.handleListJumps).Methods(http.MethodGet)
	private.HandleFunc("/jumps", s.handleCreateJump).Methods(http.MethodPost)
	private.HandleFunc("/jumps/{id}", s.handleDeleteJump).Methods(http.MethodDelete)
	private.HandleFunc("/favorites", s.handleListFavorites).Methods(http.MethodGet)
	private.HandleFunc("/favorites/{dropzoneID}", s.handleAddFavorite).Methods(http.MethodPost)
	private.HandleFunc("/favorites/{dropzoneID}", s.handleRemoveFavorite).Methods(http.MethodDelete)
	private.HandleFunc("/scan", s.handleScan).Methods(http.MethodPost)
	private.HandleFunc("/scans/{id}", s.handleScanImage).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{s.logger}),
		handlers.PrintRecoveryStack(true),
	)
	return recovery(cors(router))
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Warnw("server shutdown", "error", err)
		}
	}()

	s.logger.Infow("listening", "addr", server.Addr)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
