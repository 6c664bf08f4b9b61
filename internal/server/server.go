package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/thesavant42/platewatch/internal/auth"
	"github.com/thesavant42/platewatch/internal/db"
	"github.com/thesavant42/platewatch/internal/models"
)

type ctxKey int

const uidKey ctxKey = iota

// Server is the development backend serving sightings per session
type Server struct {
	store  db.Store
	logger *log.Logger
}

// New creates a server over store
func New(store db.Store, logger *log.Logger) *Server {
	return &Server{store: store, logger: logger}
}

// Routes returns the router with every endpoint mounted
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealthz)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/whoami", s.handleWhoAmI)
		r.Get("/get-list", s.handleList)
		r.Get("/get-list/{id}", s.handleGet)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("Listening", "addr", addr)

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"uid": uidFrom(r.Context())})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListSightings(r.Context(), uidFrom(r.Context()))
	if err != nil {
		s.logger.Error("List failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load sightings")
		return
	}
	writeJSON(w, http.StatusOK, models.SightingList{Data: records})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	record, err := s.store.GetSighting(r.Context(), uidFrom(r.Context()), chi.URLParam(r, "id"))
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "sighting not found")
		return
	}
	if err != nil {
		s.logger.Error("Get failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load sighting")
		return
	}
	writeJSON(w, http.StatusOK, map[string]models.Sighting{"data": record})
}

// requireSession resolves the session cookie or bearer token to a user id
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing session")
			return
		}

		uid, err := s.store.LookupSession(r.Context(), token)
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "unknown session")
			return
		}
		if err != nil {
			s.logger.Error("Session lookup failed", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to check session")
			return
		}

		ctx := context.WithValue(r.Context(), uidKey, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info(r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(auth.CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

func uidFrom(ctx context.Context) string {
	uid, _ := ctx.Value(uidKey).(string)
	return uid
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
