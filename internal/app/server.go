package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vk/taglib/internal/model"
	"github.com/vk/taglib/internal/tagkey"
	"github.com/vk/taglib/internal/tagstore"
)

const shutdownTimeout = 5 * time.Second

// queryServer answers membership queries against a finished registry.
type queryServer struct {
	reg    *tagstore.Registry
	logger *slog.Logger
}

// newRouter builds the query API:
//
//	GET /health
//	GET /v1/{type}/tags
//	GET /v1/{type}/members?tag=ns:name
//	GET /v1/{type}/tags-of?member=ns:name
//	GET /v1/{type}/has?tag=ns:name&member=ns:name
func newRouter(reg *tagstore.Registry, logger *slog.Logger) http.Handler {
	s := &queryServer{reg: reg, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.health)
	r.Route("/v1/{type}", func(r chi.Router) {
		r.Get("/tags", s.tags)
		r.Get("/members", s.members)
		r.Get("/tags-of", s.tagsOf)
		r.Get("/has", s.has)
	})
	return r
}

func (s *queryServer) health(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *queryServer) tags(w http.ResponseWriter, r *http.Request) {
	store, ok := s.store(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"tags": store.Tags()})
}

func (s *queryServer) members(w http.ResponseWriter, r *http.Request) {
	store, ok := s.store(w, r)
	if !ok {
		return
	}
	tag, ok := s.key(w, r, "tag")
	if !ok {
		return
	}
	members, found := store.Members(tag)
	if !found {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("unknown tag %s", tag))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"tag": tag, "members": members})
}

func (s *queryServer) tagsOf(w http.ResponseWriter, r *http.Request) {
	store, ok := s.store(w, r)
	if !ok {
		return
	}
	member, ok := s.key(w, r, "member")
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"member": member, "tags": store.TagsOf(member)})
}

func (s *queryServer) has(w http.ResponseWriter, r *http.Request) {
	store, ok := s.store(w, r)
	if !ok {
		return
	}
	tag, ok := s.key(w, r, "tag")
	if !ok {
		return
	}
	member, ok := s.key(w, r, "member")
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"tag": tag, "member": member, "has": store.Has(member, tag)})
}

// store resolves the {type} URL parameter, writing a 404 when it is unknown.
func (s *queryServer) store(w http.ResponseWriter, r *http.Request) (*tagstore.Store, bool) {
	name := chi.URLParam(r, "type")
	t, ok := model.ParseTagType(name)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("unknown tag type %q", name))
		return nil, false
	}
	return s.reg.For(t), true
}

// key parses a required query parameter, writing a 400 when it is missing or
// malformed.
func (s *queryServer) key(w http.ResponseWriter, r *http.Request, param string) (tagkey.Key, bool) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("missing query parameter %q", param))
		return tagkey.Key{}, false
	}
	k, err := tagkey.Parse(raw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("%s: %v", param, err))
		return tagkey.Key{}, false
	}
	return k, true
}

func (s *queryServer) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *queryServer) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to write response.", "error", err)
	}
}

// serve runs the query server until ctx is cancelled, then shuts it down.
func (a *App) serve(ctx context.Context, reg *tagstore.Registry) error {
	addr := fmt.Sprintf(":%d", a.config.ListenPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           newRouter(reg, a.logger),
		ReadHeaderTimeout: shutdownTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Query server starting.", "address", fmt.Sprintf("http://localhost%s/health", addr))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("query server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	a.logger.Info("Shutting down query server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("query server shutdown failed: %w", err)
	}
	a.logger.Debug("Query server shut down gracefully.")
	return nil
}
