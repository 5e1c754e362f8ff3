package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"turing_judge/render"
	"turing_judge/session"
)

//go:embed web/dist
var embeddedStatic embed.FS

// Server exposes the session callbacks to the browser page.
type Server struct {
	actions  session.Actions
	renderer *render.Renderer
	logger   zerolog.Logger
	staticFS http.Handler
}

func New(actions session.Actions, logger zerolog.Logger) (*Server, error) {
	if actions == nil {
		return nil, errors.New("session actions required")
	}

	sub, err := fs.Sub(embeddedStatic, "web/dist")
	if err != nil {
		return nil, err
	}

	return &Server{
		actions:  actions,
		renderer: render.New(),
		logger:   logger.With().Str("component", "server").Logger(),
		staticFS: http.FileServer(http.FS(sub)),
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(s.logMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api/session", func(r chi.Router) {
		r.Get("/", s.handleSession)
		r.Post("/question", s.handleQuestion)
		r.Post("/answer", s.handleAnswer)
		r.Post("/reset", s.handleReset)
	})
	r.NotFound(s.staticHandler())
	return r
}

func (s *Server) staticHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		// "/" is served as index.html by the file server itself
		s.staticFS.ServeHTTP(w, r)
	}
}

// --- Handlers ---

type sessionResp struct {
	session.Session
	Document string `json:"document,omitempty"`
	HTML     string `json:"html,omitempty"`
}

type answerReq struct {
	Answer string `json:"answer"`
}

type errorResp struct {
	Error   string      `json:"error"`
	Session sessionResp `json:"session"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.view(s.actions.Snapshot()))
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	snap, err := s.actions.GenerateQuestion(detach(r))
	s.respond(w, snap, err)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	snap, err := s.actions.SubmitAnswer(detach(r), req.Answer)
	s.respond(w, snap, err)
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	snap, err := s.actions.StartNewTest()
	s.respond(w, snap, err)
}

func (s *Server) respond(w http.ResponseWriter, snap session.Session, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, s.view(snap))
	case errors.Is(err, session.ErrBusy), errors.Is(err, session.ErrInvalidTransition):
		writeJSON(w, http.StatusConflict, errorResp{Error: err.Error(), Session: s.view(snap)})
	default:
		s.logger.Error().Err(err).Msg("unexpected session error")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) view(snap session.Session) sessionResp {
	resp := sessionResp{Session: snap}
	if snap.State != session.StateComplete {
		return resp
	}
	resp.Document = session.FormatDocument(snap)
	html, err := s.renderer.HTML(resp.Document)
	if err != nil {
		s.logger.Warn().Err(err).Msg("render result document")
		return resp
	}
	resp.HTML = html
	return resp
}

// --- Helpers ---

// detach keeps an issued request chain running if the browser goes away.
func detach(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", chiMiddleware.GetReqID(r.Context())).
			Msg("http request")
	})
}
