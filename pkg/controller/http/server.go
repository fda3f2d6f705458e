package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cadencehq/cadence/pkg/usecase"
	"github.com/cadencehq/cadence/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api/users/{userID}", func(r chi.Router) {
		r.Get("/plan", s.getPlan)
		r.Post("/plan", s.generatePlan)
		r.Post("/plan/outcome", s.recordOutcome)
		r.Get("/lanes", s.getLanes)
		r.Get("/best-action", s.getBestAction)
		r.Get("/nudges", s.getNudges)

		r.Get("/actions", s.listActions)
		r.Post("/actions", s.createAction)
		r.Post("/actions/{actionID}/complete", s.completeAction)
		r.Post("/actions/{actionID}/transition", s.transitionAction)
		r.Post("/actions/{actionID}/snooze", s.snoozeAction)
		r.Post("/actions/{actionID}/wake", s.wakeAction)
		r.Post("/actions/{actionID}/promise", s.promiseAction)

		r.Get("/leads", s.listLeads)
		r.Post("/leads", s.createLead)
		r.Post("/leads/{leadID}/interaction", s.recordInteraction)

		r.Get("/settings", s.getSettings)
		r.Put("/settings", s.putSettings)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
