/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Structured request logging (zap)
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/wage/*           Wage normalization
  /api/insurance/*      Social insurance
  /api/qualification/*  Qualification ROI
  /api/holidays/*       Holiday calendars
  /api/teams/*          Teams, members, team tasks
  /api/tasks/*          Single task analysis
  /api/history          Calculation history
  /api/storage/*        Versioned key/value envelopes
  /api/scenarios/*      Demo scenarios
  /api/health           Liveness and cache state

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// DefaultCORSOrigins are used when no origins are configured.
var DefaultCORSOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, corsOrigins []string) *chi.Mux {
	if len(corsOrigins) == 0 {
		corsOrigins = DefaultCORSOrigins
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		// Wage routes
		r.Route("/wage", func(r chi.Router) {
			r.Post("/calculate", h.CalculateWage)
			r.Post("/validate", h.ValidateWage)
		})

		// Insurance routes
		r.Route("/insurance", func(r chi.Router) {
			r.Post("/calculate", h.CalculateInsurance)
			r.Get("/regions", h.ListRegions)
		})

		r.Post("/qualification/roi", h.CalculateQualification)

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/{year}", h.GetHolidays)
			r.Post("/cache/clear", h.ClearHolidayCache)
		})

		// Team routes
		r.Route("/teams", func(r chi.Router) {
			r.Get("/", h.ListTeams)
			r.Post("/", h.CreateTeam)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetTeam)
				r.Delete("/", h.DeleteTeam)
				r.Post("/members", h.AddMember)
				r.Delete("/members/{memberID}", h.RemoveMember)
				r.Get("/cost", h.GetTeamCost)
				r.Get("/export", h.ExportTeam)
				r.Get("/tasks", h.ListTasks)
				r.Post("/tasks", h.CreateTask)
				r.Get("/tasks/overview", h.GetTaskOverview)
			})
		})

		// Task routes
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/{id}/analysis", h.AnalyzeTask)
			r.Delete("/{id}", h.DeleteTask)
		})

		r.Get("/history", h.ListHistory)

		// Storage routes
		r.Route("/storage", func(r chi.Router) {
			r.Get("/", h.ListKeys)
			r.Get("/{key}", h.GetEnvelope)
			r.Put("/{key}", h.PutEnvelope)
			r.Delete("/{key}", h.DeleteEnvelope)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Wage Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Wage Engine API</h1>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/health">/api/health</a> - Service status</li>
<li><a href="/api/teams">/api/teams</a> - List teams</li>
<li><a href="/api/holidays/2025">/api/holidays/2025</a> - Holiday calendar</li>
<li><a href="/api/insurance/regions">/api/insurance/regions</a> - Insurance regions</li>
<li><a href="/api/scenarios">/api/scenarios</a> - List scenarios</li>
</ul>
</body>
</html>`))
	})

	return r
}

// requestLogger logs one line per request through zap.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
