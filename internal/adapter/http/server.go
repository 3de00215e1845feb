package adapthttp

import (
	"net/http"

	"weighttrack/internal/app"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Services groups the application services the adapter drives.
type Services struct {
	Auth    *app.AuthService
	Weights *app.WeightService
	Goals   *app.GoalService
	Prefs   *app.PreferenceService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth    *app.AuthService
	weights *app.WeightService
	goals   *app.GoalService
	prefs   *app.PreferenceService
	log     zerolog.Logger
	reg     *prometheus.Registry
	metrics *httpMetrics
}

// New creates a Server wired to the given application services. Request
// metrics are registered with reg and exposed on /metrics.
func New(svc Services, log zerolog.Logger, reg *prometheus.Registry) (*Server, error) {
	m, err := newHTTPMetrics(reg)
	if err != nil {
		return nil, err
	}
	return &Server{
		auth:    svc.Auth,
		weights: svc.Weights,
		goals:   svc.Goals,
		prefs:   svc.Prefs,
		log:     log,
		reg:     reg,
		metrics: m,
	}, nil
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))

	mux.HandleFunc("POST /api/accounts", s.handleCreateAccount)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)

	authed := func(h http.HandlerFunc) http.Handler { return s.authMiddleware(h) }

	mux.Handle("GET /api/weights", authed(s.handleListWeights))
	mux.Handle("POST /api/weights", authed(s.handleInsertWeight))
	mux.Handle("PUT /api/weights/{id}", authed(s.handleUpdateWeight))
	mux.Handle("DELETE /api/weights/{id}", authed(s.handleDeleteWeight))

	mux.Handle("GET /api/goal", authed(s.handleGoalStatus))
	mux.Handle("PUT /api/goal", authed(s.handleSetGoal))
	mux.Handle("DELETE /api/goal", authed(s.handleClearGoal))

	mux.Handle("GET /api/preferences/unit", authed(s.handleGetUnit))
	mux.Handle("PUT /api/preferences/unit", authed(s.handleSetUnit))

	return s.loggingMiddleware(withNoCache(mux))
}
