package web

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/api"
	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/session"
	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/view"
)

// Options tunes the server beyond its collaborators.
type Options struct {
	Addr             string
	DashboardRefresh time.Duration // 0 disables the live dashboard socket
}

// Server serves the CMMS pages, regions, modals and actions.
type Server struct {
	backend  *api.Backend
	sessions *session.Controller
	views    *view.Renderer
	logger   *slog.Logger
	opts     Options
	pages    map[string]page
	router   *mux.Router
	http     *http.Server
}

// New wires the router. Nothing listens until Start.
func New(backend *api.Backend, sessions *session.Controller, views *view.Renderer, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		backend:  backend,
		sessions: sessions,
		views:    views,
		logger:   logger.With("component", "Web"),
		opts:     opts,
	}
	s.pages = s.pageTable()
	s.router = s.routes()
	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	// Static files
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(view.Static()))))
	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")

	// Authentication
	r.HandleFunc("/login", s.handleLoginPage).Methods("GET")
	r.HandleFunc("/login", s.handleLogin).Methods("POST")
	r.HandleFunc("/logout", s.handleLogout).Methods("POST")
	r.HandleFunc("/signup", s.handleSignupPage).Methods("GET")
	r.HandleFunc("/signup", s.handleSignup).Methods("POST")

	// Data regions
	r.HandleFunc("/regions/dashboard", s.requireAuth(s.regionDashboard)).Methods("GET")
	r.HandleFunc("/regions/equipment", s.requireAuth(s.regionEquipment)).Methods("GET")
	r.HandleFunc("/regions/maintenance", s.requireAuth(s.regionMaintenance)).Methods("GET")
	r.HandleFunc("/regions/failures/active", s.requireAuth(s.regionFailures(false))).Methods("GET")
	r.HandleFunc("/regions/failures/resolved", s.requireAuth(s.regionFailures(true))).Methods("GET")
	r.HandleFunc("/regions/reports/selector", s.requireAuth(s.regionReportSelector)).Methods("GET")
	r.HandleFunc("/regions/reports/equipment", s.requireAuth(s.regionEquipmentReport)).Methods("GET")
	r.HandleFunc("/regions/reports/downtime", s.requireAuth(s.regionDowntime)).Methods("GET")
	r.HandleFunc("/regions/users", s.requireAdmin(s.regionUsers)).Methods("GET")

	// Modals
	r.HandleFunc("/modals/equipment/new", s.requireAdmin(s.modalEquipmentNew)).Methods("GET")
	r.HandleFunc("/modals/equipment/{id:[0-9]+}", s.requireAuth(s.modalEquipmentDetail)).Methods("GET")
	r.HandleFunc("/modals/equipment/{id:[0-9]+}/edit", s.requireAdmin(s.modalEquipmentEdit)).Methods("GET")
	r.HandleFunc("/modals/equipment/{id:[0-9]+}/delete", s.requireAdmin(s.modalEquipmentDelete)).Methods("GET")
	r.HandleFunc("/modals/maintenance/new", s.requireAuth(s.modalMaintenanceNew)).Methods("GET")
	r.HandleFunc("/modals/maintenance/{id:[0-9]+}", s.requireAuth(s.modalMaintenanceDetail)).Methods("GET")
	r.HandleFunc("/modals/failures/new", s.requireAuth(s.modalFailureNew)).Methods("GET")
	r.HandleFunc("/modals/failures/{id:[0-9]+}/resolve", s.requireAdmin(s.modalFailureResolve)).Methods("GET")
	r.HandleFunc("/modals/users/new", s.requireAdmin(s.modalUserNew)).Methods("GET")
	r.HandleFunc("/modals/users/{id:[0-9]+}/edit", s.requireAdmin(s.modalUserEdit)).Methods("GET")
	r.HandleFunc("/modals/users/{id:[0-9]+}/delete", s.requireAdmin(s.modalUserDelete)).Methods("GET")

	// Mutations
	r.HandleFunc("/actions/equipment", s.requireAdmin(s.createEquipment)).Methods("POST")
	r.HandleFunc("/actions/equipment/{id:[0-9]+}", s.requireAdmin(s.updateEquipment)).Methods("POST")
	r.HandleFunc("/actions/equipment/{id:[0-9]+}/delete", s.requireAdmin(s.deleteEquipment)).Methods("POST")
	r.HandleFunc("/actions/maintenance", s.requireAuth(s.createMaintenance)).Methods("POST")
	r.HandleFunc("/actions/failures", s.requireAuth(s.createFailure)).Methods("POST")
	r.HandleFunc("/actions/failures/{id:[0-9]+}/resolve", s.requireAdmin(s.resolveFailure)).Methods("POST")
	r.HandleFunc("/actions/users", s.requireAdmin(s.createUser)).Methods("POST")
	r.HandleFunc("/actions/users/{id:[0-9]+}", s.requireAdmin(s.updateUser)).Methods("POST")
	r.HandleFunc("/actions/users/{id:[0-9]+}/delete", s.requireAdmin(s.deleteUser)).Methods("POST")
	r.HandleFunc("/actions/users/{id:[0-9]+}/toggle-active", s.requireAdmin(s.toggleUser)).Methods("POST")

	// Live dashboard
	r.HandleFunc("/dashboard/live", s.handleLive).Methods("GET")

	// Pages
	r.HandleFunc("/", s.handlePage).Methods("GET")
	r.HandleFunc("/{page:[a-z]+}", s.handlePage).Methods("GET")

	return r
}

// Start listens in a goroutine. Errors other than a clean shutdown are logged.
func (s *Server) Start() {
	s.logger.Info("Web UI listening", "address", s.opts.Addr)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Web server failed", "error", err)
		}
	}()
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"ok"}`)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets the websocket upgrade through the logging middleware.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return h.Hijack()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
