package web

import (
	"net/http"
	"strings"

	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/api"
	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/view"
)

// Events fired through HX-Trigger after a successful mutation. Regions
// listen for them with "from:body".
const (
	evEquipment   = "equipment-changed"
	evMaintenance = "maintenance-changed"
	evFailures    = "failures-changed"
	evUsers       = "users-changed"
)

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("Render failed", "path", r.URL.Path, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// renderDocument paints a full page with pending flashes.
func (s *Server) renderDocument(w http.ResponseWriter, r *http.Request, sc *scope, p view.Page) {
	app := sc.app()
	if app.Authenticated && p.User == nil {
		p.User = app.Identity
	}
	for _, f := range sc.st.Flashes() {
		p.Flashes = append(p.Flashes, view.Alert{Kind: f.Kind, Message: f.Message})
	}
	s.commit(w, r, sc)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.views.RenderPage(w, p); err != nil {
		s.serverError(w, r, err)
	}
}

// fragment writes one named template, typically a region.
func (s *Server) fragment(w http.ResponseWriter, r *http.Request, sc *scope, name string, data any) {
	s.commit(w, r, sc)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.views.Render(w, name, data); err != nil {
		s.serverError(w, r, err)
	}
}

// alertOnly leaves the target untouched and shows a banner.
func (s *Server) alertOnly(w http.ResponseWriter, r *http.Request, sc *scope, kind, msg string) {
	s.commit(w, r, sc)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("HX-Reswap", "none")
	if err := s.views.RenderAlert(w, view.Alert{Kind: kind, Message: msg}); err != nil {
		s.serverError(w, r, err)
	}
}

// regionError renders the region's empty state plus a failure banner. A
// rejected session sends the browser back to login instead.
func (s *Server) regionError(w http.ResponseWriter, r *http.Request, sc *scope, err error, name string, empty any, msg string) {
	if api.IsUnauthorized(err) {
		s.expired(w, r, sc)
		return
	}
	s.logger.Warn("Region load failed", "path", r.URL.Path, "error", err)
	s.commit(w, r, sc)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.views.Render(w, name, empty); err != nil {
		s.serverError(w, r, err)
		return
	}
	if err := s.views.RenderAlert(w, view.Alert{Kind: "error", Message: msg}); err != nil {
		s.logger.Error("Alert render failed", "error", err)
	}
}

// modal mounts m into the modal container.
func (s *Server) modal(w http.ResponseWriter, r *http.Request, sc *scope, m view.Modal) {
	s.commit(w, r, sc)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.views.RenderModal(w, m); err != nil {
		s.serverError(w, r, err)
	}
}

func (s *Server) confirm(w http.ResponseWriter, r *http.Request, sc *scope, title string, c view.Confirm) {
	s.commit(w, r, sc)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.views.RenderConfirm(w, title, c); err != nil {
		s.serverError(w, r, err)
	}
}

// modalLoadError reports a failed lookup behind a modal without opening it.
func (s *Server) modalLoadError(w http.ResponseWriter, r *http.Request, sc *scope, err error, msg string) {
	if api.IsUnauthorized(err) {
		s.expired(w, r, sc)
		return
	}
	s.logger.Warn("Modal load failed", "path", r.URL.Path, "error", err)
	s.alertOnly(w, r, sc, "error", api.Message(err, msg))
}

// formError re-mounts the modal with the entered values and an inline alert.
func (s *Server) formError(w http.ResponseWriter, r *http.Request, sc *scope, err error, m view.Modal, fallback string) {
	if api.IsUnauthorized(err) {
		s.expired(w, r, sc)
		return
	}
	m.Alert = api.Message(err, fallback)
	s.modal(w, r, sc, m)
}

// actionError leaves the modal open and shows a banner. Used by
// confirmation modals, which have no fields to keep.
func (s *Server) actionError(w http.ResponseWriter, r *http.Request, sc *scope, err error, fallback string) {
	if api.IsUnauthorized(err) {
		s.expired(w, r, sc)
		return
	}
	s.logger.Warn("Action failed", "path", r.URL.Path, "error", err)
	s.alertOnly(w, r, sc, "error", api.Message(err, fallback))
}

// done closes the modal, fires the reload events and shows a success banner.
func (s *Server) done(w http.ResponseWriter, r *http.Request, sc *scope, msg string, events ...string) {
	s.commit(w, r, sc)
	if len(events) > 0 {
		w.Header().Set("HX-Trigger", strings.Join(events, ", "))
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.views.CloseModal(w, msg); err != nil {
		s.logger.Error("Alert render failed", "error", err)
	}
}

func confirmed(r *http.Request) bool {
	return r.PostFormValue("confirm") == "yes"
}
