package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/api"
	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/view"
)

const defaultPage = "dashboard"

// page is one navigable view. Its body is painted without backend calls.
type page struct {
	label     string
	adminOnly bool
	body      string
}

var pageOrder = []string{"dashboard", "equipment", "maintenance", "failures", "reports", "users"}

// pageData is what every page shell may refer to.
type pageData struct {
	IsAdmin  bool
	LiveFeed bool
	Filter   api.EquipmentFilter
}

func (s *Server) pageTable() map[string]page {
	return map[string]page{
		"dashboard":   {label: "Dashboard", body: "page-dashboard"},
		"equipment":   {label: "Equipment", body: "page-equipment"},
		"maintenance": {label: "Maintenance", body: "page-maintenance"},
		"failures":    {label: "Failures", body: "page-failures"},
		"reports":     {label: "Reports", body: "page-reports"},
		"users":       {label: "Users", body: "page-users", adminOnly: true},
	}
}

func (s *Server) shellData(r *http.Request, sc *scope) pageData {
	return pageData{
		IsAdmin:  sc.app().IsAdmin(),
		LiveFeed: s.opts.DashboardRefresh > 0,
		Filter: api.EquipmentFilter{
			Status: r.URL.Query().Get("status"),
			Type:   r.URL.Query().Get("type"),
		},
	}
}

// handlePage is the full-page entry point. The session is checked against
// the backend first; a stale session gets the login page whatever was asked.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sc := s.begin(r)
	token := mux.Vars(r)["page"]

	if !s.sessions.CheckAuth(r.Context(), sc.st, sc.client) {
		next := token
		if _, ok := s.pages[next]; !ok {
			next = ""
		}
		s.renderLogin(w, r, sc, loginData{Next: next})
		return
	}
	if token == "" {
		token = defaultPage
	}
	s.navigate(w, r, sc, token)
}

// navigate renders token's page and records it as current. Unknown tokens
// go back to the current page, which stays unchanged.
func (s *Server) navigate(w http.ResponseWriter, r *http.Request, sc *scope, token string) {
	p, ok := s.pages[token]
	if !ok {
		prev := sc.app().CurrentPage
		if _, known := s.pages[prev]; !known {
			prev = defaultPage
		}
		s.logger.Debug("Unknown page", "page", token, "current", prev)
		s.commit(w, r, sc)
		http.Redirect(w, r, "/"+prev, http.StatusSeeOther)
		return
	}

	s.sessions.SetCurrentPage(sc.st, token)
	body := p.body
	var data any = s.shellData(r, sc)
	if p.adminOnly && !sc.app().IsAdmin() {
		body, data = "access-denied", nil
	}
	s.renderDocument(w, r, sc, view.Page{
		Title:    p.label,
		Nav:      s.navLinks(sc, token),
		Body:     body,
		Data:     data,
		LiveFeed: token == defaultPage && s.opts.DashboardRefresh > 0,
	})
}

func (s *Server) navLinks(sc *scope, active string) []view.NavLink {
	isAdmin := sc.app().IsAdmin()
	links := make([]view.NavLink, 0, len(pageOrder))
	for _, token := range pageOrder {
		p := s.pages[token]
		if p.adminOnly && !isAdmin {
			continue
		}
		links = append(links, view.NavLink{Page: token, Label: p.label, Active: token == active})
	}
	return links
}
