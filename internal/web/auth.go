package web

import (
	"net/http"
	"strings"

	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/api"
	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/models"
	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/session"
	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/view"
)

// scope is one request's session plus a backend client carrying its cookies.
type scope struct {
	st     *session.State
	client *api.Client
	saved  bool
}

func (sc *scope) app() session.AppContext {
	return sc.st.Context()
}

type handlerFunc func(w http.ResponseWriter, r *http.Request, sc *scope)

func (s *Server) begin(r *http.Request) *scope {
	st := s.sessions.Load(r)
	return &scope{st: st, client: s.backend.Client(st.BackendCookies())}
}

// commit stores the session cookie. It must run before the body is written.
func (s *Server) commit(w http.ResponseWriter, r *http.Request, sc *scope) {
	if sc.saved {
		return
	}
	sc.saved = true
	if sc.app().Authenticated {
		sc.st.SyncBackendCookies(sc.client.CookieHeader())
	}
	if err := s.sessions.Save(w, r, sc.st); err != nil {
		s.logger.Error("Session save failed", "path", r.URL.Path, "error", err)
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func (s *Server) requireAuth(next handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc := s.begin(r)
		if !sc.app().Authenticated {
			s.toLogin(w, r, sc)
			return
		}
		next(w, r, sc)
	}
}

func (s *Server) requireAdmin(next handlerFunc) http.HandlerFunc {
	return s.requireAuth(func(w http.ResponseWriter, r *http.Request, sc *scope) {
		if !sc.app().IsAdmin() {
			s.logger.Warn("Admin access denied", "path", r.URL.Path, "user_id", sc.app().Identity.ID)
			if !isHTMX(r) {
				s.commit(w, r, sc)
				http.Error(w, "Admin access required", http.StatusForbidden)
				return
			}
			s.alertOnly(w, r, sc, "error", "Admin access required")
			return
		}
		next(w, r, sc)
	})
}

// toLogin sends the browser to the login page, replacing the whole
// document for htmx requests.
func (s *Server) toLogin(w http.ResponseWriter, r *http.Request, sc *scope) {
	s.commit(w, r, sc)
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// expired handles a backend 401 in the middle of a session.
func (s *Server) expired(w http.ResponseWriter, r *http.Request, sc *scope) {
	s.sessions.Expire(sc.st)
	sc.st.AddFlash("error", "Your session has expired. Please log in again.")
	s.toLogin(w, r, sc)
}

type loginData struct {
	Email   string
	Error   string
	Message string
	Next    string
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, sc *scope, data loginData) {
	s.renderDocument(w, r, sc, view.Page{Title: "Login", Body: "login", Data: data})
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	sc := s.begin(r)
	s.renderLogin(w, r, sc, loginData{Next: r.URL.Query().Get("next")})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	sc := s.begin(r)
	if err := r.ParseForm(); err != nil {
		s.renderLogin(w, r, sc, loginData{Error: "Invalid form submission"})
		return
	}
	creds := models.Credentials{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	next := r.FormValue("next")

	if err := s.sessions.Login(r.Context(), sc.st, sc.client, creds); err != nil {
		s.renderLogin(w, r, sc, loginData{
			Email: creds.Email,
			Error: api.Message(err, "Login failed"),
			Next:  next,
		})
		return
	}

	if _, ok := s.pages[next]; !ok {
		next = defaultPage
	}
	s.commit(w, r, sc)
	http.Redirect(w, r, "/"+next, http.StatusSeeOther)
}

// handleLogout always lands on the login page, whatever the backend said.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sc := s.begin(r)
	s.sessions.Logout(r.Context(), sc.st, sc.client)
	s.commit(w, r, sc)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

type signupData struct {
	FullName string
	Email    string
	Error    string
}

func (s *Server) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	sc := s.begin(r)
	s.renderDocument(w, r, sc, view.Page{Title: "Sign Up", Body: "signup", Data: signupData{}})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	sc := s.begin(r)
	if err := r.ParseForm(); err != nil {
		s.renderDocument(w, r, sc, view.Page{Title: "Sign Up", Body: "signup", Data: signupData{Error: "Invalid form submission"}})
		return
	}
	in := models.SignupInput{
		FullName: strings.TrimSpace(r.FormValue("full_name")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	msg, err := s.sessions.Signup(r.Context(), sc.client, in)
	if err != nil {
		s.renderDocument(w, r, sc, view.Page{Title: "Sign Up", Body: "signup", Data: signupData{
			FullName: in.FullName,
			Email:    in.Email,
			Error:    api.Message(err, "Registration failed"),
		}})
		return
	}
	if msg == "" {
		msg = "Registration successful. Please log in."
	}
	s.renderLogin(w, r, sc, loginData{Email: in.Email, Message: msg})
}
