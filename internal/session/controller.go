package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/models"
)

const (
	cookieName = "cmms_session"

	keyIdentity = "identity"
	keyPage     = "current_page"
	keyBackend  = "backend_cookies"

	flashSuccess = "flash_success"
	flashError   = "flash_error"
)

// AppContext is the per-browser application state. Only the Controller
// writes it.
type AppContext struct {
	Identity      *models.User
	Authenticated bool
	CurrentPage   string
}

// IsAdmin reports whether admin-only affordances may be shown.
func (a AppContext) IsAdmin() bool {
	return a.Authenticated && a.Identity.IsAdmin()
}

// Gateway is the slice of the backend the Controller needs.
type Gateway interface {
	CurrentUser(ctx context.Context) (*models.User, error)
	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
	Logout(ctx context.Context) error
	Signup(ctx context.Context, in models.SignupInput) (string, error)
}

// State is one request's view of the browser session.
type State struct {
	app     AppContext
	session *sessions.Session
}

// Context returns a copy of the application state.
func (s *State) Context() AppContext {
	return s.app
}

// BackendCookies is the stored backend cookie header.
func (s *State) BackendCookies() string {
	v, _ := s.session.Values[keyBackend].(string)
	return v
}

// SyncBackendCookies records the backend cookies after a call.
func (s *State) SyncBackendCookies(header string) {
	s.session.Values[keyBackend] = header
}

type Flash struct {
	Kind    string // success or error
	Message string
}

func (s *State) AddFlash(kind, msg string) {
	key := flashSuccess
	if kind == "error" {
		key = flashError
	}
	s.session.AddFlash(msg, key)
}

// Flashes drains pending banners, success first.
func (s *State) Flashes() []Flash {
	var out []Flash
	for _, kv := range []struct{ key, kind string }{{flashSuccess, "success"}, {flashError, "error"}} {
		for _, f := range s.session.Flashes(kv.key) {
			if msg, ok := f.(string); ok {
				out = append(out, Flash{Kind: kv.kind, Message: msg})
			}
		}
	}
	return out
}

// Controller mediates every read and write of AppContext.
type Controller struct {
	store  sessions.Store
	logger *slog.Logger
}

func NewController(store sessions.Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{store: store, logger: logger.With("component", "Session")}
}

// Load reads the browser session. An unreadable cookie starts a fresh one.
func (c *Controller) Load(r *http.Request) *State {
	sess, err := c.store.Get(r, cookieName)
	if err != nil {
		c.logger.Debug("Starting new session", "reason", err)
	}
	if sess == nil {
		sess = sessions.NewSession(c.store, cookieName)
		sess.Options = &sessions.Options{Path: "/"}
	}
	st := &State{session: sess}
	st.app.CurrentPage, _ = sess.Values[keyPage].(string)
	if raw, ok := sess.Values[keyIdentity].(string); ok && raw != "" {
		var u models.User
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			st.app.Identity = &u
			st.app.Authenticated = true
		}
	}
	return st
}

// Save writes the session cookie. Call before the response body.
func (c *Controller) Save(w http.ResponseWriter, r *http.Request, st *State) error {
	if st.app.Authenticated && st.app.Identity != nil {
		raw, err := json.Marshal(st.app.Identity)
		if err != nil {
			return err
		}
		st.session.Values[keyIdentity] = string(raw)
	} else {
		delete(st.session.Values, keyIdentity)
	}
	st.session.Values[keyPage] = st.app.CurrentPage
	if err := st.session.Save(r, w); err != nil {
		c.logger.Error("Failed to save session", "error", err)
		return err
	}
	return nil
}

// CheckAuth asks the backend who is signed in. Success populates the
// context, failure clears it.
func (c *Controller) CheckAuth(ctx context.Context, st *State, gw Gateway) bool {
	u, err := gw.CurrentUser(ctx)
	if err != nil {
		c.clear(st)
		return false
	}
	st.app.Identity = u
	st.app.Authenticated = true
	return true
}

// Login exchanges credentials for a backend session.
func (c *Controller) Login(ctx context.Context, st *State, gw Gateway, creds models.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	u, err := gw.Login(ctx, creds)
	if err != nil {
		c.clear(st)
		return err
	}
	st.app.Identity = u
	st.app.Authenticated = true
	c.logger.Info("User signed in", "user_id", u.ID, "role", u.Role)
	return nil
}

// Logout invalidates the backend session and always clears local state.
func (c *Controller) Logout(ctx context.Context, st *State, gw Gateway) {
	if err := gw.Logout(ctx); err != nil {
		c.logger.Warn("Backend logout failed, clearing session anyway", "error", err)
	}
	if st.app.Identity != nil {
		c.logger.Info("User signed out", "user_id", st.app.Identity.ID)
	}
	c.clear(st)
	st.session.Options.MaxAge = -1
}

// Signup registers a new account. It does not sign the user in.
func (c *Controller) Signup(ctx context.Context, gw Gateway, in models.SignupInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	return gw.Signup(ctx, in)
}

// SetCurrentPage records the page the router rendered last.
func (c *Controller) SetCurrentPage(st *State, page string) {
	st.app.CurrentPage = page
}

// Expire drops the identity after the backend rejected the session mid-use.
func (c *Controller) Expire(st *State) {
	c.clear(st)
}

func (c *Controller) clear(st *State) {
	st.app.Identity = nil
	st.app.Authenticated = false
	delete(st.session.Values, keyBackend)
}
