package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/models"
)

type fakeGateway struct {
	user       *models.User
	currentErr error
	loginErr   error
	logoutErr  error
	logouts    int
	signups    int
}

func (f *fakeGateway) CurrentUser(context.Context) (*models.User, error) {
	if f.currentErr != nil {
		return nil, f.currentErr
	}
	return f.user, nil
}

func (f *fakeGateway) Login(_ context.Context, creds models.Credentials) (*models.User, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.user, nil
}

func (f *fakeGateway) Logout(context.Context) error {
	f.logouts++
	return f.logoutErr
}

func (f *fakeGateway) Signup(context.Context, models.SignupInput) (string, error) {
	f.signups++
	return "Registration successful", nil
}

func newTestController(t *testing.T) *Controller {
	t.Helper()
	store, err := NewCookieStore("0123456789abcdef0123", CookieOptions(time.Hour, false))
	if err != nil {
		t.Fatalf("NewCookieStore error = %v", err)
	}
	return NewController(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// roundTrip saves the state and loads it back through the cookie.
func roundTrip(t *testing.T, c *Controller, st *State) *State {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := c.Save(rec, httptest.NewRequest(http.MethodGet, "/", nil), st); err != nil {
		t.Fatalf("Save error = %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range rec.Result().Cookies() {
		req.AddCookie(ck)
	}
	return c.Load(req)
}

var admin = &models.User{ID: 1, FullName: "Admin", Email: "admin@maintenance.com", Role: models.RoleAdmin, IsActive: true}

// TestCheckAuthPopulatesContext persists the identity across requests.
func TestCheckAuthPopulatesContext(t *testing.T) {
	c := newTestController(t)
	st := c.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	if !c.CheckAuth(context.Background(), st, &fakeGateway{user: admin}) {
		t.Fatalf("CheckAuth = false, want true")
	}
	c.SetCurrentPage(st, "equipment")
	st.SyncBackendCookies("session=abc")

	loaded := roundTrip(t, c, st)
	app := loaded.Context()
	if !app.Authenticated || !app.IsAdmin() {
		t.Fatalf("loaded context = %+v, want authenticated admin", app)
	}
	if app.CurrentPage != "equipment" {
		t.Fatalf("CurrentPage = %q, want equipment", app.CurrentPage)
	}
	if got := loaded.BackendCookies(); got != "session=abc" {
		t.Fatalf("BackendCookies = %q, want session=abc", got)
	}
}

// TestCheckAuthFailureClearsContext drops a stale identity.
func TestCheckAuthFailureClearsContext(t *testing.T) {
	c := newTestController(t)
	st := c.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	c.CheckAuth(context.Background(), st, &fakeGateway{user: admin})
	if c.CheckAuth(context.Background(), st, &fakeGateway{currentErr: errors.New("401")}) {
		t.Fatalf("CheckAuth = true, want false")
	}
	if app := st.Context(); app.Authenticated || app.Identity != nil {
		t.Fatalf("context = %+v, want cleared", app)
	}
}

// TestLoginRequiresCredentials never calls the backend with empty fields.
func TestLoginRequiresCredentials(t *testing.T) {
	c := newTestController(t)
	st := c.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	gw := &fakeGateway{loginErr: errors.New("must not be called")}
	err := c.Login(context.Background(), st, gw, models.Credentials{Email: "admin@maintenance.com"})
	var ve *models.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Login error = %v, want *ValidationError", err)
	}
}

// TestLogoutClearsEvenWhenBackendFails keeps logout unconditional.
func TestLogoutClearsEvenWhenBackendFails(t *testing.T) {
	c := newTestController(t)
	st := c.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	gw := &fakeGateway{user: admin, logoutErr: errors.New("connection refused")}
	if err := c.Login(context.Background(), st, gw, models.Credentials{Email: "admin@maintenance.com", Password: "admin123"}); err != nil {
		t.Fatalf("Login error = %v", err)
	}
	c.Logout(context.Background(), st, gw)
	if gw.logouts != 1 {
		t.Fatalf("logouts = %d, want 1", gw.logouts)
	}
	if st.Context().Authenticated {
		t.Fatalf("Authenticated = true after logout")
	}

	rec := httptest.NewRecorder()
	c.Save(rec, httptest.NewRequest(http.MethodPost, "/logout", nil), st)
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("cookies = %+v, want one expired cookie", cookies)
	}
}

// TestSignupValidatesBeforeCalling rejects short passwords locally.
func TestSignupValidatesBeforeCalling(t *testing.T) {
	c := newTestController(t)
	gw := &fakeGateway{}
	if _, err := c.Signup(context.Background(), gw, models.SignupInput{FullName: "N", Email: "n@x.io", Password: "123"}); err == nil {
		t.Fatalf("Signup error = nil, want validation error")
	}
	if gw.signups != 0 {
		t.Fatalf("signups = %d, want 0", gw.signups)
	}
	msg, err := c.Signup(context.Background(), gw, models.SignupInput{FullName: "N", Email: "n@x.io", Password: "123456"})
	if err != nil || msg != "Registration successful" {
		t.Fatalf("Signup = %q, %v", msg, err)
	}
}

// TestFlashesSurviveRoundTrip delivers banners once.
func TestFlashesSurviveRoundTrip(t *testing.T) {
	c := newTestController(t)
	st := c.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	st.AddFlash("error", "Session expired")
	st.AddFlash("success", "Saved")
	loaded := roundTrip(t, c, st)
	flashes := loaded.Flashes()
	if len(flashes) != 2 || flashes[0].Kind != "success" || flashes[1].Message != "Session expired" {
		t.Fatalf("flashes = %+v", flashes)
	}
	if again := loaded.Flashes(); len(again) != 0 {
		t.Fatalf("second Flashes = %+v, want none", again)
	}
}

// TestDeriveKeysIsDeterministic gives the same keys for one secret.
func TestDeriveKeysIsDeterministic(t *testing.T) {
	h1, b1, err := DeriveKeys("0123456789abcdef0123")
	if err != nil {
		t.Fatalf("DeriveKeys error = %v", err)
	}
	h2, b2, _ := DeriveKeys("0123456789abcdef0123")
	h3, _, _ := DeriveKeys("another-secret-value!")
	if !bytes.Equal(h1, h2) || !bytes.Equal(b1, b2) {
		t.Fatalf("keys differ for the same secret")
	}
	if bytes.Equal(h1, h3) {
		t.Fatalf("keys equal for different secrets")
	}
	if len(h1) != 64 || len(b1) != 32 {
		t.Fatalf("key lengths = %d/%d, want 64/32", len(h1), len(b1))
	}
}
