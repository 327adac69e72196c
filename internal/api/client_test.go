package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/models"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestBackend(t *testing.T, h http.HandlerFunc) *Backend {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewBackend(srv.URL+"/api", 0, quietLogger())
}

// TestRequestSendsDefaultHeaders merges defaults with caller headers.
func TestRequestSendsDefaultHeaders(t *testing.T) {
	var got http.Header
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	})
	err := b.Client("").Request(context.Background(), http.MethodGet, "/ping",
		Call{Header: http.Header{"X-Trace": {"abc"}}}, nil)
	if err != nil {
		t.Fatalf("Request error = %v, want nil", err)
	}
	if ct := got.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}
	if tr := got.Get("X-Trace"); tr != "abc" {
		t.Fatalf("X-Trace = %q, want abc", tr)
	}
	if got.Get("X-Request-ID") == "" {
		t.Fatalf("X-Request-ID missing")
	}
}

// TestRequestReturnsServerMessage surfaces the backend's error field.
func TestRequestReturnsServerMessage(t *testing.T) {
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"name is required"}`))
	})
	_, err := b.Client("").CreateEquipment(context.Background(), models.EquipmentInput{})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "name is required" {
		t.Fatalf("error = %d %q, want 400 %q", apiErr.Status, apiErr.Message, "name is required")
	}
}

// TestRequestFallsBackToGenericMessage covers non-JSON error bodies.
func TestRequestFallsBackToGenericMessage(t *testing.T) {
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "<html>boom</html>", http.StatusInternalServerError)
	})
	err := b.Client("").Logout(context.Background())
	if got := Message(err, "x"); got != "Request failed" {
		t.Fatalf("Message = %q, want %q", got, "Request failed")
	}
}

// TestRequestRejectsNonJSONSuccess treats an unparsable 2xx body as a failure.
func TestRequestRejectsNonJSONSuccess(t *testing.T) {
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})
	_, err := b.Client("").Dashboard(context.Background())
	if err == nil {
		t.Fatalf("Dashboard error = nil, want parse error")
	}
	if !strings.HasPrefix(Message(err, ""), "Invalid response") {
		t.Fatalf("Message = %q, want Invalid response prefix", Message(err, ""))
	}
}

// TestRequestTransportFailure reports an unreachable backend with status 0.
func TestRequestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	_, err := NewBackend(url, 0, quietLogger()).Client("").CurrentUser(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Status != 0 {
		t.Fatalf("error = %v, want transport *Error", err)
	}
}

// TestCookiesAreReplayedAndUpdated keeps the backend session across calls.
func TestCookiesAreReplayedAndUpdated(t *testing.T) {
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "fresh", Path: "/"})
			w.Write([]byte(`{"message":"Login successful","user":{"id":1,"email":"admin@maintenance.com","role":"admin"}}`))
		case "/api/current_user":
			if ck, err := r.Cookie("session"); err != nil || ck.Value != "fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"login required"}`))
				return
			}
			w.Write([]byte(`{"id":1,"email":"admin@maintenance.com","role":"admin"}`))
		}
	})
	c := b.Client("session=stale")
	u, err := c.Login(context.Background(), models.Credentials{Email: "admin@maintenance.com", Password: "admin123"})
	if err != nil {
		t.Fatalf("Login error = %v", err)
	}
	if !u.IsAdmin() {
		t.Fatalf("role = %q, want admin", u.Role)
	}
	header := c.CookieHeader()
	if header != "session=fresh" {
		t.Fatalf("CookieHeader = %q, want session=fresh", header)
	}
	if _, err := b.Client(header).CurrentUser(context.Background()); err != nil {
		t.Fatalf("CurrentUser with replayed cookie error = %v", err)
	}
}

// TestListFiltersAreEncoded passes status, type and resolved as query params.
func TestListFiltersAreEncoded(t *testing.T) {
	var queries []string
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		w.Write([]byte(`[]`))
	})
	c := b.Client("")
	resolved := false
	if _, err := c.ListEquipment(context.Background(), EquipmentFilter{Status: "Out of Service"}); err != nil {
		t.Fatalf("ListEquipment error = %v", err)
	}
	if _, err := c.ListFailures(context.Background(), HistoryFilter{Resolved: &resolved}); err != nil {
		t.Fatalf("ListFailures error = %v", err)
	}
	want := []string{"status=Out+of+Service", "resolved=false"}
	for i := range want {
		if queries[i] != want[i] {
			t.Fatalf("query[%d] = %q, want %q", i, queries[i], want[i])
		}
	}
}

// TestListReturnsEmptySliceForNull never hands nil lists to renderers.
func TestListReturnsEmptySliceForNull(t *testing.T) {
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	})
	users, err := b.Client("").ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers error = %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Fatalf("users = %#v, want empty slice", users)
	}
}

// TestListRejectsInvalidRecords validates at the API boundary.
func TestListRejectsInvalidRecords(t *testing.T) {
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":0,"name":""}]`))
	})
	if _, err := b.Client("").ListEquipment(context.Background(), EquipmentFilter{}); err == nil {
		t.Fatalf("ListEquipment error = nil, want validation error")
	}
}

// TestFindMaintenanceLogFiltersList looks one log up from the full list.
func TestFindMaintenanceLogFiltersList(t *testing.T) {
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/maintenance" {
			t.Errorf("path = %q, want /api/maintenance", r.URL.Path)
		}
		w.Write([]byte(`[{"id":3,"equipment_id":1,"description":"a"},{"id":7,"equipment_id":2,"description":"b"}]`))
	})
	c := b.Client("")
	m, err := c.FindMaintenanceLog(context.Background(), 7)
	if err != nil || m.Description != "b" {
		t.Fatalf("FindMaintenanceLog = %+v, %v, want log 7", m, err)
	}
	_, err = c.FindMaintenanceLog(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("FindMaintenanceLog(99) error = %v, want ErrNotFound", err)
	}
}

// TestResolveFailureSendsResolvedFlag issues PUT with resolved=true.
func TestResolveFailureSendsResolvedFlag(t *testing.T) {
	var method string
	var body map[string]any
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"id":5,"equipment_id":1,"resolved":true}`))
	})
	fr, err := b.Client("").ResolveFailure(context.Background(), 5)
	if err != nil {
		t.Fatalf("ResolveFailure error = %v", err)
	}
	if method != http.MethodPut || body["resolved"] != true || !fr.Resolved {
		t.Fatalf("method=%s body=%v resolved=%v, want PUT resolved=true", method, body, fr.Resolved)
	}
}

// TestIsUnauthorized recognizes 401 errors only.
func TestIsUnauthorized(t *testing.T) {
	if !IsUnauthorized(&Error{Status: http.StatusUnauthorized}) {
		t.Fatalf("IsUnauthorized(401) = false, want true")
	}
	if IsUnauthorized(&Error{Status: http.StatusForbidden}) {
		t.Fatalf("IsUnauthorized(403) = true, want false")
	}
	if IsUnauthorized(errors.New("x")) {
		t.Fatalf("IsUnauthorized(plain) = true, want false")
	}
}
