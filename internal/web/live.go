package web

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/api"
)

// CheckOrigin is left nil so cross-origin handshakes are rejected.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

const liveWriteWait = 10 * time.Second

// handleLive pushes a fresh KPI grid over a websocket every refresh
// interval. The session's backend cookies are fixed at upgrade time.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	if s.opts.DashboardRefresh <= 0 {
		http.NotFound(w, r)
		return
	}
	sc := s.begin(r)
	if !sc.app().Authenticated {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	s.logger.Debug("Live dashboard connected", "user_id", sc.app().Identity.ID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Wait for client disconnect
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.opts.DashboardRefresh)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Live dashboard disconnected")
			return
		case <-ticker.C:
			if !s.pushDashboard(ctx, conn, sc.client) {
				return
			}
		}
	}
}

// pushDashboard sends one snapshot. It reports false when the connection
// should end.
func (s *Server) pushDashboard(ctx context.Context, conn *websocket.Conn, client *api.Client) bool {
	snap, err := client.Dashboard(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "session expired"),
				time.Now().Add(liveWriteWait))
			return false
		}
		// The last snapshot stays on screen until the next tick.
		s.logger.Warn("Live dashboard refresh failed", "error", err)
		return ctx.Err() == nil
	}
	var buf bytes.Buffer
	if err := s.views.Render(&buf, "dashboard-live", dashboardData{Snapshot: snap}); err != nil {
		s.logger.Error("Live dashboard render failed", "error", err)
		return false
	}
	_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
	if err := conn.WriteMessage(websocket.TextMessage, buf.Bytes()); err != nil {
		s.logger.Debug("Live dashboard write failed", "error", err)
		return false
	}
	return true
}
