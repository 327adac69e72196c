package web

import (
	"net/http"

	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/models"
)

// Data regions

type dashboardData struct {
	Snapshot *models.DashboardSnapshot
}

func (s *Server) regionDashboard(w http.ResponseWriter, r *http.Request, sc *scope) {
	snap, err := sc.client.Dashboard(r.Context())
	if err != nil {
		s.regionError(w, r, sc, err, "region-dashboard", dashboardData{}, "Failed to load dashboard data")
		return
	}
	s.fragment(w, r, sc, "region-dashboard", dashboardData{Snapshot: snap})
}
