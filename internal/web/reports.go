package web

import (
	"net/http"
	"strconv"

	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/api"
	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/models"
)

// Data regions

func (s *Server) regionReportSelector(w http.ResponseWriter, r *http.Request, sc *scope) {
	items, err := sc.client.ListEquipment(r.Context(), api.EquipmentFilter{})
	if err != nil {
		s.regionError(w, r, sc, err, "region-report-selector", equipmentList{}, "Failed to load equipment list")
		return
	}
	s.fragment(w, r, sc, "region-report-selector", equipmentList{Items: items})
}

type equipmentReportData struct {
	Report *models.EquipmentReport
}

// regionEquipmentReport clears the report when the selector is reset.
func (s *Server) regionEquipmentReport(w http.ResponseWriter, r *http.Request, sc *scope) {
	id, _ := strconv.Atoi(r.URL.Query().Get("equipment_id"))
	if id <= 0 {
		s.fragment(w, r, sc, "region-equipment-report", equipmentReportData{})
		return
	}
	report, err := sc.client.EquipmentReport(r.Context(), id)
	if err != nil {
		s.regionError(w, r, sc, err, "region-equipment-report", equipmentReportData{}, "Failed to load equipment report")
		return
	}
	s.fragment(w, r, sc, "region-equipment-report", equipmentReportData{Report: report})
}

type downtimeData struct {
	Months []models.MonthlyDowntime
}

func (s *Server) regionDowntime(w http.ResponseWriter, r *http.Request, sc *scope) {
	report, err := sc.client.DowntimeReport(r.Context())
	if err != nil {
		s.regionError(w, r, sc, err, "region-downtime", downtimeData{}, "Failed to load downtime report")
		return
	}
	s.fragment(w, r, sc, "region-downtime", downtimeData{Months: report.DowntimeByMonth})
}
