package web

import (
	"net/http"

	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/api"
	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/models"
	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/view"
)

// Data regions

type maintenanceList struct {
	Items []models.MaintenanceLog
}

func (s *Server) regionMaintenance(w http.ResponseWriter, r *http.Request, sc *scope) {
	items, err := sc.client.ListMaintenance(r.Context(), api.HistoryFilter{})
	if err != nil {
		s.regionError(w, r, sc, err, "region-maintenance", maintenanceList{}, "Failed to load maintenance logs")
		return
	}
	s.fragment(w, r, sc, "region-maintenance", maintenanceList{Items: items})
}

// Modals

// reportForm backs both the maintenance and the failure modal: the entered
// values plus the equipment to choose from.
type reportForm[T any] struct {
	Action    string
	Form      T
	Equipment []models.Equipment
}

func maintenanceModal(form models.MaintenanceInput, equipment []models.Equipment) view.Modal {
	return view.Modal{
		Title: "Log Maintenance",
		Body:  "maintenance-form",
		Data:  reportForm[models.MaintenanceInput]{Action: "/actions/maintenance", Form: form, Equipment: equipment},
	}
}

func (s *Server) modalMaintenanceNew(w http.ResponseWriter, r *http.Request, sc *scope) {
	equipment, err := sc.client.ListEquipment(r.Context(), api.EquipmentFilter{})
	if err != nil {
		s.modalLoadError(w, r, sc, err, "Failed to load equipment")
		return
	}
	s.modal(w, r, sc, maintenanceModal(models.MaintenanceInput{}, equipment))
}

func (s *Server) modalMaintenanceDetail(w http.ResponseWriter, r *http.Request, sc *scope) {
	entry, err := sc.client.FindMaintenanceLog(r.Context(), pathID(r))
	if err != nil {
		s.modalLoadError(w, r, sc, err, "Failed to load maintenance log")
		return
	}
	s.modal(w, r, sc, view.Modal{Title: "Maintenance Log Details", Body: "maintenance-detail", Data: entry})
}

// Mutations

func (s *Server) createMaintenance(w http.ResponseWriter, r *http.Request, sc *scope) {
	in, err := parseMaintenanceForm(r)
	if err == nil {
		err = in.Validate()
	}
	if err == nil {
		_, err = sc.client.CreateMaintenance(r.Context(), in)
	}
	if err != nil {
		// Re-listing equipment only matters for the re-rendered select.
		equipment, _ := sc.client.ListEquipment(r.Context(), api.EquipmentFilter{})
		s.formError(w, r, sc, err, maintenanceModal(in, equipment), "Failed to save maintenance log")
		return
	}
	s.done(w, r, sc, "Maintenance log created successfully", evMaintenance)
}
