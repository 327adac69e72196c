package web

import (
	"fmt"
	"net/http"

	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/api"
	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/models"
	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/view"
)

// Data regions

type equipmentList struct {
	Items   []models.Equipment
	IsAdmin bool
}

func (s *Server) regionEquipment(w http.ResponseWriter, r *http.Request, sc *scope) {
	q := r.URL.Query()
	items, err := sc.client.ListEquipment(r.Context(), api.EquipmentFilter{
		Status: q.Get("status"),
		Type:   q.Get("type"),
	})
	data := equipmentList{Items: items, IsAdmin: sc.app().IsAdmin()}
	if err != nil {
		s.regionError(w, r, sc, err, "region-equipment", data, "Failed to load equipment")
		return
	}
	s.fragment(w, r, sc, "region-equipment", data)
}

// Modals

type equipmentForm struct {
	Action string
	Form   models.EquipmentInput
	Edit   bool
}

func newEquipmentModal() view.Modal {
	return view.Modal{
		Title: "Add Equipment",
		Body:  "equipment-form",
		Data:  equipmentForm{Action: "/actions/equipment", Form: models.EquipmentInput{Status: models.StatusActive}},
	}
}

func editEquipmentModal(id int, in models.EquipmentInput) view.Modal {
	return view.Modal{
		Title: "Edit Equipment",
		Body:  "equipment-form",
		Data:  equipmentForm{Action: fmt.Sprintf("/actions/equipment/%d", id), Form: in, Edit: true},
	}
}

func (s *Server) modalEquipmentNew(w http.ResponseWriter, r *http.Request, sc *scope) {
	s.modal(w, r, sc, newEquipmentModal())
}

func (s *Server) modalEquipmentDetail(w http.ResponseWriter, r *http.Request, sc *scope) {
	detail, err := sc.client.EquipmentDetail(r.Context(), pathID(r))
	if err != nil {
		s.modalLoadError(w, r, sc, err, "Failed to load equipment details")
		return
	}
	s.modal(w, r, sc, view.Modal{Title: detail.Equipment.Name, Body: "equipment-detail", Data: detail, Wide: true})
}

func (s *Server) modalEquipmentEdit(w http.ResponseWriter, r *http.Request, sc *scope) {
	id := pathID(r)
	detail, err := sc.client.EquipmentDetail(r.Context(), id)
	if err != nil {
		s.modalLoadError(w, r, sc, err, "Failed to load equipment data")
		return
	}
	e := detail.Equipment
	s.modal(w, r, sc, editEquipmentModal(id, models.EquipmentInput{
		Name:             e.Name,
		Type:             e.Type,
		Manufacturer:     e.Manufacturer,
		Model:            e.Model,
		SerialNumber:     e.SerialNumber,
		Location:         e.Location,
		InstallationDate: e.InstallationDate,
		Status:           e.Status,
	}))
}

func (s *Server) modalEquipmentDelete(w http.ResponseWriter, r *http.Request, sc *scope) {
	s.confirm(w, r, sc, "Delete Equipment", view.Confirm{
		Message: "Are you sure you want to delete this equipment? This will also delete all associated maintenance logs and failure reports.",
		Action:  fmt.Sprintf("/actions/equipment/%d/delete", pathID(r)),
		Label:   "Delete",
		Danger:  true,
	})
}

// Mutations

func (s *Server) createEquipment(w http.ResponseWriter, r *http.Request, sc *scope) {
	in := parseEquipmentForm(r)
	m := newEquipmentModal()
	m.Data = equipmentForm{Action: "/actions/equipment", Form: in}
	if err := in.Validate(); err != nil {
		s.formError(w, r, sc, err, m, "Failed to save equipment")
		return
	}
	if _, err := sc.client.CreateEquipment(r.Context(), in); err != nil {
		s.formError(w, r, sc, err, m, "Failed to save equipment")
		return
	}
	s.done(w, r, sc, "Equipment created successfully", evEquipment)
}

func (s *Server) updateEquipment(w http.ResponseWriter, r *http.Request, sc *scope) {
	id := pathID(r)
	in := parseEquipmentForm(r)
	m := editEquipmentModal(id, in)
	if err := in.Validate(); err != nil {
		s.formError(w, r, sc, err, m, "Failed to save equipment")
		return
	}
	if _, err := sc.client.UpdateEquipment(r.Context(), id, in); err != nil {
		s.formError(w, r, sc, err, m, "Failed to save equipment")
		return
	}
	s.done(w, r, sc, "Equipment updated successfully", evEquipment)
}

// deleteEquipment also drops the equipment's history on the backend, so
// every list that shows it reloads.
func (s *Server) deleteEquipment(w http.ResponseWriter, r *http.Request, sc *scope) {
	if !confirmed(r) {
		s.alertOnly(w, r, sc, "error", "Deletion was not confirmed")
		return
	}
	if err := sc.client.DeleteEquipment(r.Context(), pathID(r)); err != nil {
		s.actionError(w, r, sc, err, "Failed to delete equipment")
		return
	}
	s.done(w, r, sc, "Equipment deleted successfully", evEquipment, evMaintenance, evFailures)
}
