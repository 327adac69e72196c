package web

import (
	"fmt"
	"net/http"

	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/api"
	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/models"
	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/view"
)

// Data regions

type failureList struct {
	Items   []models.FailureReport
	IsAdmin bool
}

// regionFailures serves the active or the resolved table. Both filter on
// the backend.
func (s *Server) regionFailures(resolved bool) handlerFunc {
	name, msg := "region-failures-active", "Failed to load failure reports"
	if resolved {
		name = "region-failures-resolved"
	}
	return func(w http.ResponseWriter, r *http.Request, sc *scope) {
		items, err := sc.client.ListFailures(r.Context(), api.HistoryFilter{Resolved: &resolved})
		data := failureList{Items: items, IsAdmin: sc.app().IsAdmin()}
		if err != nil {
			s.regionError(w, r, sc, err, name, data, msg)
			return
		}
		s.fragment(w, r, sc, name, data)
	}
}

// Modals

func failureModal(form models.FailureInput, equipment []models.Equipment) view.Modal {
	return view.Modal{
		Title: "Report Failure",
		Body:  "failure-form",
		Data:  reportForm[models.FailureInput]{Action: "/actions/failures", Form: form, Equipment: equipment},
	}
}

func (s *Server) modalFailureNew(w http.ResponseWriter, r *http.Request, sc *scope) {
	equipment, err := sc.client.ListEquipment(r.Context(), api.EquipmentFilter{})
	if err != nil {
		s.modalLoadError(w, r, sc, err, "Failed to load equipment")
		return
	}
	s.modal(w, r, sc, failureModal(models.FailureInput{}, equipment))
}

func (s *Server) modalFailureResolve(w http.ResponseWriter, r *http.Request, sc *scope) {
	s.confirm(w, r, sc, "Resolve Failure", view.Confirm{
		Message: "Mark this failure as resolved?",
		Action:  fmt.Sprintf("/actions/failures/%d/resolve", pathID(r)),
		Label:   "Mark Resolved",
	})
}

// Mutations

// createFailure fires equipment-changed too for High severity, since the
// backend then takes the equipment out of service.
func (s *Server) createFailure(w http.ResponseWriter, r *http.Request, sc *scope) {
	in := parseFailureForm(r)
	err := in.Validate()
	if err == nil {
		_, err = sc.client.CreateFailure(r.Context(), in)
	}
	if err != nil {
		equipment, _ := sc.client.ListEquipment(r.Context(), api.EquipmentFilter{})
		s.formError(w, r, sc, err, failureModal(in, equipment), "Failed to submit failure report")
		return
	}
	if in.Severity == models.SeverityHigh {
		s.done(w, r, sc, "Failure report submitted successfully. Equipment marked Out of Service.", evFailures, evEquipment)
		return
	}
	s.done(w, r, sc, "Failure report submitted successfully", evFailures)
}

func (s *Server) resolveFailure(w http.ResponseWriter, r *http.Request, sc *scope) {
	if !confirmed(r) {
		s.alertOnly(w, r, sc, "error", "Resolution was not confirmed")
		return
	}
	if _, err := sc.client.ResolveFailure(r.Context(), pathID(r)); err != nil {
		s.actionError(w, r, sc, err, "Failed to resolve failure")
		return
	}
	s.done(w, r, sc, "Failure marked as resolved", evFailures)
}
