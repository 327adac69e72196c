package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/models"
)

func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

func formText(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}

// formInt reads an optional integer field. Blank or malformed input is 0,
// which the record's Validate rejects where the field is required.
func formInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(formText(r, key))
	return n
}

// formFloat reads an optional number, defaulting to 0.
func formFloat(r *http.Request, key string) (float64, error) {
	v := formText(r, key)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &models.ValidationError{Field: "Downtime hours", Reason: "must be a number"}
	}
	return f, nil
}

func parseEquipmentForm(r *http.Request) models.EquipmentInput {
	return models.EquipmentInput{
		Name:             formText(r, "name"),
		Type:             formText(r, "type"),
		Manufacturer:     formText(r, "manufacturer"),
		Model:            formText(r, "model"),
		SerialNumber:     formText(r, "serial_number"),
		Location:         formText(r, "location"),
		InstallationDate: formText(r, "installation_date"),
		Status:           formText(r, "status"),
	}
}

func parseMaintenanceForm(r *http.Request) (models.MaintenanceInput, error) {
	in := models.MaintenanceInput{
		EquipmentID:         formInt(r, "equipment_id"),
		MaintenanceType:     formText(r, "maintenance_type"),
		Description:         formText(r, "description"),
		NextMaintenanceDate: formText(r, "next_maintenance_date"),
	}
	hours, err := formFloat(r, "downtime_hours")
	in.DowntimeHours = hours
	return in, err
}

func parseFailureForm(r *http.Request) models.FailureInput {
	return models.FailureInput{
		EquipmentID:        formInt(r, "equipment_id"),
		Severity:           formText(r, "severity"),
		FailureDescription: formText(r, "failure_description"),
	}
}

// parseUserForm maps the unchecked is_active box to false, which a browser
// omits from the submission.
func parseUserForm(r *http.Request) models.UserInput {
	active := r.PostFormValue("is_active") == "true"
	return models.UserInput{
		FullName: formText(r, "full_name"),
		Email:    formText(r, "email"),
		Password: r.PostFormValue("password"),
		Role:     formText(r, "role"),
		IsActive: &active,
	}
}
