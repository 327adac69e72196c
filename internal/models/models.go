package models

import "fmt"

// User is an operator account as returned by the backend.
type User struct {
	ID        int    `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	LastLogin string `json:"last_login"`
}

// IsAdmin reports whether the account may use create/edit/delete affordances.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type Equipment struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	Manufacturer     string `json:"manufacturer"`
	Model            string `json:"model"`
	SerialNumber     string `json:"serial_number"`
	Location         string `json:"location"`
	InstallationDate string `json:"installation_date"`
	Status           string `json:"status"`
}

type MaintenanceLog struct {
	ID                  int     `json:"id"`
	EquipmentID         int     `json:"equipment_id"`
	EquipmentName       string  `json:"equipment_name"`
	TechnicianID        int     `json:"technician_id"`
	TechnicianName      string  `json:"technician_name"`
	MaintenanceType     string  `json:"maintenance_type"`
	Description         string  `json:"description"`
	MaintenanceDate     string  `json:"maintenance_date"`
	DowntimeHours       float64 `json:"downtime_hours"`
	NextMaintenanceDate string  `json:"next_maintenance_date"`
}

type FailureReport struct {
	ID                 int    `json:"id"`
	EquipmentID        int    `json:"equipment_id"`
	EquipmentName      string `json:"equipment_name"`
	ReportedBy         int    `json:"reported_by"`
	ReporterName       string `json:"reporter_name"`
	FailureDescription string `json:"failure_description"`
	Severity           string `json:"severity"`
	ReportedDate       string `json:"reported_date"`
	Resolved           bool   `json:"resolved"`
}

type EquipmentDowntime struct {
	Equipment string  `json:"equipment"`
	Downtime  float64 `json:"downtime"`
}

type EquipmentFailures struct {
	Equipment string `json:"equipment"`
	Failures  int    `json:"failures"`
}

// DashboardSnapshot is recomputed by the backend on every fetch.
type DashboardSnapshot struct {
	EquipmentByStatus   map[string]int      `json:"equipment_by_status"`
	ActiveFailures      int                 `json:"active_failures"`
	UpcomingMaintenance int                 `json:"upcoming_maintenance"`
	TotalDowntime       float64             `json:"total_downtime"`
	DowntimeByEquipment []EquipmentDowntime `json:"downtime_by_equipment"`
	FailuresByEquipment []EquipmentFailures `json:"failures_by_equipment"`
}

// TotalEquipment sums the per-status counts.
func (d *DashboardSnapshot) TotalEquipment() int {
	total := 0
	for _, n := range d.EquipmentByStatus {
		total += n
	}
	return total
}

// MaxDowntime returns the largest per-equipment downtime, used to scale chart bars.
func (d *DashboardSnapshot) MaxDowntime() float64 {
	var top float64
	for _, p := range d.DowntimeByEquipment {
		if p.Downtime > top {
			top = p.Downtime
		}
	}
	return top
}

func (d *DashboardSnapshot) MaxFailures() int {
	top := 0
	for _, p := range d.FailuresByEquipment {
		if p.Failures > top {
			top = p.Failures
		}
	}
	return top
}

// EquipmentDetail is the nested payload of GET /equipment/{id}.
type EquipmentDetail struct {
	Equipment       Equipment        `json:"equipment"`
	MaintenanceLogs []MaintenanceLog `json:"maintenance_logs"`
	FailureReports  []FailureReport  `json:"failure_reports"`
}

type EquipmentReport struct {
	EquipmentDetail
	TotalDowntime         float64 `json:"total_downtime"`
	TotalMaintenanceCount int     `json:"total_maintenance_count"`
	TotalFailureCount     int     `json:"total_failure_count"`
}

type MonthlyDowntime struct {
	Month    string  `json:"month"`
	Downtime float64 `json:"downtime"`
}

type DowntimeReport struct {
	DowntimeByMonth []MonthlyDowntime `json:"downtime_by_month"`
}

type LoginResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// MessageResponse is the acknowledgement body of logout and delete calls.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationError reports a record or form that fails a precondition.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
