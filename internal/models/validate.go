package models

import "strings"

// Validator is implemented by every record decoded from the backend.
type Validator interface {
	Validate() error
}

func (u *User) Validate() error {
	if u.ID <= 0 {
		return invalid("user id", "must be positive")
	}
	if strings.TrimSpace(u.Email) == "" {
		return invalid("user email", "is required")
	}
	return nil
}

func (e *Equipment) Validate() error {
	if e.ID <= 0 {
		return invalid("equipment id", "must be positive")
	}
	if strings.TrimSpace(e.Name) == "" {
		return invalid("equipment name", "is required")
	}
	return nil
}

func (m *MaintenanceLog) Validate() error {
	if m.ID <= 0 {
		return invalid("maintenance log id", "must be positive")
	}
	if m.EquipmentID <= 0 {
		return invalid("maintenance log equipment_id", "must be positive")
	}
	if m.DowntimeHours < 0 {
		return invalid("maintenance log downtime_hours", "must not be negative")
	}
	return nil
}

func (f *FailureReport) Validate() error {
	if f.ID <= 0 {
		return invalid("failure report id", "must be positive")
	}
	if f.EquipmentID <= 0 {
		return invalid("failure report equipment_id", "must be positive")
	}
	return nil
}

func (d *DashboardSnapshot) Validate() error {
	if d.ActiveFailures < 0 || d.UpcomingMaintenance < 0 {
		return invalid("dashboard counts", "must not be negative")
	}
	return nil
}

func (d *EquipmentDetail) Validate() error {
	if err := d.Equipment.Validate(); err != nil {
		return err
	}
	for i := range d.MaintenanceLogs {
		if err := d.MaintenanceLogs[i].Validate(); err != nil {
			return err
		}
	}
	for i := range d.FailureReports {
		if err := d.FailureReports[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (d *DowntimeReport) Validate() error { return nil }

func (l *LoginResponse) Validate() error { return l.User.Validate() }

func (m *MessageResponse) Validate() error { return nil }

// ValidateEach checks every element of a decoded list.
func ValidateEach[T any, P interface {
	*T
	Validator
}](items []T) error {
	for i := range items {
		if err := P(&items[i]).Validate(); err != nil {
			return err
		}
	}
	return nil
}
