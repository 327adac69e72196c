package models

import "strings"

// EquipmentInput is the create/update body for /equipment.
type EquipmentInput struct {
	Name             string `json:"name"`
	Type             string `json:"type"`
	Manufacturer     string `json:"manufacturer,omitempty"`
	Model            string `json:"model,omitempty"`
	SerialNumber     string `json:"serial_number,omitempty"`
	Location         string `json:"location,omitempty"`
	InstallationDate string `json:"installation_date,omitempty"`
	Status           string `json:"status,omitempty"`
}

func (in *EquipmentInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("Name", "is required")
	}
	if strings.TrimSpace(in.Type) == "" {
		return invalid("Type", "is required")
	}
	return nil
}

// EquipmentUpdate is the PUT /equipment/{id} body. The backend only
// changes keys that are present, so text fields are always sent and a
// cleared field clears. An empty installation date stays out because the
// backend rejects "".
type EquipmentUpdate struct {
	Name             string `json:"name"`
	Type             string `json:"type"`
	Manufacturer     string `json:"manufacturer"`
	Model            string `json:"model"`
	SerialNumber     string `json:"serial_number"`
	Location         string `json:"location"`
	InstallationDate string `json:"installation_date,omitempty"`
	Status           string `json:"status,omitempty"`
}

func (in *EquipmentInput) Update() EquipmentUpdate {
	return EquipmentUpdate(*in)
}

// MaintenanceInput is the create body for /maintenance. The backend stamps
// the technician and the date.
type MaintenanceInput struct {
	EquipmentID         int     `json:"equipment_id"`
	MaintenanceType     string  `json:"maintenance_type"`
	Description         string  `json:"description"`
	DowntimeHours       float64 `json:"downtime_hours"`
	NextMaintenanceDate string  `json:"next_maintenance_date,omitempty"`
}

func (in *MaintenanceInput) Validate() error {
	if in.EquipmentID <= 0 {
		return invalid("Equipment", "is required")
	}
	if strings.TrimSpace(in.MaintenanceType) == "" {
		return invalid("Maintenance type", "is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return invalid("Description", "is required")
	}
	if in.DowntimeHours < 0 {
		return invalid("Downtime hours", "must not be negative")
	}
	return nil
}

type FailureInput struct {
	EquipmentID        int    `json:"equipment_id"`
	FailureDescription string `json:"failure_description"`
	Severity           string `json:"severity"`
}

func (in *FailureInput) Validate() error {
	if in.EquipmentID <= 0 {
		return invalid("Equipment", "is required")
	}
	if strings.TrimSpace(in.FailureDescription) == "" {
		return invalid("Description", "is required")
	}
	if strings.TrimSpace(in.Severity) == "" {
		return invalid("Severity", "is required")
	}
	return nil
}

// FailureUpdate is the PUT /failures/{id} body.
type FailureUpdate struct {
	Resolved bool `json:"resolved"`
}

// UserInput is the create/update body for /users. An empty Password on
// update keeps the current one.
type UserInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// ValidateCreate also requires a password, which updates may omit.
func (in *UserInput) ValidateCreate() error {
	if err := in.Validate(); err != nil {
		return err
	}
	if in.Password == "" {
		return invalid("Password", "is required for new users")
	}
	return nil
}

func (in *UserInput) Validate() error {
	if err := in.ValidateProfile(); err != nil {
		return err
	}
	if strings.TrimSpace(in.Role) == "" {
		return invalid("Role", "is required")
	}
	return nil
}

// ValidateProfile checks the fields an admin may change on their own
// account. Role and active state are not among them.
func (in *UserInput) ValidateProfile() error {
	if strings.TrimSpace(in.FullName) == "" {
		return invalid("Full name", "is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return invalid("Email", "is required")
	}
	return nil
}

type SignupInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MinPasswordLength matches the backend's signup rule.
const MinPasswordLength = 6

func (in *SignupInput) Validate() error {
	if strings.TrimSpace(in.FullName) == "" {
		return invalid("Full name", "is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return invalid("Email", "is required")
	}
	if len(in.Password) < MinPasswordLength {
		return invalid("Password", "must be at least 6 characters")
	}
	return nil
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return invalid("Email and password", "are required")
	}
	return nil
}
