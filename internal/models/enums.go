package models

const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
)

const (
	StatusActive           = "Active"
	StatusUnderMaintenance = "Under Maintenance"
	StatusOutOfService     = "Out of Service"
)

const (
	SeverityLow    = "Low"
	SeverityMedium = "Medium"
	SeverityHigh   = "High"
)

const (
	MaintenancePreventive = "Preventive"
	MaintenanceCorrective = "Corrective"
)

// Option lists in the order the forms present them.
var (
	Roles             = []string{RoleTechnician, RoleAdmin}
	EquipmentTypes    = []string{"Turbine", "Compressor", "Generator", "Pump", "Cooling System", "Other"}
	EquipmentStatuses = []string{StatusActive, StatusUnderMaintenance, StatusOutOfService}
	MaintenanceTypes  = []string{MaintenancePreventive, MaintenanceCorrective}
	Severities        = []string{SeverityLow, SeverityMedium, SeverityHigh}
)
