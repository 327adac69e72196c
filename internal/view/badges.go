package view

import "github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/models"

// Unknown values get a plain badge so new backend enums still render.
const plainBadge = "badge"

var (
	statusBadges = map[string]string{
		models.StatusActive:           "badge badge-active",
		models.StatusUnderMaintenance: "badge badge-maintenance",
		models.StatusOutOfService:     "badge badge-outofservice",
	}
	severityBadges = map[string]string{
		models.SeverityLow:    "badge badge-low",
		models.SeverityMedium: "badge badge-medium",
		models.SeverityHigh:   "badge badge-high",
	}
	maintenanceBadges = map[string]string{
		models.MaintenancePreventive: "badge badge-preventive",
		models.MaintenanceCorrective: "badge badge-corrective",
	}
	roleBadges = map[string]string{
		models.RoleAdmin:      "badge badge-admin",
		models.RoleTechnician: "badge badge-technician",
	}
)

func lookup(table map[string]string, value string) string {
	if class, ok := table[value]; ok {
		return class
	}
	return plainBadge
}

func StatusBadge(status string) string { return lookup(statusBadges, status) }
func SeverityBadge(severity string) string { return lookup(severityBadges, severity) }
func MaintenanceBadge(kind string) string { return lookup(maintenanceBadges, kind) }
func RoleBadge(role string) string { return lookup(roleBadges, role) }

func ActiveBadge(active bool) string {
	if active {
		return "badge badge-active"
	}
	return "badge badge-inactive"
}
