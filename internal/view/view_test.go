package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/models"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	return r
}

func render(t *testing.T, r *Renderer, name string, data any) string {
	t.Helper()
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		t.Fatalf("Render(%s) error = %v", name, err)
	}
	return buf.String()
}

// TestBadgeFallback renders unknown values with the plain badge.
func TestBadgeFallback(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{StatusBadge("Active"), "badge badge-active"},
		{StatusBadge("Out of Service"), "badge badge-outofservice"},
		{StatusBadge("Decommissioned"), "badge"},
		{SeverityBadge("High"), "badge badge-high"},
		{SeverityBadge("Critical"), "badge"},
		{MaintenanceBadge("Preventive"), "badge badge-preventive"},
		{MaintenanceBadge("Predictive"), "badge"},
		{RoleBadge("auditor"), "badge"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("badge = %q, want %q", tc.got, tc.want)
		}
	}
}

// TestFormatDate shows N/A for missing dates and passes unknown text through.
func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"":                           "N/A",
		"2024-03-05":                 "Mar 5, 2024",
		"2024-03-05T14:30:00":        "Mar 5, 2024",
		"2024-03-05T14:30:00.123456": "Mar 5, 2024",
		"2024-03-05T14:30:00Z":       "Mar 5, 2024",
		"next spring":                "next spring",
	}
	for in, want := range cases {
		if got := FormatDate(in); got != want {
			t.Fatalf("FormatDate(%q) = %q, want %q", in, got, want)
		}
	}
	if got := FormatDateTime("", "Never"); got != "Never" {
		t.Fatalf("FormatDateTime empty = %q, want Never", got)
	}
	if got := InputDate("2024-03-05T00:00:00"); got != "2024-03-05" {
		t.Fatalf("InputDate = %q, want 2024-03-05", got)
	}
}

// TestPercentClamps keeps chart bars within 0-100.
func TestPercentClamps(t *testing.T) {
	if got := Percent(5, 0); got != 0 {
		t.Fatalf("Percent(5,0) = %v, want 0", got)
	}
	if got := Percent(5, 10); got != 50 {
		t.Fatalf("Percent(5,10) = %v, want 50", got)
	}
	if got := Percent(20, 10); got != 100 {
		t.Fatalf("Percent(20,10) = %v, want 100", got)
	}
}

// TestEmptyListsRenderOneEmptyRow covers every list region.
func TestEmptyListsRenderOneEmptyRow(t *testing.T) {
	r := newTestRenderer(t)
	cases := []struct {
		name string
		data any
		text string
	}{
		{"region-equipment", map[string]any{"Items": []models.Equipment{}, "IsAdmin": true}, "No equipment found"},
		{"region-maintenance", map[string]any{"Items": []models.MaintenanceLog{}}, "No maintenance logs found"},
		{"region-failures-active", map[string]any{"Items": []models.FailureReport{}, "IsAdmin": false}, "No active failures"},
		{"region-failures-resolved", map[string]any{"Items": []models.FailureReport{}}, "No resolved failures"},
		{"region-users", map[string]any{"Items": []models.User{}, "SelfID": 1}, "No users found"},
		{"region-downtime", map[string]any{"Months": []models.MonthlyDowntime{}}, "No downtime recorded"},
	}
	for _, tc := range cases {
		out := render(t, r, tc.name, tc.data)
		if n := strings.Count(out, `class="empty-row"`); n != 1 {
			t.Fatalf("%s: empty rows = %d, want 1", tc.name, n)
		}
		if !strings.Contains(out, tc.text) {
			t.Fatalf("%s: output missing %q", tc.name, tc.text)
		}
	}
}

// TestEquipmentRegionHidesAdminControls shows edit/delete to admins only.
func TestEquipmentRegionHidesAdminControls(t *testing.T) {
	r := newTestRenderer(t)
	items := []models.Equipment{{ID: 4, Name: "Main Turbine", Type: "Turbine", Status: "Active"}}
	tech := render(t, r, "region-equipment", map[string]any{"Items": items, "IsAdmin": false})
	if strings.Contains(tech, "/edit") || strings.Contains(tech, "/delete") {
		t.Fatalf("technician view contains admin controls:\n%s", tech)
	}
	if !strings.Contains(tech, "/modals/equipment/4") {
		t.Fatalf("technician view missing detail button")
	}
	admin := render(t, r, "region-equipment", map[string]any{"Items": items, "IsAdmin": true})
	if !strings.Contains(admin, "/modals/equipment/4/edit") || !strings.Contains(admin, "/modals/equipment/4/delete") {
		t.Fatalf("admin view missing controls:\n%s", admin)
	}
}

// TestMaintenanceRegionShowsNAForMissingNextDate renders the fallback.
func TestMaintenanceRegionShowsNAForMissingNextDate(t *testing.T) {
	r := newTestRenderer(t)
	out := render(t, r, "region-maintenance", map[string]any{"Items": []models.MaintenanceLog{{
		ID: 1, EquipmentID: 2, EquipmentName: "Pump A", MaintenanceType: "Corrective",
		MaintenanceDate: "2024-05-01T08:00:00", DowntimeHours: 0,
	}}})
	if !strings.Contains(out, "N/A") {
		t.Fatalf("output missing N/A:\n%s", out)
	}
	if !strings.Contains(out, "badge badge-corrective") {
		t.Fatalf("output missing corrective badge")
	}
}

// TestRenderModalWrapsBodyAndAlert mounts one overlay with the inline alert.
func TestRenderModalWrapsBodyAndAlert(t *testing.T) {
	r := newTestRenderer(t)
	var buf bytes.Buffer
	err := r.RenderModal(&buf, Modal{
		Title: "Add Equipment",
		Body:  "equipment-form",
		Data:  map[string]any{"Action": "/actions/equipment", "Form": models.EquipmentInput{Name: "Pump B"}, "Edit": false},
		Alert: "type is required",
	})
	if err != nil {
		t.Fatalf("RenderModal error = %v", err)
	}
	out := buf.String()
	if strings.Count(out, `class="modal-overlay"`) != 1 {
		t.Fatalf("want exactly one overlay:\n%s", out)
	}
	if !strings.Contains(out, "type is required") || !strings.Contains(out, `value="Pump B"`) {
		t.Fatalf("modal lost alert or entered values:\n%s", out)
	}
}

// TestRenderConfirmPostsConfirmation carries confirm=yes to the action.
func TestRenderConfirmPostsConfirmation(t *testing.T) {
	r := newTestRenderer(t)
	var buf bytes.Buffer
	if err := r.RenderConfirm(&buf, "Delete Equipment", Confirm{
		Message: "Delete Pump A?", Action: "/actions/equipment/3/delete", Label: "Delete", Danger: true,
	}); err != nil {
		t.Fatalf("RenderConfirm error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `hx-post="/actions/equipment/3/delete"`) || !strings.Contains(out, `name="confirm" value="yes"`) {
		t.Fatalf("confirm form incomplete:\n%s", out)
	}
}

// TestRenderAlertIsOutOfBand targets the alert area.
func TestRenderAlertIsOutOfBand(t *testing.T) {
	r := newTestRenderer(t)
	var buf bytes.Buffer
	if err := r.RenderAlert(&buf, Alert{Kind: "error", Message: "Request failed"}); err != nil {
		t.Fatalf("RenderAlert error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `id="alert-area" hx-swap-oob="afterbegin"`) || !strings.Contains(out, "alert-error") {
		t.Fatalf("alert not out-of-band:\n%s", out)
	}
}

// TestDashboardRegionEmptyCharts shows explicit no-data states.
func TestDashboardRegionEmptyCharts(t *testing.T) {
	r := newTestRenderer(t)
	out := render(t, r, "region-dashboard", map[string]any{"Snapshot": &models.DashboardSnapshot{}})
	if !strings.Contains(out, "No downtime data available") || !strings.Contains(out, "No failure data available") {
		t.Fatalf("dashboard missing empty chart states:\n%s", out)
	}
	out = render(t, r, "region-dashboard", map[string]any{"Snapshot": &models.DashboardSnapshot{
		EquipmentByStatus:   map[string]int{"Active": 2},
		DowntimeByEquipment: []models.EquipmentDowntime{{Equipment: "Pump A", Downtime: 4}},
	}})
	if !strings.Contains(out, "Pump A") || !strings.Contains(out, "width: 100%") {
		t.Fatalf("dashboard chart not rendered:\n%s", out)
	}
}

// TestAdminAffordancesHiddenFromTechnicians covers the page shells and the
// active failures table.
func TestAdminAffordancesHiddenFromTechnicians(t *testing.T) {
	r := newTestRenderer(t)
	failures := []models.FailureReport{{ID: 9, EquipmentName: "Pump A", Severity: "High", FailureDescription: "Seal leak"}}
	filter := map[string]string{"Status": "", "Type": ""}
	cases := []struct {
		name  string
		data  func(admin bool) any
		marks []string
	}{
		{"page-dashboard", func(admin bool) any {
			return map[string]any{"IsAdmin": admin, "LiveFeed": false, "Filter": filter}
		}, []string{"/modals/equipment/new"}},
		{"page-equipment", func(admin bool) any {
			return map[string]any{"IsAdmin": admin, "LiveFeed": false, "Filter": filter}
		}, []string{"/modals/equipment/new"}},
		{"region-failures-active", func(admin bool) any {
			return map[string]any{"Items": failures, "IsAdmin": admin}
		}, []string{"/modals/failures/9/resolve", "<th>Actions</th>"}},
	}
	for _, tc := range cases {
		tech := render(t, r, tc.name, tc.data(false))
		admin := render(t, r, tc.name, tc.data(true))
		for _, mark := range tc.marks {
			if strings.Contains(tech, mark) {
				t.Fatalf("%s: technician view contains %q:\n%s", tc.name, mark, tech)
			}
			if !strings.Contains(admin, mark) {
				t.Fatalf("%s: admin view missing %q:\n%s", tc.name, mark, admin)
			}
		}
	}
}

// TestEquipmentDetailMissingInstallDate uses the detail fallback, not N/A.
func TestEquipmentDetailMissingInstallDate(t *testing.T) {
	r := newTestRenderer(t)
	out := render(t, r, "equipment-detail", map[string]any{
		"Equipment":       models.Equipment{ID: 3, Name: "Pump A", Type: "Pump", Status: "Active"},
		"MaintenanceLogs": []models.MaintenanceLog{},
		"FailureReports":  []models.FailureReport{},
	})
	if !strings.Contains(out, "Not recorded") {
		t.Fatalf("detail missing install date fallback:\n%s", out)
	}
	if got := FormatDateOr("2024-03-05", "Not recorded"); got != "Mar 5, 2024" {
		t.Fatalf("FormatDateOr = %q, want Mar 5, 2024", got)
	}
}
