package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/models"
)

type EquipmentFilter struct {
	Status string
	Type   string
}

func (f EquipmentFilter) query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	return q
}

// HistoryFilter narrows maintenance and failure lists. Resolved applies to
// failures only.
type HistoryFilter struct {
	EquipmentID int
	Resolved    *bool
}

func (f HistoryFilter) query() url.Values {
	q := url.Values{}
	if f.EquipmentID > 0 {
		q.Set("equipment_id", strconv.Itoa(f.EquipmentID))
	}
	if f.Resolved != nil {
		q.Set("resolved", strconv.FormatBool(*f.Resolved))
	}
	return q
}

func list[T any, P interface {
	*T
	models.Validator
}](ctx context.Context, c *Client, endpoint string, query url.Values) ([]T, error) {
	var out []T
	if err := c.Request(ctx, http.MethodGet, endpoint, Call{Query: query}, &out); err != nil {
		return nil, err
	}
	if err := models.ValidateEach[T, P](out); err != nil {
		c.backend.logger.Error("API response rejected", "endpoint", endpoint, "error", err)
		return nil, &Error{Status: http.StatusOK, Message: "Invalid response from server: " + err.Error(), Err: err}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func notFound(what string, id int) error {
	return &Error{
		Status:  http.StatusNotFound,
		Message: what + " not found",
		Err:     fmt.Errorf("%s %d: %w", what, id, ErrNotFound),
	}
}

// Auth

func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	var resp models.LoginResponse
	if err := c.Request(ctx, http.MethodPost, "/login", Call{Body: creds}, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.Request(ctx, http.MethodPost, "/logout", Call{}, nil)
}

func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.Request(ctx, http.MethodGet, "/current_user", Call{}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Signup returns the backend's confirmation message.
func (c *Client) Signup(ctx context.Context, in models.SignupInput) (string, error) {
	var resp models.MessageResponse
	if err := c.Request(ctx, http.MethodPost, "/signup", Call{Body: in}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Equipment

func (c *Client) ListEquipment(ctx context.Context, f EquipmentFilter) ([]models.Equipment, error) {
	return list[models.Equipment](ctx, c, "/equipment", f.query())
}

func (c *Client) EquipmentDetail(ctx context.Context, id int) (*models.EquipmentDetail, error) {
	var d models.EquipmentDetail
	if err := c.Request(ctx, http.MethodGet, fmt.Sprintf("/equipment/%d", id), Call{}, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) CreateEquipment(ctx context.Context, in models.EquipmentInput) (*models.Equipment, error) {
	var e models.Equipment
	if err := c.Request(ctx, http.MethodPost, "/equipment", Call{Body: in}, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) UpdateEquipment(ctx context.Context, id int, in models.EquipmentInput) (*models.Equipment, error) {
	var e models.Equipment
	if err := c.Request(ctx, http.MethodPut, fmt.Sprintf("/equipment/%d", id), Call{Body: in.Update()}, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) DeleteEquipment(ctx context.Context, id int) error {
	return c.Request(ctx, http.MethodDelete, fmt.Sprintf("/equipment/%d", id), Call{}, nil)
}

// Maintenance

func (c *Client) ListMaintenance(ctx context.Context, f HistoryFilter) ([]models.MaintenanceLog, error) {
	return list[models.MaintenanceLog](ctx, c, "/maintenance", f.query())
}

func (c *Client) CreateMaintenance(ctx context.Context, in models.MaintenanceInput) (*models.MaintenanceLog, error) {
	var m models.MaintenanceLog
	if err := c.Request(ctx, http.MethodPost, "/maintenance", Call{Body: in}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// FindMaintenanceLog scans the full list; the backend has no single-log endpoint.
func (c *Client) FindMaintenanceLog(ctx context.Context, id int) (*models.MaintenanceLog, error) {
	logs, err := c.ListMaintenance(ctx, HistoryFilter{})
	if err != nil {
		return nil, err
	}
	for i := range logs {
		if logs[i].ID == id {
			return &logs[i], nil
		}
	}
	return nil, notFound("Maintenance log", id)
}

// Failures

func (c *Client) ListFailures(ctx context.Context, f HistoryFilter) ([]models.FailureReport, error) {
	return list[models.FailureReport](ctx, c, "/failures", f.query())
}

func (c *Client) CreateFailure(ctx context.Context, in models.FailureInput) (*models.FailureReport, error) {
	var fr models.FailureReport
	if err := c.Request(ctx, http.MethodPost, "/failures", Call{Body: in}, &fr); err != nil {
		return nil, err
	}
	return &fr, nil
}

func (c *Client) UpdateFailure(ctx context.Context, id int, in models.FailureUpdate) (*models.FailureReport, error) {
	var fr models.FailureReport
	if err := c.Request(ctx, http.MethodPut, fmt.Sprintf("/failures/%d", id), Call{Body: in}, &fr); err != nil {
		return nil, err
	}
	return &fr, nil
}

func (c *Client) ResolveFailure(ctx context.Context, id int) (*models.FailureReport, error) {
	return c.UpdateFailure(ctx, id, models.FailureUpdate{Resolved: true})
}

// Reports

func (c *Client) Dashboard(ctx context.Context) (*models.DashboardSnapshot, error) {
	var d models.DashboardSnapshot
	if err := c.Request(ctx, http.MethodGet, "/reports/dashboard", Call{}, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) EquipmentReport(ctx context.Context, id int) (*models.EquipmentReport, error) {
	var r models.EquipmentReport
	if err := c.Request(ctx, http.MethodGet, fmt.Sprintf("/reports/equipment/%d", id), Call{}, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) DowntimeReport(ctx context.Context) (*models.DowntimeReport, error) {
	var r models.DowntimeReport
	if err := c.Request(ctx, http.MethodGet, "/reports/downtime", Call{}, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Users

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	return list[models.User](ctx, c, "/users", nil)
}

// FindUser scans the user list; there is no GET /users/{id}.
func (c *Client) FindUser(ctx context.Context, id int) (*models.User, error) {
	users, err := c.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, notFound("User", id)
}

func (c *Client) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	var u models.User
	if err := c.Request(ctx, http.MethodPost, "/users", Call{Body: in}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int, in models.UserInput) (*models.User, error) {
	var u models.User
	if err := c.Request(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), Call{Body: in}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.Request(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), Call{}, nil)
}

func (c *Client) ToggleUserActive(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	if err := c.Request(ctx, http.MethodPut, fmt.Sprintf("/users/%d/toggle-active", id), Call{}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
