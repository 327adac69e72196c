package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the stylesheet and other assets served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var funcs = template.FuncMap{
	"statusBadge":      StatusBadge,
	"severityBadge":    SeverityBadge,
	"maintenanceBadge": MaintenanceBadge,
	"roleBadge":        RoleBadge,
	"activeBadge":      ActiveBadge,
	"formatDate":       FormatDate,
	"formatDateOr":     FormatDateOr,
	"formatDateTime":   FormatDateTime,
	"inputDate":        InputDate,
	"hours":            Hours,
	"percent":          Percent,
	"float":            func(n int) float64 { return float64(n) },
	"equipmentTypes":   func() []string { return models.EquipmentTypes },
	"statuses":         func() []string { return models.EquipmentStatuses },
	"maintenanceTypes": func() []string { return models.MaintenanceTypes },
	"severities":       func() []string { return models.Severities },
	"roles":            func() []string { return models.Roles },
	"dict":             dict,
}

// dict builds a map for passing several values to a nested template.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[key] = kv[i+1]
	}
	return m, nil
}

// Renderer executes the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.New("cmms").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes one named template into w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// HTML renders a template to a string for embedding in another one.
func (r *Renderer) HTML(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// NavLink is one entry of the top navigation.
type NavLink struct {
	Page   string
	Label  string
	Active bool
}

// Page is the full document: navigation, banners and one page body.
type Page struct {
	Title    string
	User     *models.User
	Nav      []NavLink
	Flashes  []Alert
	Body     string // template name
	Data     any
	LiveFeed bool
}

type pageFrame struct {
	Page
	Content template.HTML
}

// RenderPage paints the shell with the named body. The body never waits on
// backend data; regions inside it load themselves.
func (r *Renderer) RenderPage(w io.Writer, p Page) error {
	content, err := r.HTML(p.Body, p.Data)
	if err != nil {
		return err
	}
	return r.Render(w, "layout", pageFrame{Page: p, Content: content})
}

// Alert is a transient banner.
type Alert struct {
	Kind    string // success or error
	Message string
}

// RenderAlert writes an out-of-band banner prepended to the alert area.
func (r *Renderer) RenderAlert(w io.Writer, a Alert) error {
	return r.Render(w, "alert-oob", a)
}
