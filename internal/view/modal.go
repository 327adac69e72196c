package view

import (
	"html/template"
	"io"
)

// Modal describes one overlay: a title, a body template and an optional
// inline alert shown above the body.
type Modal struct {
	Title string
	Body  string
	Data  any
	Alert string
	Wide  bool
}

type modalFrame struct {
	Modal
	Content template.HTML
}

// RenderModal mounts m into #modal-container, replacing whatever it held.
// Modals never stack.
func (r *Renderer) RenderModal(w io.Writer, m Modal) error {
	content, err := r.HTML(m.Body, m.Data)
	if err != nil {
		return err
	}
	return r.Render(w, "modal", modalFrame{Modal: m, Content: content})
}

// Confirm is the body of a destructive-action confirmation.
type Confirm struct {
	Message string
	Action  string // POST target
	Label   string
	Danger  bool
}

// RenderConfirm mounts a confirmation modal that posts confirm=yes.
func (r *Renderer) RenderConfirm(w io.Writer, title string, c Confirm) error {
	return r.RenderModal(w, Modal{Title: title, Body: "confirm", Data: c})
}

// CloseModal empties the container and adds a success banner.
func (r *Renderer) CloseModal(w io.Writer, message string) error {
	if message == "" {
		return nil
	}
	return r.RenderAlert(w, Alert{Kind: "success", Message: message})
}
