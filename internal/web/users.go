package web

import (
	"fmt"
	"net/http"

	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/models"
	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/view"
)

// Data regions

type userList struct {
	Items  []models.User
	SelfID int
}

func (s *Server) regionUsers(w http.ResponseWriter, r *http.Request, sc *scope) {
	self := sc.app().Identity.ID
	items, err := sc.client.ListUsers(r.Context())
	if err != nil {
		s.regionError(w, r, sc, err, "region-users", userList{SelfID: self}, "Failed to load users")
		return
	}
	s.fragment(w, r, sc, "region-users", userList{Items: items, SelfID: self})
}

// Modals

type userForm struct {
	Action string
	Form   models.UserInput
	Edit   bool
	Self   bool
	Active bool
}

// userModal renders the add or edit form. On the signed-in admin's own
// account the role and active controls are left out.
func userModal(action string, in models.UserInput, edit, self bool) view.Modal {
	title := "Add User"
	if edit {
		title = "Edit User"
	}
	active := in.IsActive == nil || *in.IsActive
	in.Password = ""
	return view.Modal{
		Title: title,
		Body:  "user-form",
		Data:  userForm{Action: action, Form: in, Edit: edit, Self: self, Active: active},
	}
}

func (s *Server) modalUserNew(w http.ResponseWriter, r *http.Request, sc *scope) {
	s.modal(w, r, sc, userModal("/actions/users", models.UserInput{Role: models.RoleTechnician}, false, false))
}

func (s *Server) modalUserEdit(w http.ResponseWriter, r *http.Request, sc *scope) {
	id := pathID(r)
	u, err := sc.client.FindUser(r.Context(), id)
	if err != nil {
		s.modalLoadError(w, r, sc, err, "Failed to load user data")
		return
	}
	in := models.UserInput{FullName: u.FullName, Email: u.Email, Role: u.Role, IsActive: &u.IsActive}
	s.modal(w, r, sc, userModal(fmt.Sprintf("/actions/users/%d", id), in, true, id == sc.app().Identity.ID))
}

func (s *Server) modalUserDelete(w http.ResponseWriter, r *http.Request, sc *scope) {
	s.confirm(w, r, sc, "Delete User", view.Confirm{
		Message: "Are you sure you want to delete this user? This action cannot be undone.",
		Action:  fmt.Sprintf("/actions/users/%d/delete", pathID(r)),
		Label:   "Delete",
		Danger:  true,
	})
}

// Mutations

func (s *Server) createUser(w http.ResponseWriter, r *http.Request, sc *scope) {
	in := parseUserForm(r)
	err := in.ValidateCreate()
	if err == nil {
		_, err = sc.client.CreateUser(r.Context(), in)
	}
	if err != nil {
		s.formError(w, r, sc, err, userModal("/actions/users", in, false, false), "Failed to save user")
		return
	}
	s.done(w, r, sc, "User created successfully", evUsers)
}

// updateUser omits a blank password so the current one is kept. Role and
// active state are never sent for the admin's own account.
func (s *Server) updateUser(w http.ResponseWriter, r *http.Request, sc *scope) {
	id := pathID(r)
	self := id == sc.app().Identity.ID
	in := parseUserForm(r)
	var err error
	if self {
		in.Role, in.IsActive = "", nil
		err = in.ValidateProfile()
	} else {
		err = in.Validate()
	}
	if err == nil {
		_, err = sc.client.UpdateUser(r.Context(), id, in)
	}
	if err != nil {
		s.formError(w, r, sc, err, userModal(fmt.Sprintf("/actions/users/%d", id), in, true, self), "Failed to save user")
		return
	}
	s.done(w, r, sc, "User updated successfully", evUsers)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request, sc *scope) {
	id := pathID(r)
	if !confirmed(r) {
		s.alertOnly(w, r, sc, "error", "Deletion was not confirmed")
		return
	}
	if id == sc.app().Identity.ID {
		s.alertOnly(w, r, sc, "error", "You cannot delete your own account")
		return
	}
	if err := sc.client.DeleteUser(r.Context(), id); err != nil {
		s.actionError(w, r, sc, err, "Failed to delete user")
		return
	}
	s.done(w, r, sc, "User deleted successfully", evUsers)
}

func (s *Server) toggleUser(w http.ResponseWriter, r *http.Request, sc *scope) {
	id := pathID(r)
	if id == sc.app().Identity.ID {
		s.alertOnly(w, r, sc, "error", "You cannot deactivate your own account")
		return
	}
	if _, err := sc.client.ToggleUserActive(r.Context(), id); err != nil {
		s.actionError(w, r, sc, err, "Failed to update user status")
		return
	}
	s.done(w, r, sc, "User status updated", evUsers)
}
