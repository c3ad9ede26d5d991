/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"errors"
	"net/http"

	"journal/internal/entity"
	"journal/internal/service"
	"journal/internal/view"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

// UserHandler serves the admin dashboard: listing, creating, editing and
// deleting accounts, including each patient's required-field configuration.
// All of its routes sit behind the admin-only middleware.
type UserHandler struct {
	store       *sessions.CookieStore
	userService service.UserService
	renderer    *view.PageRenderer
}

func NewUserHandler(userService service.UserService, store *sessions.CookieStore, renderer *view.PageRenderer) *UserHandler {
	return &UserHandler{store, userService, renderer}
}

// One checkbox row of the required-field configuration form. The four
// always-required tags render locked, exactly like the original screen.
type fieldToggle struct {
	Tag     entity.EntryField
	Label   string
	Locked  bool
	Checked bool
}

func fieldToggles(selected entity.FieldSet) []fieldToggle {
	locked := entity.NewFieldSet(entity.AlwaysRequired...)
	toggles := make([]fieldToggle, 0, len(entity.FieldOrder))
	for _, f := range entity.FieldOrder {
		toggles = append(toggles, fieldToggle{
			Tag:     f,
			Label:   f.Label(),
			Locked:  locked.Contains(f),
			Checked: locked.Contains(f) || selected.Contains(f),
		})
	}
	return toggles
}

// Lists all the accounts
func (u *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	logged, _ := currentUser(r)

	users, err := u.userService.GetUsers()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"LoggedUser": logged.Username,
		"Users":      users,
	}
	if err := u.renderer.RenderTemplate(w, "users.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Creates a new account
// GET shows the creation form, POST submits it
func (u *UserHandler) NewUser(w http.ResponseWriter, r *http.Request) {
	logged, _ := currentUser(r)

	if r.Method == http.MethodGet {
		data := map[string]any{
			"Fields": fieldToggles(entity.DefaultRequiredFields()),
		}
		if err := u.renderer.RenderTemplate(w, "user_new.html", data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error occurred while parsing the form", http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		u.renderNewUserError(w, r, "Username and password cannot be empty")
		return
	}

	role := entity.RolePatient
	if entity.ValidRole(r.FormValue("role")) {
		role = entity.Role(r.FormValue("role"))
	}

	_, err := u.userService.CreateUser(&logged, username, password, role, fieldSetFromForm(r))
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUsername) {
			u.renderNewUserError(w, r, "Username already exists")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (u *UserHandler) renderNewUserError(w http.ResponseWriter, r *http.Request, msg string) {
	data := map[string]any{
		"Error":  msg,
		"Fields": fieldToggles(fieldSetFromForm(r)),
	}
	if err := u.renderer.RenderTemplate(w, "user_new.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Edits an existing account: username, required fields and optionally the password
func (u *UserHandler) EditUser(w http.ResponseWriter, r *http.Request) {
	logged, _ := currentUser(r)
	vars := mux.Vars(r)
	uuid := vars["uuid"]

	user, err := u.userService.GetUser(uuid)
	if err != nil {
		http.Error(w, "User was not found...", http.StatusNotFound)
		return
	}

	if r.Method == http.MethodGet {
		data := map[string]any{
			"User":   user,
			"Fields": fieldToggles(user.RequiredFields),
		}
		if err := u.renderer.RenderTemplate(w, "user_edit.html", data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error occurred while parsing the form", http.StatusBadRequest)
		return
	}

	if username := r.FormValue("username"); username != "" {
		user.Username = username
	}
	if password := r.FormValue("password"); password != "" {
		user.Password = password
	}
	user.RequiredFields = fieldSetFromForm(r)

	if err := u.userService.UpdateUser(&logged, user); err != nil {
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// Handles the account deletion request
func (u *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	logged, _ := currentUser(r)
	vars := mux.Vars(r)
	uuid := vars["uuid"]

	if err := u.userService.DeleteUser(&logged, uuid); err != nil {
		if errors.Is(err, service.ErrInvalidDeleteTarget) {
			http.Error(w, "This account cannot be deleted", http.StatusConflict)
			return
		}
		http.Error(w, "No users were found with such uuid. Or it could not be deleted", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
