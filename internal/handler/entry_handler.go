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
	"time"

	"journal/internal/entity"
	"journal/internal/service"
	"journal/internal/view"

	"github.com/gorilla/sessions"
)

// EntryHandler serves the journal itself: the list of past entries and the
// entry wizard. The wizard form only shows the sections the logged in user's
// required-field set asks for, in the canonical step order.
type EntryHandler struct {
	store        *sessions.CookieStore
	entryService service.EntryService
	renderer     *view.PageRenderer
}

func NewEntryHandler(entryService service.EntryService, store *sessions.CookieStore, renderer *view.PageRenderer) *EntryHandler {
	return &EntryHandler{store, entryService, renderer}
}

type wizardStep struct {
	Tag   entity.EntryField
	Label string
}

// Lists the current user's entries, most recent first
func (e *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	logged, _ := currentUser(r)

	entries, err := e.entryService.EntriesForUser(&logged)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"LoggedUser": logged.Username,
		"Entries":    entries,
	}
	if err := e.renderer.RenderTemplate(w, "entries.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Shows the entry wizard form for the current user's configuration
func (e *EntryHandler) NewEntry(w http.ResponseWriter, r *http.Request) {
	logged, _ := currentUser(r)

	steps := make([]wizardStep, 0)
	for _, f := range e.entryService.WizardSteps(&logged) {
		steps = append(steps, wizardStep{Tag: f, Label: f.Label()})
	}

	data := map[string]any{
		"LoggedUser":  logged.Username,
		"Steps":       steps,
		"Now":         time.Now(),
		"Experiences": entity.Experiences,
		"Moods":       entity.Moods,
		"Conditions":  entity.Conditions,
		"Challenges":  entity.Challenges,
	}
	if err := e.renderer.RenderTemplate(w, "entry_new.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Saves a submitted entry under the requesting user's identity
func (e *EntryHandler) SaveEntry(w http.ResponseWriter, r *http.Request) {
	logged, ok := currentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error occurred while parsing the form", http.StatusBadRequest)
		return
	}

	entry := &entity.Entry{
		Activity:   r.FormValue("activity"),
		Experience: entity.Experience(r.FormValue("experience")),
		Stress:     optionalInt(r, "stress"),
		Control:    optionalInt(r, "control"),
		Energy:     optionalInt(r, "energy"),
		Pain:       optionalInt(r, "pain"),
		Comments:   optionalString(r, "comments"),
	}

	if raw := r.FormValue("startTime"); raw != "" {
		if t, err := time.ParseInLocation("2006-01-02T15:04", raw, time.Local); err == nil {
			entry.StartTime = t
		}
	}
	if raw := r.FormValue("mood"); raw != "" {
		m := entity.Mood(raw)
		entry.Mood = &m
	}
	if raw := r.FormValue("condition"); raw != "" {
		c := entity.Condition(raw)
		entry.Condition = &c
	}
	if raw := r.FormValue("challenge"); raw != "" {
		c := entity.Challenge(raw)
		entry.Challenge = &c
	}

	if err := e.entryService.SaveEntry(&logged, entry); err != nil {
		if errors.Is(err, service.ErrNoActiveSession) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/entries", http.StatusSeeOther)
}
