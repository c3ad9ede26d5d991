/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"net/http"
	"strconv"

	"journal/internal/entity"
	"journal/internal/middleware"
)

// currentUser pulls the authenticated user the middleware stored in the
// request context.
func currentUser(r *http.Request) (entity.User, bool) {
	user, ok := r.Context().Value(middleware.CurrentUserKey).(entity.User)
	return user, ok
}

// fieldSetFromForm reads the "field" checkboxes of a parsed form into a
// field set. The four always-required tags are force-included, exactly like
// the original configuration screen kept their toggles locked on.
func fieldSetFromForm(r *http.Request) entity.FieldSet {
	set := entity.NewFieldSet(entity.AlwaysRequired...)
	for _, raw := range r.Form["field"] {
		if f, ok := entity.ParseField(raw); ok {
			set.Add(f)
		}
	}
	return set
}

// optionalInt reads a numeric form value, absent or unparsable means unset.
func optionalInt(r *http.Request, name string) *int {
	raw := r.FormValue(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// optionalString reads a text form value, empty means unset.
func optionalString(r *http.Request, name string) *string {
	raw := r.FormValue(name)
	if raw == "" {
		return nil
	}
	return &raw
}
