package middleware

import (
	"context"
	"net/http"

	"journal/internal/entity"
	"journal/internal/repository"

	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

type contextKey string

// CurrentUserKey is the request-context key the authenticated user is stored under.
const CurrentUserKey contextKey = "current-user"

// SessionName is the cookie session's name.
const SessionName = "journal-session"

// Auth resolves the cookie session to a stored user and puts it in the
// request context. The user is re-read from the repository on every request
// so the role can not be forged client side.
func Auth(store *sessions.CookieStore, users repository.UserRepository, next func(w http.ResponseWriter, r *http.Request)) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := store.Get(r, SessionName)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		uuid, ok := session.Values["user_uuid"].(string)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		user, err := users.GetByUUID(uuid)
		if err != nil {
			// Stale cookie for a deleted account: drop it.
			session.Options.MaxAge = -1
			if err := sessions.Save(r, w); err != nil {
				logrus.WithError(err).Warn("Expiring a stale session cookie")
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), CurrentUserKey, *user)
		next(w, r.WithContext(ctx))
	}
}

// AdminOnly rejects requests whose authenticated user is not an admin.
func AdminOnly(next func(w http.ResponseWriter, r *http.Request)) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(CurrentUserKey).(entity.User)
		if !ok || user.Role != entity.RoleAdmin {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}
