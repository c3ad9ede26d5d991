package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"journal/internal/entity"
	"journal/internal/repository"

	"github.com/gorilla/sessions"
)

type MockUserRepository struct {
	user *entity.User
}

func (m *MockUserRepository) Create(*entity.User) error { return nil }
func (m *MockUserRepository) Update(*entity.User) error { return nil }
func (m *MockUserRepository) Delete(string) error       { return nil }
func (m *MockUserRepository) GetForLogin(string, string) (*entity.User, error) {
	return m.user, nil
}
func (m *MockUserRepository) GetByUUID(uuid string) (*entity.User, error) {
	if m.user != nil && m.user.UUID == uuid {
		return m.user, nil
	}
	return nil, repository.ErrNotFound
}
func (m *MockUserRepository) GetByUsername(string) (*entity.User, error) {
	return m.user, nil
}
func (m *MockUserRepository) GetAll() ([]*entity.User, error) { return nil, nil }
func (m *MockUserRepository) Count() (int64, error)           { return 0, nil }

func cookieFor(t *testing.T, store *sessions.CookieStore, uuid string) *http.Cookie {
	t.Helper()

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	session, _ := store.Get(req, SessionName)
	session.Values["user_uuid"] = uuid
	if err := session.Save(req, rr); err != nil {
		t.Fatalf("Saving the session cookie: %v", err)
	}

	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("No session cookie was produced")
	}
	return cookies[0]
}

func TestAuthRedirectsWithoutCookie(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-key"))
	repo := &MockUserRepository{}

	toTest := Auth(store, repo, func(w http.ResponseWriter, r *http.Request) {
		t.Error("Called despite no session cookie!")
	})

	req := httptest.NewRequest("GET", "/entries", nil)
	rr := httptest.NewRecorder()
	toTest(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Errorf("Expected redirect, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/login" {
		t.Errorf("Expected redirect to /login, got %s", loc)
	}
}

func TestAuthPutsUserInContext(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-key"))
	repo := &MockUserRepository{user: &entity.User{UUID: "u1", Username: "pat1", Role: entity.RolePatient}}

	called := false
	toTest := Auth(store, repo, func(w http.ResponseWriter, r *http.Request) {
		called = true
		user, ok := r.Context().Value(CurrentUserKey).(entity.User)
		if !ok {
			t.Fatal("No user in the request context")
		}
		if user.Username != "pat1" {
			t.Errorf("Wrong user in context: %s", user.Username)
		}
	})

	req := httptest.NewRequest("GET", "/entries", nil)
	req.AddCookie(cookieFor(t, store, "u1"))
	rr := httptest.NewRecorder()
	toTest(rr, req)

	if !called {
		t.Error("Next handler was never called")
	}
}

func TestAuthDropsStaleCookie(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-key"))
	repo := &MockUserRepository{} // no users: the account was deleted

	toTest := Auth(store, repo, func(w http.ResponseWriter, r *http.Request) {
		t.Error("Called despite the account being gone!")
	})

	req := httptest.NewRequest("GET", "/entries", nil)
	req.AddCookie(cookieFor(t, store, "ghost"))
	rr := httptest.NewRecorder()
	toTest(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Errorf("Expected redirect, got %d", rr.Code)
	}

	// The response must carry an expiring Set-Cookie so the browser
	// actually drops the stale session.
	expired := false
	for _, c := range rr.Result().Cookies() {
		if c.Name == SessionName && c.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Error("The stale session cookie was not expired")
	}
}

func TestAdminOnly(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-key"))

	patient := &MockUserRepository{user: &entity.User{UUID: "u1", Username: "pat1", Role: entity.RolePatient}}
	toTest := Auth(store, patient, AdminOnly(func(w http.ResponseWriter, r *http.Request) {
		t.Error("A patient reached an admin-only route!")
	}))

	req := httptest.NewRequest("GET", "/users", nil)
	req.AddCookie(cookieFor(t, store, "u1"))
	rr := httptest.NewRecorder()
	toTest(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", rr.Code)
	}

	admin := &MockUserRepository{user: &entity.User{UUID: "u2", Username: "Admin", Role: entity.RoleAdmin}}
	called := false
	toTest = Auth(store, admin, AdminOnly(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req = httptest.NewRequest("GET", "/users", nil)
	req.AddCookie(cookieFor(t, store, "u2"))
	rr = httptest.NewRecorder()
	toTest(rr, req)

	if !called {
		t.Error("The admin was not let through")
	}
}
