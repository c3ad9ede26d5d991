package service

import (
	"path/filepath"
	"testing"
	"time"

	"journal/internal/entity"
	"journal/internal/repository"
	"journal/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	users   repository.UserRepository
	entries repository.EntryRepository
	session *session.Session
	auth    AuthService
	user    UserService
	entry   EntryService
}

// newTestEnv opens a fresh sqlite database in a temp dir, which also runs
// the bootstrap seeding of the default admin.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := repository.Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)

	users := repository.NewSQLiteUserRepository(db)
	entries := repository.NewSQLiteEntryRepository(db)
	sess := session.New()

	return &testEnv{
		users:   users,
		entries: entries,
		session: sess,
		auth:    NewAuthService(users, sess),
		user:    NewUserService(users),
		entry:   NewEntryService(entries),
	}
}

func loginAdmin(t *testing.T, env *testEnv) *entity.User {
	t.Helper()
	admin, err := env.auth.Login(repository.DefaultAdminUsername, repository.DefaultAdminPassword)
	require.NoError(t, err)
	return admin
}

func TestBootstrapSeedsDefaultAdmin(t *testing.T) {
	env := newTestEnv(t)

	count, err := env.users.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	admin, err := env.users.GetByUsername("Admin")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.Equal(t, "Password", admin.Password)
	assert.True(t, admin.RequiredFields.Contains(entity.FieldComments))
}

func TestLoginSetsSession(t *testing.T) {
	env := newTestEnv(t)

	admin := loginAdmin(t, env)
	require.NotNil(t, env.session.Current())
	assert.Equal(t, admin.UUID, env.session.Current().UUID)
}

func TestLoginWrongCredentialsLeavesSessionUnchanged(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Login("Admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, env.session.Current())

	// Usernames and passwords match case-sensitively, with no normalization.
	_, err = env.auth.Login("admin", "Password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	loginAdmin(t, env)
	_, err = env.auth.Login("Admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	require.NotNil(t, env.session.Current(), "failed login must not clear the session")
}

func TestLogoutIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	loginAdmin(t, env)
	env.auth.Logout()
	assert.Nil(t, env.session.Current())
	env.auth.Logout()
	assert.Nil(t, env.session.Current())
}

func TestCreateUserRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	// No one acting at all.
	_, err := env.user.CreateUser(nil, "pat1", "pw", entity.RolePatient, nil)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	admin := loginAdmin(t, env)
	patient, err := env.user.CreateUser(admin, "pat1", "pw", entity.RolePatient, nil)
	require.NoError(t, err)

	// A patient acting.
	_, err = env.user.CreateUser(patient, "pat2", "pw", entity.RolePatient, nil)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = env.users.GetByUsername("pat2")
	assert.ErrorIs(t, err, repository.ErrNotFound, "rejected create must leave no user behind")
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	admin := loginAdmin(t, env)

	created, err := env.user.CreateUser(admin, "pat1", "pw", entity.RolePatient, entity.NewFieldSet(entity.FieldStartTime, entity.FieldActivity, entity.FieldExperience, entity.FieldComments, entity.FieldMood))
	require.NoError(t, err)
	assert.True(t, created.RequiredFields.Contains(entity.FieldMood))

	_, err = env.user.CreateUser(admin, "pat1", "pw2", entity.RolePatient, nil)
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	count, err := env.users.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// The original user is untouched.
	stored, err := env.users.GetByUsername("pat1")
	require.NoError(t, err)
	assert.Equal(t, "pw", stored.Password)
}

func TestCreateUserDefaultsRequiredFields(t *testing.T) {
	env := newTestEnv(t)
	admin := loginAdmin(t, env)

	created, err := env.user.CreateUser(admin, "pat1", "pw", entity.RolePatient, nil)
	require.NoError(t, err)

	stored, err := env.users.GetByUUID(created.UUID)
	require.NoError(t, err)
	for _, f := range entity.AlwaysRequired {
		assert.True(t, stored.RequiredFields.Contains(f), "default set is missing %s", f)
	}
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)
	admin := loginAdmin(t, env)

	created, err := env.user.CreateUser(admin, "pat1", "pw", entity.RolePatient, nil)
	require.NoError(t, err)

	created.Username = "pat1-renamed"
	created.RequiredFields.Add(entity.FieldPain)
	require.NoError(t, env.user.UpdateUser(admin, created))

	stored, err := env.users.GetByUUID(created.UUID)
	require.NoError(t, err)
	assert.Equal(t, "pat1-renamed", stored.Username)
	assert.True(t, stored.RequiredFields.Contains(entity.FieldPain))
}

func TestUpdateUserRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	admin := loginAdmin(t, env)

	created, err := env.user.CreateUser(admin, "pat1", "pw", entity.RolePatient, nil)
	require.NoError(t, err)

	created.Username = "sneaky"
	assert.ErrorIs(t, env.user.UpdateUser(created, created), ErrNotAuthorized)
	assert.ErrorIs(t, env.user.UpdateUser(nil, created), ErrNotAuthorized)
}

func TestDeleteUserSelfForbidden(t *testing.T) {
	env := newTestEnv(t)
	admin := loginAdmin(t, env)

	err := env.user.DeleteUser(admin, admin.UUID)
	assert.ErrorIs(t, err, ErrInvalidDeleteTarget)

	_, err = env.users.GetByUUID(admin.UUID)
	assert.NoError(t, err, "the admin must still exist")
}

// The self-delete guard compares against the user performing the call, not
// against whoever logged in most recently.
func TestSelfDeleteGuardUsesActingUser(t *testing.T) {
	env := newTestEnv(t)
	first := loginAdmin(t, env)

	second, err := env.user.CreateUser(first, "admin2", "pw", entity.RoleAdmin, nil)
	require.NoError(t, err)

	// The second admin logs in; the session now holds them, but the first
	// admin's own delete request must still be refused.
	_, err = env.auth.Login("admin2", "pw")
	require.NoError(t, err)
	assert.ErrorIs(t, env.user.DeleteUser(first, first.UUID), ErrInvalidDeleteTarget)

	_, err = env.users.GetByUUID(first.UUID)
	assert.NoError(t, err, "the first admin must still exist")

	// Deleting the other admin is a valid target.
	require.NoError(t, env.user.DeleteUser(first, second.UUID))
}

func TestDeleteLastAdminForbidden(t *testing.T) {
	env := newTestEnv(t)
	admin := loginAdmin(t, env)

	second, err := env.user.CreateUser(admin, "admin2", "pw", entity.RoleAdmin, nil)
	require.NoError(t, err)

	// Two admins: deleting the second one is fine.
	require.NoError(t, env.user.DeleteUser(admin, second.UUID))

	// Back to one admin: the guard refuses even a direct repository
	// delete, so no caller can reduce the live admin count to zero.
	assert.ErrorIs(t, env.users.Delete(admin.UUID), repository.ErrLastAdmin)

	_, err = env.users.GetByUUID(admin.UUID)
	assert.NoError(t, err, "the last admin must survive the attempt")
}

func TestDeleteUserRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	admin := loginAdmin(t, env)

	patient, err := env.user.CreateUser(admin, "pat1", "pw", entity.RolePatient, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, env.user.DeleteUser(patient, admin.UUID), ErrNotAuthorized)
	assert.ErrorIs(t, env.user.DeleteUser(nil, admin.UUID), ErrNotAuthorized)
}

func TestDeleteUserCascadesToEntries(t *testing.T) {
	env := newTestEnv(t)
	admin := loginAdmin(t, env)

	patient, err := env.user.CreateUser(admin, "pat1", "pw", entity.RolePatient, nil)
	require.NoError(t, err)

	require.NoError(t, env.entry.SaveEntry(patient, &entity.Entry{Activity: "walk"}))
	require.NoError(t, env.entry.SaveEntry(patient, &entity.Entry{Activity: "read"}))

	require.NoError(t, env.user.DeleteUser(admin, patient.UUID))

	count, err := env.entries.CountByUser(patient.UUID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGetUserUnknown(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.user.GetUser("no-such-uuid")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSaveEntryWithoutActor(t *testing.T) {
	env := newTestEnv(t)

	err := env.entry.SaveEntry(nil, &entity.Entry{Activity: "walk"})
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestSaveEntryFillsDefaults(t *testing.T) {
	env := newTestEnv(t)
	admin := loginAdmin(t, env)

	require.NoError(t, env.entry.SaveEntry(admin, &entity.Entry{Activity: "walk"}))

	entries, err := env.entries.GetByUser(admin.UUID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.ExperienceBasic, entries[0].Experience)
	assert.False(t, entries[0].StartTime.IsZero())
	assert.False(t, entries[0].CreatedAt.IsZero())
	assert.Nil(t, entries[0].Mood)
}

// Entries belong to the user who performed the save, regardless of which
// user logged into the shared session last.
func TestSaveEntryOwnedByActingUser(t *testing.T) {
	env := newTestEnv(t)
	admin := loginAdmin(t, env)

	patient, err := env.user.CreateUser(admin, "pat1", "pw", entity.RolePatient, nil)
	require.NoError(t, err)

	// The admin logs in again after the patient, so the session's current
	// user is the admin while the patient's save is in flight.
	_, err = env.auth.Login("pat1", "pw")
	require.NoError(t, err)
	loginAdmin(t, env)

	require.NoError(t, env.entry.SaveEntry(patient, &entity.Entry{Activity: "walk"}))

	own, err := env.entries.CountByUser(patient.UUID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), own)

	admins, err := env.entries.CountByUser(admin.UUID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), admins, "the entry must not land under the admin")

	entries, err := env.entry.EntriesForUser(patient)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, patient.UUID, entries[0].UserUUID)
}

func TestEntriesSortedDescending(t *testing.T) {
	env := newTestEnv(t)
	admin := loginAdmin(t, env)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for _, offset := range []int{2, 0, 3, 1} {
		err := env.entry.SaveEntry(admin, &entity.Entry{
			Activity:  "walk",
			StartTime: base.Add(time.Duration(offset) * time.Hour),
		})
		require.NoError(t, err)
	}

	entries, err := env.entry.EntriesForUser(admin)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].StartTime.After(entries[i-1].StartTime), "entries are not in descending start time order")
	}
}

func TestEntriesWithoutActor(t *testing.T) {
	env := newTestEnv(t)

	entries, err := env.entry.EntriesForUser(nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntriesAreScopedToTheirOwner(t *testing.T) {
	env := newTestEnv(t)
	admin := loginAdmin(t, env)

	patient, err := env.user.CreateUser(admin, "pat1", "pw", entity.RolePatient, nil)
	require.NoError(t, err)

	require.NoError(t, env.entry.SaveEntry(admin, &entity.Entry{Activity: "admin work"}))
	require.NoError(t, env.entry.SaveEntry(patient, &entity.Entry{Activity: "walk"}))

	entries, err := env.entry.EntriesForUser(patient)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "walk", entries[0].Activity)
}

func TestWizardStepsForActor(t *testing.T) {
	env := newTestEnv(t)

	// No actor: the bare minimum steps.
	assert.Equal(t, []entity.EntryField{entity.FieldStartTime, entity.FieldActivity, entity.FieldExperience}, env.entry.WizardSteps(nil))

	admin := loginAdmin(t, env)
	admin.RequiredFields = entity.NewFieldSet(entity.FieldComments, entity.FieldStartTime, entity.FieldStress)

	assert.Equal(t, []entity.EntryField{entity.FieldStartTime, entity.FieldStress, entity.FieldComments}, env.entry.WizardSteps(admin))
}

// The full walkthrough: bootstrap, admin login, patient creation, the
// delete guards, and the patient being unable to manage accounts. The
// session's current user is handed over as the actor at every step, the
// way a single operator drives the model.
func TestAdminPatientScenario(t *testing.T) {
	env := newTestEnv(t)

	admin, err := env.auth.Login("Admin", "Password")
	require.NoError(t, err)

	_, err = env.user.CreateUser(env.session.Current(), "pat1", "pw", entity.RolePatient,
		entity.NewFieldSet(entity.FieldStartTime, entity.FieldActivity, entity.FieldExperience, entity.FieldComments, entity.FieldMood))
	require.NoError(t, err)

	_, err = env.user.CreateUser(env.session.Current(), "pat1", "pw2", entity.RolePatient, nil)
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	assert.ErrorIs(t, env.user.DeleteUser(env.session.Current(), admin.UUID), ErrInvalidDeleteTarget)

	env.auth.Logout()
	_, err = env.auth.Login("pat1", "pw")
	require.NoError(t, err)
	assert.ErrorIs(t, env.user.DeleteUser(env.session.Current(), admin.UUID), ErrNotAuthorized)

	_, err = env.users.GetByUUID(admin.UUID)
	assert.NoError(t, err)
}
