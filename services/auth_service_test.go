package services

import (
	"context"
	"testing"
	"time"

	"github.com/courtside/badminton-league/models"
	"github.com/courtside/badminton-league/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[string]*models.UserAccount
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.UserAccount)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.UserAccount) error {
	if _, ok := f.users[user.Username]; ok {
		return repositories.ErrUserUsernameConflict
	}
	clone := *user
	f.users[user.Username] = &clone
	return nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.UserAccount, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]models.UserAccount, error) {
	users := make([]models.UserAccount, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeUserRepo) UpdateAccess(_ context.Context, username string, access models.AccessLevel) error {
	user, ok := f.users[username]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Access = access
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, username string, at time.Time) error {
	user, ok := f.users[username]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.LastLoginAt = &at
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, username string) error {
	if _, ok := f.users[username]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(f.users, username)
	return nil
}

func TestLoginSelfRegistersUnknownUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "rajesh", testLogger())

	user, err := svc.Login(context.Background(), models.Credentials{Username: "  Meera ", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "meera", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, models.AccessRead, user.Access)
	assert.Empty(t, user.PasswordHash)

	// Пароль сохранён хешем, не открытым текстом.
	stored := repo.users["meera"]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "secret", stored.PasswordHash)
}

func TestLoginReservedUsernameBootstrapsAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "rajesh", testLogger())

	user, err := svc.Login(context.Background(), models.Credentials{Username: "Rajesh", Password: "supersecret"})
	require.NoError(t, err)

	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, models.AccessWrite, user.Access)
}

func TestLoginExistingAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "rajesh", testLogger())

	_, err := svc.Login(context.Background(), models.Credentials{Username: "meera", Password: "secret"})
	require.NoError(t, err)

	again, err := svc.Login(context.Background(), models.Credentials{Username: "meera", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "meera", again.Username)
	assert.NotNil(t, again.LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "rajesh", testLogger())

	_, err := svc.Login(context.Background(), models.Credentials{Username: "meera", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), models.Credentials{Username: "meera", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRequiresCredentials(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "rajesh", testLogger())

	_, err := svc.Login(context.Background(), models.Credentials{Username: "", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), models.Credentials{Username: "meera", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminSetAccess(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo, "rajesh", testLogger())
	admin := NewAdminService(repo, testLogger())

	_, err := auth.Login(context.Background(), models.Credentials{Username: "meera", Password: "secret"})
	require.NoError(t, err)

	updated, err := admin.SetAccess(context.Background(), "meera", models.AccessScore)
	require.NoError(t, err)
	assert.Equal(t, models.AccessScore, updated.Access)
	assert.Empty(t, updated.PasswordHash)

	_, err = admin.SetAccess(context.Background(), "meera", "superuser")
	assert.ErrorIs(t, err, ErrAccessLevelInvalid)

	_, err = admin.SetAccess(context.Background(), "ghost", models.AccessScore)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdminSetAccessProtectsAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo, "rajesh", testLogger())
	admin := NewAdminService(repo, testLogger())

	_, err := auth.Login(context.Background(), models.Credentials{Username: "rajesh", Password: "supersecret"})
	require.NoError(t, err)

	_, err = admin.SetAccess(context.Background(), "rajesh", models.AccessRead)
	assert.ErrorIs(t, err, ErrAdminImmutable)
}
