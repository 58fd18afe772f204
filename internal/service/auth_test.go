package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digitalstore/internal/repository"
)

func newAuthService(t *testing.T) (AuthService, repository.UserRepository) {
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)
	return NewAuthService(repo, testLogger()), repo
}

func TestSignupAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	session, err := svc.Signup(ctx, "Alice", "A@X.com", "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), session.ExpiresAt, time.Minute)

	// Email is normalized, so login with another casing works.
	login, err := svc.Login(ctx, "a@x.com", "correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, session.Token, login.Token, "each login issues its own session")

	user, err := svc.ResolveUser(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Alice", "a@x.com", "correct horse battery")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "Mallory", "a@x.com", "different password")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Alice", "a@x.com", "correct horse battery")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@x.com", "wrong password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@x.com", "whatever password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout_InvalidatesToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	session, err := svc.Signup(ctx, "Alice", "a@x.com", "correct horse battery")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.Token))

	_, err = svc.ResolveUser(ctx, session.Token)
	require.ErrorIs(t, err, ErrUnauthorized)
}

// Concurrent sessions stay independent: logging out one leaves the
// others valid.
func TestLogout_LeavesOtherSessionsAlive(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	first, err := svc.Signup(ctx, "Alice", "a@x.com", "correct horse battery")
	require.NoError(t, err)
	second, err := svc.Login(ctx, "a@x.com", "correct horse battery")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, first.Token))

	_, err = svc.ResolveUser(ctx, second.Token)
	require.NoError(t, err)
}
