package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mutix31/Sharebin/internal/common"
	"github.com/mutix31/Sharebin/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_ResolveAndLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, "Alice", "alice@example.com", "password1")
	require.NoError(t, err)
	session, err := env.sessions.Login(ctx, "alice@example.com", "password1")
	require.NoError(t, err)
	assert.Len(t, session.Token, 64)

	id, err := env.sessions.Resolve(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", id.Email)
	assert.Equal(t, models.RoleUser, id.Role)

	require.NoError(t, env.sessions.Logout(ctx, session.Token))
	require.NoError(t, env.sessions.Logout(ctx, session.Token))
	require.NoError(t, env.sessions.Logout(ctx, ""))

	_, err = env.sessions.Resolve(ctx, session.Token)
	assert.True(t, errors.Is(err, common.ErrUnauthenticated))
}

func TestSession_ExpiredIsRemoved(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.signUp(t, "Alice", "alice@example.com")
	all, err := env.repos.Sessions().List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	token := all[0].Token
	assert.Equal(t, id.UserID, all[0].UserID)

	env.clock.Advance(env.cfg.SessionValidityDuration + time.Second)

	_, err = env.sessions.Resolve(ctx, token)
	assert.True(t, errors.Is(err, common.ErrUnauthenticated))

	_, err = env.repos.Sessions().Find(ctx, token)
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestSession_UnknownAndCorruptTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.sessions.Resolve(ctx, "")
	assert.True(t, errors.Is(err, common.ErrUnauthenticated))

	_, err = env.sessions.Resolve(ctx, "deadbeef")
	assert.True(t, errors.Is(err, common.ErrUnauthenticated))

	require.NoError(t, env.store.Put(ctx, "sessions/garbage.json", []byte(`{"kind":"user","v":1,"data":{}}`), "application/json"))
	_, err = env.sessions.Resolve(ctx, "garbage")
	assert.True(t, errors.Is(err, common.ErrUnauthenticated))
}

func TestSession_StoreFailureIsNotUnauthenticated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.store.failGet = "sessions/"
	_, err := env.sessions.Resolve(ctx, "sometoken")
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrUnauthenticated))
	assert.True(t, errors.Is(err, common.ErrStore))
}

func TestPropagateProfileChange_OnlyTouchesOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.signUp(t, "Alice", "alice@example.com")
	env.signUp(t, "Bob", "bob@example.com")

	n, err := env.sessions.PropagateProfileChange(ctx, alice.UserID, "Al", models.RoleVIP)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	all, err := env.repos.Sessions().List(ctx)
	require.NoError(t, err)
	for _, s := range all {
		if s.UserID == alice.UserID {
			assert.Equal(t, "Al", s.Name)
			assert.Equal(t, models.RoleVIP, s.Role)
		} else {
			assert.Equal(t, "Bob", s.Name)
			assert.Equal(t, models.RoleUser, s.Role)
		}
	}

	n, err = env.sessions.PropagateProfileChange(ctx, alice.UserID, "Al", models.RoleVIP)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPropagateProfileChange_ReportsFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.signUp(t, "Alice", "alice@example.com")
	env.store.setFailPut("sessions/")

	n, err := env.sessions.PropagateProfileChange(ctx, alice.UserID, "Al", models.RoleUser)
	assert.Equal(t, 0, n)
	assert.True(t, errors.Is(err, common.ErrStore))
}
