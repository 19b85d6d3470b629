package models

import (
	"errors"
	"testing"
	"time"

	"github.com/mutix31/Sharebin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
	assert.Equal(t, NormalizeEmail("BOB@x.io"), NormalizeEmail("bob@X.IO"))
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleVIP.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
}

func TestUser_PublicDropsHash(t *testing.T) {
	u := &User{ID: "u1", Name: "A", Email: "a@b.c", PasswordHash: "secret", Role: RoleVIP}
	p := u.Public()
	assert.Equal(t, UserPublic{ID: "u1", Name: "A", Email: "a@b.c", Role: RoleVIP}, p)
}

func TestExpiresAt(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		option string
		want   *time.Duration
	}{
		{option: "1d", want: durPtr(24 * time.Hour)},
		{option: "5d", want: durPtr(120 * time.Hour)},
		{option: "1w", want: durPtr(168 * time.Hour)},
		{option: "1m", want: durPtr(720 * time.Hour)},
		{option: "unlimited", want: nil},
		{option: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.option, func(t *testing.T) {
			got, err := ExpiresAt(now, tt.option)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, now.Add(*tt.want), *got)
		})
	}

	_, err := ExpiresAt(now, "2y")
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestParseViewLimit(t *testing.T) {
	one, err := ParseViewLimit("1")
	require.NoError(t, err)
	assert.Equal(t, 1, *one)

	ten, err := ParseViewLimit("10")
	require.NoError(t, err)
	assert.Equal(t, 10, *ten)

	none, err := ParseViewLimit("unlimited")
	require.NoError(t, err)
	assert.Nil(t, none)

	for _, bad := range []string{"0", "5", "-1", "lots"} {
		_, err := ParseViewLimit(bad)
		assert.True(t, errors.Is(err, common.ErrValidation), bad)
	}
}

func TestArtifact_ExpiredAndExhausted(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	limit := 2

	a := &Artifact{ExpiresAt: &past}
	assert.True(t, a.Expired(now))

	b := &Artifact{}
	assert.False(t, b.Expired(now))
	assert.False(t, b.Exhausted())

	c := &Artifact{ViewLimit: &limit, ViewCount: 2}
	assert.True(t, c.Exhausted())
	c.ViewCount = 1
	assert.False(t, c.Exhausted())
}

func TestSession_ExpiredAndIdentity(t *testing.T) {
	now := time.Now()
	s := &Session{Token: "t", UserID: "u", Email: "e", Name: "n", Role: RoleAdmin, ExpiresAt: now.Add(time.Hour)}
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(time.Hour)))

	id := s.Identity()
	assert.True(t, id.IsAdmin())
	assert.Equal(t, "u", id.UserID)
}

func durPtr(d time.Duration) *time.Duration { return &d }
