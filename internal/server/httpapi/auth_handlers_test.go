package httpapi

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"testing"

	"github.com/mutix31/Sharebin/internal/common"
	"github.com/mutix31/Sharebin/internal/server/config"
	"github.com/mutix31/Sharebin/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t, nil)
	c := api.newClient(t)

	resp, body := c.json(http.MethodPost, "/api/auth/register", map[string]string{"name": "Alice", "email": "a@b.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	user := decode[models.UserPublic](t, body)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)

	resp, body = c.json(http.MethodPost, "/api/auth/register", map[string]string{"email": "a@b.com", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "user_exists", decode[errorResponse](t, body).Error)

	resp, _ = c.json(http.MethodPost, "/api/auth/login", map[string]string{"email": "a@b.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = c.do(http.MethodGet, "/api/auth/session", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = c.json(http.MethodPost, "/api/auth/login", map[string]string{"email": "A@B.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var cookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == common.SessionCookieName {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	resp, body = c.do(http.MethodGet, "/api/auth/session", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	id := decode[models.SessionIdentity](t, body)
	assert.Equal(t, user.ID, id.UserID)
	assert.Equal(t, "Alice", id.Name)

	resp, _ = c.do(http.MethodPost, "/api/auth/logout", nil, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = c.do(http.MethodGet, "/api/auth/session", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	sessions, err := api.store.List(t.Context(), "sessions/")
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRegister_ValidationError(t *testing.T) {
	api := newTestAPI(t, nil)
	c := api.newClient(t)

	resp, body := c.json(http.MethodPost, "/api/auth/register", map[string]string{"email": "nope", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decode[errorResponse](t, body)
	assert.Equal(t, "validation", e.Error)
	assert.Equal(t, "email", e.Field)

	resp, _ = c.do(http.MethodPost, "/api/auth/register", nil, "application/json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTamperedCookieIsAnonymous(t *testing.T) {
	api := newTestAPI(t, nil)
	c := api.newClient(t)

	u, err := url.Parse(api.srv.URL)
	require.NoError(t, err)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	jar.SetCookies(u, []*http.Cookie{{Name: common.SessionCookieName, Value: "not-a-jwt", Path: "/"}})
	c.http.Jar = jar

	resp, _ := c.do(http.MethodGet, "/api/auth/session", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	cleared := false
	for _, ck := range resp.Cookies() {
		if ck.Name == common.SessionCookieName && ck.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)

	// public routes still work
	resp, _ = c.do(http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginRateLimit(t *testing.T) {
	api := newTestAPI(t, func(cfg *config.Config) { cfg.LoginRateLimit = 2 })
	c := api.newClient(t)

	creds := map[string]string{"email": "x@y.com", "password": "whatever"}
	for i := 0; i < 2; i++ {
		resp, _ := c.json(http.MethodPost, "/api/auth/login", creds)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp, _ := c.json(http.MethodPost, "/api/auth/login", creds)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
