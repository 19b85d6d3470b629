package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/mutix31/Sharebin/internal/logging"
	"github.com/mutix31/Sharebin/internal/server/config"
	"github.com/mutix31/Sharebin/internal/server/objectstore"
	"github.com/mutix31/Sharebin/internal/server/repositories/repomanager"
	"github.com/mutix31/Sharebin/internal/server/services"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	srv   *httptest.Server
	users *services.UserService
	store *objectstore.MemoryStore
}

func newTestAPI(t *testing.T, tweak func(*config.Config)) *testAPI {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	if tweak != nil {
		tweak(cfg)
	}

	store := objectstore.NewMemoryStore()
	repos, err := repomanager.NewObjectStoreManager(store, logging.Discard())
	require.NoError(t, err)

	ss := services.NewSessionService(repos, cfg, logging.Discard())
	us := services.NewUserService(repos, ss, logging.Discard())
	as := services.NewArtifactService(repos, cfg, logging.Discard())
	su := services.NewShortURLService(repos, cfg, logging.Discard())

	h := NewHandler(cfg, us, ss, as, su, logging.Discard())
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)

	return &testAPI{srv: srv, users: us, store: store}
}

// client is a cookie-keeping API client that does not follow redirects.
type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func (a *testAPI) newClient(t *testing.T) *client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{
		t:    t,
		base: a.srv.URL,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *client) do(method, path string, body io.Reader, contentType string) (*http.Response, []byte) {
	c.t.Helper()
	req, err := http.NewRequest(method, c.base+path, body)
	require.NoError(c.t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, b
}

func (c *client) json(method, path string, v any) (*http.Response, []byte) {
	c.t.Helper()
	var body io.Reader
	if v != nil {
		b, err := json.Marshal(v)
		require.NoError(c.t, err)
		body = bytes.NewReader(b)
	}
	return c.do(method, path, body, "application/json")
}

func (c *client) upload(name, content string, fields map[string]string) (*http.Response, []byte) {
	c.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(c.t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(c.t, err)
	for k, v := range fields {
		require.NoError(c.t, mw.WriteField(k, v))
	}
	require.NoError(c.t, mw.Close())
	return c.do(http.MethodPost, "/api/files", &buf, mw.FormDataContentType())
}

// signUp registers and logs in, leaving the session cookie in the jar.
func (c *client) signUp(name, email string) {
	c.t.Helper()
	resp, _ := c.json(http.MethodPost, "/api/auth/register", map[string]string{"name": name, "email": email, "password": "password1"})
	require.Equal(c.t, http.StatusCreated, resp.StatusCode)
	resp, _ = c.json(http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": "password1"})
	require.Equal(c.t, http.StatusOK, resp.StatusCode)
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

// requestURI strips scheme and host from an absolute link.
func requestURI(t *testing.T, link string) string {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.RequestURI()
}
