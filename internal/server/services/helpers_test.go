package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mutix31/Sharebin/internal/logging"
	"github.com/mutix31/Sharebin/internal/server/config"
	"github.com/mutix31/Sharebin/internal/server/models"
	"github.com/mutix31/Sharebin/internal/server/objectstore"
	"github.com/mutix31/Sharebin/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// faultyStore wraps a MemoryStore and fails chosen operations on keys with a
// given prefix.
type faultyStore struct {
	*objectstore.MemoryStore

	mu          sync.Mutex
	failPut     string
	failGet     string
	failDelete  string
	presignURL  string
	presignErr  error
	presignedAt []string
}

var errInjected = errors.New("injected store failure")

func (f *faultyStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	f.mu.Lock()
	fail := f.failPut != "" && strings.HasPrefix(key, f.failPut)
	f.mu.Unlock()
	if fail {
		return errInjected
	}
	return f.MemoryStore.Put(ctx, key, body, contentType)
}

func (f *faultyStore) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	fail := f.failGet != "" && strings.HasPrefix(key, f.failGet)
	f.mu.Unlock()
	if fail {
		return nil, errInjected
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *faultyStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	fail := f.failDelete != "" && strings.HasPrefix(key, f.failDelete)
	f.mu.Unlock()
	if fail {
		return errInjected
	}
	return f.MemoryStore.Delete(ctx, key)
}

func (f *faultyStore) setFailPut(prefix string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failPut = prefix
}

// presigningStore adds Presigner to faultyStore.
type presigningStore struct {
	*faultyStore
}

func (p presigningStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.presignedAt = append(p.presignedAt, key)
	if p.presignErr != nil {
		return "", p.presignErr
	}
	return p.presignURL + key + "?ttl=" + ttl.String(), nil
}

type testEnv struct {
	store     *faultyStore
	repos     *repomanager.ObjectStoreManager
	cfg       *config.Config
	clock     *fakeClock
	sessions  *SessionService
	users     *UserService
	artifacts *ArtifactService
	shortURLs *ShortURLService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithStore(t, &faultyStore{MemoryStore: objectstore.NewMemoryStore()}, nil)
}

func newTestEnvWithStore(t *testing.T, fs *faultyStore, wrap func(*faultyStore) objectstore.Store) *testEnv {
	t.Helper()

	var store objectstore.Store = fs
	if wrap != nil {
		store = wrap(fs)
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BaseURL = "https://share.example/"

	repos, err := repomanager.NewObjectStoreManager(store, logging.Discard())
	require.NoError(t, err)

	clock := newFakeClock()
	sessions := NewSessionService(repos, cfg, logging.Discard())
	sessions.now = clock.Now
	users := NewUserService(repos, sessions, logging.Discard())
	users.now = clock.Now
	artifacts := NewArtifactService(repos, cfg, logging.Discard())
	artifacts.now = clock.Now
	shortURLs := NewShortURLService(repos, cfg, logging.Discard())
	shortURLs.now = clock.Now

	return &testEnv{
		store:     fs,
		repos:     repos,
		cfg:       cfg,
		clock:     clock,
		sessions:  sessions,
		users:     users,
		artifacts: artifacts,
		shortURLs: shortURLs,
	}
}

// signUp registers a user and logs them in.
func (e *testEnv) signUp(t *testing.T, name, email string) models.SessionIdentity {
	t.Helper()
	ctx := context.Background()

	_, err := e.users.Register(ctx, name, email, "password1")
	require.NoError(t, err)
	session, err := e.sessions.Login(ctx, email, "password1")
	require.NoError(t, err)
	return session.Identity()
}

func (e *testEnv) admin(t *testing.T) models.SessionIdentity {
	t.Helper()
	ctx := context.Background()

	_, _, err := e.users.ProvisionAdmin(ctx, "Root", "root@example.com", "password1")
	require.NoError(t, err)
	session, err := e.sessions.Login(ctx, "root@example.com", "password1")
	require.NoError(t, err)
	return session.Identity()
}

func ptr[T any](v T) *T { return &v }
