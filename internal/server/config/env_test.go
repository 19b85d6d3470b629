package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func TestApplyEnv_FileValues(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	err := applyEnv(cfg, map[string]string{
		"SHAREBIN_BASE_URL":         "https://sb.example",
		"SHAREBIN_STORAGE":          "s3",
		"SHAREBIN_SESSION_VALIDITY": "72h",
		"SHAREBIN_LOGIN_RATE_LIMIT": "4",
		"UNRELATED":                 "x",
	}, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "https://sb.example", cfg.BaseURL)
	assert.Equal(t, StorageS3, cfg.Storage)
	assert.Equal(t, 72*time.Hour, cfg.SessionValidityDuration)
	assert.Equal(t, 4, cfg.LoginRateLimit)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}

func TestApplyEnv_ProcessEnvWinsOverFile(t *testing.T) {
	cfg := &Config{}
	lookup := func(k string) (string, bool) {
		if k == "SHAREBIN_S3_BUCKET" {
			return "from-env", true
		}
		return "", false
	}

	require.NoError(t, applyEnv(cfg, map[string]string{"SHAREBIN_S3_BUCKET": "from-file"}, lookup))
	assert.Equal(t, "from-env", cfg.S3Bucket)
}

func TestApplyEnv_BadValues(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, applyEnv(cfg, map[string]string{"SHAREBIN_PRESIGN_VALIDITY": "soon"}, noEnv))
	assert.Error(t, applyEnv(cfg, map[string]string{"SHAREBIN_LOGIN_RATE_LIMIT": "many"}, noEnv))
}

func TestParseEnv_ReadsDotenvFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SHAREBIN_SECRET_KEY=from-dotenv\n"), 0o600))

	os.Args = []string{"testbin", "-env", path}

	cfg := &Config{}
	parseEnv(cfg)
	assert.Equal(t, "from-dotenv", cfg.SecretKey)
}

func TestParseEnv_MissingFilePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-env", filepath.Join(t.TempDir(), "missing.env")}
	require.Panics(t, func() { parseEnv(&Config{}) })
}
