package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/mutix31/Sharebin/internal/flagx"
)

const envPrefix = "SHAREBIN_"

// parseEnv overlays values from SHAREBIN_* variables. When -env points at a
// dotenv file its entries are read first; real environment variables win
// over the file.
func parseEnv(config *Config) {
	_, envFile := flagx.SourceFiles(os.Args[1:])

	values := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		if err != nil {
			panic(err)
		}
		values = m
	}

	if err := applyEnv(config, values, os.LookupEnv); err != nil {
		panic(err)
	}
}

func applyEnv(config *Config, file map[string]string, lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		key := envPrefix + name
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}

	str := func(name string, dst *string) {
		if v, ok := get(name); ok && v != "" {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) error {
		v, ok := get(name)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = d
		return nil
	}

	str("HTTP_ADDR", &config.HTTPAddr)
	str("BASE_URL", &config.BaseURL)
	str("SECRET_KEY", &config.SecretKey)
	str("STORAGE", &config.Storage)
	str("DATABASE_DSN", &config.DatabaseDSN)
	str("S3_USER", &config.S3RootUser)
	str("S3_PASSWORD", &config.S3RootPassword)
	str("S3_BUCKET", &config.S3Bucket)
	str("S3_REGION", &config.S3Region)
	str("S3_ENDPOINT", &config.S3BaseEndpoint)

	if err := dur("SESSION_VALIDITY", &config.SessionValidityDuration); err != nil {
		return err
	}
	if err := dur("PRESIGN_VALIDITY", &config.PresignValidityDuration); err != nil {
		return err
	}

	if v, ok := get("LOGIN_RATE_LIMIT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sLOGIN_RATE_LIMIT: %w", envPrefix, err)
		}
		config.LoginRateLimit = n
	}

	return nil
}
