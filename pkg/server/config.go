package server

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/matzehuels/mazer/pkg/errors"
)

// Config holds server configuration loaded from the environment.
type Config struct {
	Addr         string
	RedisURL     string
	CachePrefix  string
	MongoURI     string
	MongoDB      string
	StoreDir     string
	CORSOrigins  []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	SnapshotTTL  time.Duration
}

// DefaultConfig returns the configuration used when no variables are set:
// an in-memory store, no shared cache and CORS open to every origin.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		MongoDB:      "mazer",
		CORSOrigins:  []string{"*"},
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		SnapshotTTL:  24 * time.Hour,
	}
}

// LoadConfig reads .env style files (missing files are skipped) and then
// the MAZER_* variables. Variables already in the environment win over
// file values.
func LoadConfig(files ...string) (Config, error) {
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "load env files")
		}
	}

	def := DefaultConfig()
	cfg := Config{
		Addr:         getEnv("MAZER_ADDR", def.Addr),
		RedisURL:     os.Getenv("MAZER_REDIS_URL"),
		CachePrefix:  os.Getenv("MAZER_CACHE_PREFIX"),
		MongoURI:     os.Getenv("MAZER_MONGO_URI"),
		MongoDB:      getEnv("MAZER_MONGO_DB", def.MongoDB),
		StoreDir:     os.Getenv("MAZER_STORE_DIR"),
		CORSOrigins:  splitList(getEnv("MAZER_CORS_ORIGINS", "*")),
		ReadTimeout:  parseDuration(os.Getenv("MAZER_READ_TIMEOUT"), def.ReadTimeout),
		WriteTimeout: parseDuration(os.Getenv("MAZER_WRITE_TIMEOUT"), def.WriteTimeout),
		SnapshotTTL:  parseDuration(os.Getenv("MAZER_SNAPSHOT_TTL"), def.SnapshotTTL),
	}
	return cfg, cfg.Validate()
}

// Validate checks backing-service URLs.
func (c Config) Validate() error {
	if c.RedisURL != "" {
		if err := errors.ValidateEndpoint(c.RedisURL, "redis", "rediss"); err != nil {
			return err
		}
	}
	if c.MongoURI != "" {
		if err := errors.ValidateEndpoint(c.MongoURI, "mongodb", "mongodb+srv"); err != nil {
			return err
		}
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
