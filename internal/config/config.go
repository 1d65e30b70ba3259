// Package config resolves server settings from flags, the environment and an
// optional .env file. Flags override the environment, which overrides defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Item store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config holds all server settings.
type Config struct {
	Addr          string
	DataDir       string
	Store         string
	DBPath        string
	RedisAddr     string
	RedisKey      string
	Secret        string
	LogPath       string
	MaxUploadMB   int64
	SecureCookies bool
}

// MaxUploadBytes returns the multipart request limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

const usage = `Usage: plasticwallet [flags]

Flags:
  -a, -addr <host:port>    listen address (default: :5000, env PW_ADDR)
  -d, -data <dir>          directory for uploads and QR images (default: static, env PW_DATA_DIR)
  -s, -store <backend>     item store: memory, sqlite or redis (default: memory, env PW_STORE)
      -db <path>           SQLite database path for -store sqlite (default: plasticwallet.sqlite3, env PW_DB)
      -redis <host:port>   Redis address for -store redis (default: localhost:6379, env PW_REDIS_ADDR)
      -redis-key <key>     Redis list key (default: plasticwallet:items, env PW_REDIS_KEY)
      -secret <string>     session signing secret (env SESSION_SECRET)
      -max-upload <MB>     maximum upload request size (default: 32, env PW_MAX_UPLOAD_MB)
      -secure-cookies      mark cookies HTTPS-only (env PW_SECURE_COOKIES)
  -l, -log <path>          log file path (default: no file, stdout/stderr only, env PW_LOG)
  -h, -help                show this help and exit

A .env file in the working directory (or the file named by PW_ENV_FILE) is
loaded before the environment is read. Existing variables are not overridden.
`

// Load parses args (without the program name). It returns flag.ErrHelp when
// help was requested; usage has then been written to out.
func Load(args []string, out io.Writer) (*Config, error) {
	if err := loadEnvFile(getEnv("PW_ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	maxUpload, err := strconv.ParseInt(getEnv("PW_MAX_UPLOAD_MB", "32"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing PW_MAX_UPLOAD_MB: %w", err)
	}
	secure, _ := strconv.ParseBool(getEnv("PW_SECURE_COOKIES", "false"))

	cfg := &Config{}
	fs := flag.NewFlagSet("plasticwallet", flag.ContinueOnError)
	fs.SetOutput(out)

	addr := getEnv("PW_ADDR", ":5000")
	fs.StringVar(&cfg.Addr, "addr", addr, "")
	fs.StringVar(&cfg.Addr, "a", addr, "")

	dataDir := getEnv("PW_DATA_DIR", "static")
	fs.StringVar(&cfg.DataDir, "data", dataDir, "")
	fs.StringVar(&cfg.DataDir, "d", dataDir, "")

	backend := getEnv("PW_STORE", StoreMemory)
	fs.StringVar(&cfg.Store, "store", backend, "")
	fs.StringVar(&cfg.Store, "s", backend, "")

	fs.StringVar(&cfg.DBPath, "db", getEnv("PW_DB", "plasticwallet.sqlite3"), "")
	fs.StringVar(&cfg.RedisAddr, "redis", getEnv("PW_REDIS_ADDR", "localhost:6379"), "")
	fs.StringVar(&cfg.RedisKey, "redis-key", getEnv("PW_REDIS_KEY", "plasticwallet:items"), "")
	fs.StringVar(&cfg.Secret, "secret", os.Getenv("SESSION_SECRET"), "")
	fs.Int64Var(&cfg.MaxUploadMB, "max-upload", maxUpload, "")
	fs.BoolVar(&cfg.SecureCookies, "secure-cookies", secure, "")

	logPath := os.Getenv("PW_LOG")
	fs.StringVar(&cfg.LogPath, "log", logPath, "")
	fs.StringVar(&cfg.LogPath, "l", logPath, "")

	fs.Usage = func() { fmt.Fprint(out, usage) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite, StoreRedis:
	default:
		return fmt.Errorf("unknown store %q (want memory, sqlite or redis)", c.Store)
	}
	if c.MaxUploadMB <= 0 {
		return errors.New("max upload size must be positive")
	}
	if c.DataDir == "" {
		return errors.New("data directory must not be empty")
	}
	return nil
}

func loadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
