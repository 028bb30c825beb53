package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode      Mode
	HTTPAddr  string
	PublicURL string // used to build join links on the QR page

	DBDriver string
	DBDSN    string

	SessionDriver string // sql|memory|redis
	SessionTTL    time.Duration
	SessionSecret string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Seeded once when the teachers table is empty. Rotate after first login.
	AdminEmail    string
	AdminPassword string

	EnableSignup bool
	BcryptCost   int
	CodeAttempts int

	CORSOriginsOnline  []string
	CORSOriginsOffline []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":3000"
	}
	return Config{
		Mode:               mode,
		HTTPAddr:           addr,
		PublicURL:          strings.TrimSuffix(envOr("PUBLIC_URL", "http://localhost"+addr), "/"),
		DBDriver:           envOr("DB_DRIVER", "sqlite"),
		DBDSN:              envOr("DB_DSN", ""),
		SessionDriver:      envOr("SESSION_DRIVER", "sql"),
		SessionTTL:         envDuration("SESSION_TTL", 24*time.Hour),
		SessionSecret:      envOr("SESSION_SECRET", "ifat-dev-session-secret"),
		RedisAddr:          envOr("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            envInt("REDIS_DB", 0),
		AdminEmail:         envOr("ADMIN_EMAIL", "admin@ri.edu.sg"),
		AdminPassword:      envOr("ADMIN_PASSWORD", "Password1"),
		EnableSignup:       envBool("ENABLE_SIGNUP", true),
		BcryptCost:         envInt("BCRYPT_COST", 12),
		CodeAttempts:       envInt("CODE_ATTEMPTS", 5),
		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://ifat.example.com"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000"),
	}
}

// SecureCookies reports whether the session cookie must carry the Secure flag.
func (c Config) SecureCookies() bool { return c.Mode == ModeOnline }

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envInt(k string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return n
}
func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(k)))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
