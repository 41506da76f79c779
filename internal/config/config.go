package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Mode string

const (
	ModeDev  Mode = "dev"
	ModeProd Mode = "prod"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	BlobDriver   string // fs|minio
	BlobBasePath string // for fs

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	AuthSecret  string
	TokenTTL    time.Duration
	CORSOrigins []string

	MaxUploadMB     int
	ThrottleLimit   int // max in-flight requests
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func FromEnv() Config {
	mode := Mode(envOr("MODE", string(ModeDev)))
	return Config{
		Mode:     mode,
		HTTPAddr: envOr("HTTP_ADDR", ":8080"),

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    os.Getenv("DB_DSN"),

		BlobDriver:   envOr("BLOB_DRIVER", "fs"),
		BlobBasePath: envOr("BLOB_BASE_PATH", "./data/uploads"),

		MinIOEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinIOAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinIOSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinIOBucket:    envOr("MINIO_BUCKET", "deeds"),
		MinIOUseSSL:    envBool("MINIO_USE_SSL", false),

		AuthSecret:  envOr("AUTH_HMAC_SECRET", "dev_secret"),
		TokenTTL:    envDuration("TOKEN_TTL", 2*time.Hour),
		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000"),

		MaxUploadMB:     envInt("MAX_UPLOAD_MB", 25),
		ThrottleLimit:   envInt("THROTTLE_LIMIT", 200),
		RequestTimeout:  envDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

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
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
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
