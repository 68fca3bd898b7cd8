// Package config loads process-wide settings once at startup. Nothing here
// is mutated after Load returns; in particular the JWT secret is fixed for
// the lifetime of the process.
package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port         string
	MongoURI     string
	DatabaseName string

	JWTSecret []byte
	JWTExpiry time.Duration

	CORSOrigins []string
	Env         string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "5000"),
		MongoURI:     getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DatabaseName: getEnv("MONGODB_DATABASE_NAME", "sportmeet"),
		JWTSecret:    []byte(getEnv("JWT_SECRET", "dev-secret")),
		JWTExpiry:    getEnvDuration("JWT_EXPIRY", 7*24*time.Hour),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		Env:          getEnv("ENV", "development"),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
