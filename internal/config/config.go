// Package config loads runtime settings for both the terminal client and the reference server.
// Values come from the environment, optionally seeded from a .env file, with defaults suitable
// for local development.
package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

var (
	LogLevel         string
	ServerRunAddress string
	DatabaseURI      string
	BaseURL          string
	SessionPath      string
	MediaDir         string
	TokenSecret      string
	StaffUsername    string
	StaffPassword    string
	RequestTimeout   time.Duration
)

const defaultRequestTimeout = 10 * time.Second

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values")
	}

	LogLevel = getenv("LOG_LEVEL", "info")
	ServerRunAddress = getenv("SERVER_RUN_ADDRESS", "0.0.0.0:8000")
	DatabaseURI = getenv("DATABASE_URI", "host=db user=postgres password=password dbname=appdownloader sslmode=disable")
	BaseURL = getenv("BASE_URL", "http://127.0.0.1:8000/")
	SessionPath = getenv("SESSION_PATH", "session.db")
	MediaDir = getenv("MEDIA_DIR", "media")
	TokenSecret = getenv("TOKEN_SECRET", "supersecretkey")
	StaffUsername = os.Getenv("STAFF_USERNAME")
	StaffPassword = os.Getenv("STAFF_PASSWORD")

	RequestTimeout = defaultRequestTimeout
	if raw := os.Getenv("REQUEST_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			log.Printf("Invalid REQUEST_TIMEOUT %q, using %s", raw, defaultRequestTimeout)
		} else {
			RequestTimeout = d
		}
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
