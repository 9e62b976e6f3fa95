package cmd

import (
	"fmt"
	"strings"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AmqpURL      string
	AmqpExchange string

	OtpTTLMinutes  int
	OtpMaxAttempts int

	InboxCapacity int

	Pickers []string
	Packers []string
	Riders  []string

	SweepSchedule string
}

// DSN builds the postgres connection string. An empty host means the
// application runs on the in-memory store.
func (c Config) DSN() string {
	if c.DBHost == "" {
		return ""
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SplitPool parses a comma-separated worker pool variable.
func SplitPool(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	pool := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			pool = append(pool, trimmed)
		}
	}
	return pool
}
