package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/abhisek/studyplan/internal/llm"
	"github.com/abhisek/studyplan/internal/schedule"
)

// Config is the full application configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// MongoURI and MongoDB name the backing database. Empty URI selects
	// the in-memory store, useful for local development and tests.
	MongoURI string
	MongoDB  string

	// JWTSecret signs access tokens.
	JWTSecret string

	LLM    llm.Config
	Policy schedule.Policy
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		Addr:      ":8080",
		MongoDB:   "studyplan",
		JWTSecret: "dev-secret-change-me",
		LLM:       llm.DefaultConfig(),
		Policy:    schedule.DefaultPolicy(),
	}
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func FromEnv() Config {
	cfg := Default()
	cfg.LLM = llm.ConfigFromEnv()

	if v := os.Getenv("STUDYPLAN_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("STUDYPLAN_MONGO_URI"); v != "" {
		cfg.MongoURI = v
	}
	if v := os.Getenv("STUDYPLAN_MONGO_DB"); v != "" {
		cfg.MongoDB = v
	}
	if v := os.Getenv("STUDYPLAN_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}

	setHour := func(env string, dst *int) {
		if v := os.Getenv(env); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 24 {
				*dst = n
			}
		}
	}
	setHour("STUDYPLAN_WEEKDAY_START_HOUR", &cfg.Policy.WeekdayStartHour)
	setHour("STUDYPLAN_WEEKDAY_END_HOUR", &cfg.Policy.WeekdayEndHour)
	setHour("STUDYPLAN_SATURDAY_START_HOUR", &cfg.Policy.SaturdayStartHour)
	setHour("STUDYPLAN_SATURDAY_END_HOUR", &cfg.Policy.SaturdayEndHour)

	return cfg
}

// Validate checks cross-field consistency.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret must not be empty")
	}
	if c.Policy.WeekdayStartHour >= c.Policy.WeekdayEndHour {
		return fmt.Errorf("weekday window is empty: %d-%d", c.Policy.WeekdayStartHour, c.Policy.WeekdayEndHour)
	}
	if c.Policy.SaturdayStartHour >= c.Policy.SaturdayEndHour {
		return fmt.Errorf("saturday window is empty: %d-%d", c.Policy.SaturdayStartHour, c.Policy.SaturdayEndHour)
	}
	// LLM configuration is not validated here: a missing API key degrades
	// generation to the rule-based planner instead of refusing to start.
	return nil
}
