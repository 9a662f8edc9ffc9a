// Package config loads worker configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Store selection
	StoreBackend string
	ProjectID    string
	DatabaseURL  string

	// Batch processing
	ProcessInterval  time.Duration
	RunOnStart       bool
	WorkerCount      int
	PageSize         int
	ReminderLeadDays int

	// AMQP (optional; empty URL disables publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Categorization (optional; empty API key disables suggestions)
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIModel       string
	CategoryCacheSize int
}

func Load() *Config {
	cfg := &Config{
		StoreBackend: getEnv("STORE_BACKEND", "memory"),
		ProjectID:    getEnv("GOOGLE_CLOUD_PROJECT", ""),
		DatabaseURL:  getEnv("DATABASE_URL", ""),

		ProcessInterval:  getEnvDuration("PROCESS_INTERVAL", 24*time.Hour),
		RunOnStart:       getEnvBool("RUN_ON_START", true),
		WorkerCount:      getEnvInt("WORKER_COUNT", 4),
		PageSize:         getEnvInt("PAGE_SIZE", 100),
		ReminderLeadDays: getEnvInt("REMINDER_LEAD_DAYS", 3),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "pennywise"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "batch_runs"),

		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		CategoryCacheSize: getEnvInt("CATEGORY_CACHE_SIZE", 512),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"memory", "firestore", "postgres"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.StoreBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid store backend '%s': must be one of %v", c.StoreBackend, validBackends))
	}

	if c.StoreBackend == "firestore" && c.ProjectID == "" {
		errors = append(errors, "GOOGLE_CLOUD_PROJECT is required when using firestore backend")
	}
	if c.StoreBackend == "postgres" && c.DatabaseURL == "" {
		errors = append(errors, "DATABASE_URL is required when using postgres backend")
	}

	if c.ProcessInterval < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid process interval %v: must be at least 1 minute", c.ProcessInterval))
	} else if c.ProcessInterval > 7*24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid process interval %v: must be at most 7 days", c.ProcessInterval))
	}

	if c.WorkerCount < 1 || c.WorkerCount > 64 {
		errors = append(errors, fmt.Sprintf("invalid worker count %d: must be between 1 and 64", c.WorkerCount))
	}

	if c.PageSize < 1 || c.PageSize > 1000 {
		errors = append(errors, fmt.Sprintf("invalid page size %d: must be between 1 and 1000", c.PageSize))
	}

	if c.ReminderLeadDays < 0 || c.ReminderLeadDays > 30 {
		errors = append(errors, fmt.Sprintf("invalid reminder lead days %d: must be between 0 and 30", c.ReminderLeadDays))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.CategoryCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid category cache size %d: must be at least 1", c.CategoryCacheSize))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
