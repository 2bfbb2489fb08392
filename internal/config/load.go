package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Addr, "LISTEN_ADDR")
	setString(&cfg.Storage.Bucket, "AUDIO_BUCKET")
	setString(&cfg.Storage.Region, "AWS_REGION")
	setString(&cfg.Storage.Endpoint, "S3_ENDPOINT")
	setString(&cfg.Storage.AccessKeyID, "AWS_ACCESS_KEY_ID")
	setString(&cfg.Storage.SecretAccessKey, "AWS_SECRET_ACCESS_KEY")
	setBool(&cfg.Storage.UsePathStyle, "S3_USE_PATH_STYLE")
	setString(&cfg.Inference.APIKey, "GEMINI_API_KEY")
	setString(&cfg.Notification.AppScheme, "APP_SCHEME")
	setString(&cfg.Notification.Endpoint, "PUSH_ENDPOINT")
	setString(&cfg.Datastore.Driver, "DATABASE_DRIVER")
	setString(&cfg.Datastore.URL, "DATABASE_URL")
	setString(&cfg.Datastore.Password, "DATABASE_PASSWORD")
	setString(&cfg.Events.NATSURL, "NATS_URL")
	setString(&cfg.Spool.Dir, "SPOOL_DIR")
	setString(&cfg.Logging.Level, "LOG_LEVEL")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
