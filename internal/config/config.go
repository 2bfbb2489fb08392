package config

import (
	"fmt"
	"net/url"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Storage      StorageConfig      `yaml:"storage"`
	Inference    InferenceConfig    `yaml:"inference"`
	Notification NotificationConfig `yaml:"notification"`
	Datastore    DatastoreConfig    `yaml:"datastore"`
	Events       EventsConfig       `yaml:"events"`
	Spool        SpoolConfig        `yaml:"spool"`
	Logging      LoggingConfig      `yaml:"logging"`
	Performance  PerformanceConfig  `yaml:"performance"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type StorageConfig struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	UsePathStyle    bool   `yaml:"use_path_style"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// InferenceConfig configures the Gemini client. An empty APIKey puts the
// transcriber and summarizer in placeholder mode.
type InferenceConfig struct {
	APIKey             string `yaml:"api_key"`
	TranscriptionModel string `yaml:"transcription_model"`
	SummaryModel       string `yaml:"summary_model"`
}

type NotificationConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AppScheme string `yaml:"app_scheme"`
}

type DatastoreConfig struct {
	Driver   string `yaml:"driver"`
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
}

type EventsConfig struct {
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

type SpoolConfig struct {
	Dir    string `yaml:"dir"`
	Done   string `yaml:"done"`
	Failed string `yaml:"failed"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	DefaultPushEndpoint = "https://exp.host/--/api/v2/push/send"
)

func (c *Config) Validate() error {
	if c.Datastore.Driver == "" {
		c.Datastore.Driver = DriverPostgres
	}
	if c.Datastore.URL == "" {
		return fmt.Errorf("datastore.url is required")
	}
	switch c.Datastore.Driver {
	case DriverPostgres:
		if c.Datastore.Password == "" && !urlHasPassword(c.Datastore.URL) {
			return fmt.Errorf("datastore.password is required")
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("datastore.driver %q is not supported", c.Datastore.Driver)
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.Storage.Bucket == "" {
		c.Storage.Bucket = "meeting-audio"
	}
	if c.Storage.Region == "" {
		c.Storage.Region = "us-east-1"
	}
	if c.Inference.TranscriptionModel == "" {
		c.Inference.TranscriptionModel = "gemini-2.5-flash"
	}
	if c.Inference.SummaryModel == "" {
		c.Inference.SummaryModel = "gemini-2.5-flash"
	}
	if c.Notification.Endpoint == "" {
		c.Notification.Endpoint = DefaultPushEndpoint
	}
	if c.Notification.AppScheme == "" {
		c.Notification.AppScheme = "recpersonmettings"
	}
	if c.Events.Subject == "" {
		c.Events.Subject = "meetings.jobs"
	}
	if c.Spool.Dir != "" {
		if c.Spool.Done == "" {
			c.Spool.Done = c.Spool.Dir + "/done"
		}
		if c.Spool.Failed == "" {
			c.Spool.Failed = c.Spool.Dir + "/failed"
		}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}

func urlHasPassword(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return false
	}
	_, ok := u.User.Password()
	return ok
}
