// Package config loads process configuration: built-in defaults, then an
// optional YAML or JSON file, then AGENDA_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/pedromssoares/service-agenda-for-cars/internal/constants"
	"github.com/pedromssoares/service-agenda-for-cars/internal/notifier"
)

const EnvPrefix = "AGENDA_"

type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Notify   NotifyConfig   `koanf:"notify"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Backup   BackupConfig   `koanf:"backup"`
	Logging  LoggingConfig  `koanf:"logging"`
}

type DatabaseConfig struct {
	Driver string `koanf:"driver"` // sqlite or postgres; empty infers from path/dsn
	Path   string `koanf:"path"`
	DSN    string `koanf:"dsn"` // never with a password
}

type NotifyConfig struct {
	Sinks []string            `koanf:"sinks"`
	MQTT  notifier.MQTTConfig `koanf:"mqtt"`
}

type MetricsConfig struct {
	TextfilePath string `koanf:"textfile_path"`
}

type BackupConfig struct {
	Keep int `koanf:"keep"`
}

type LoggingConfig struct {
	Debug bool `koanf:"debug"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Database: DatabaseConfig{Path: constants.DefaultConfigPath},
		Notify: NotifyConfig{
			Sinks: []string{constants.SinkTray},
			MQTT:  notifier.MQTTConfig{TopicPrefix: constants.DefaultMQTTTopicPrefix, QoS: 1},
		},
		Backup: BackupConfig{Keep: constants.MaxBackups},
	}
}

// Load reads path (when it exists) and the environment on top of the defaults.
// A missing file is not an error; an unreadable or malformed one is. A .env
// file in the working directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	k := koanf.New(".")

	if path != "" {
		expanded, err := expandHome(path)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(expanded); err == nil {
			parser, err := parserFor(expanded)
			if err != nil {
				return nil, err
			}
			if err := k.Load(file.Provider(expanded), parser); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", expanded, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to access config %s: %w", expanded, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps AGENDA_NOTIFY__MQTT__BROKER to notify.mqtt.broker.
func envKey(s string) string {
	s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "", constants.DriverSQLite, constants.DriverPostgres:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	for _, s := range c.Notify.Sinks {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case constants.SinkTray, constants.SinkMQTT, constants.SinkStdout:
		default:
			return fmt.Errorf("unknown notification sink %q", s)
		}
	}
	if c.Notify.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt qos must be 0, 1 or 2, got %d", c.Notify.MQTT.QoS)
	}
	if c.Backup.Keep < 1 {
		return fmt.Errorf("backup.keep must be at least 1, got %d", c.Backup.Keep)
	}
	return nil
}

// Dir is the directory holding the config file, used for logs.
func Dir(path string) string {
	expanded, err := expandHome(path)
	if err != nil {
		expanded = path
	}
	return filepath.Dir(expanded)
}
