package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultAPIBase = "http://localhost:5000/api"

type Config struct {
	APIBase              string        `yaml:"api_base"`
	RequestTimeout       time.Duration `yaml:"request_timeout"`
	DesktopNotifications bool          `yaml:"desktop_notifications"`
	LogFile              string        `yaml:"log_file"`
	LogLevel             string        `yaml:"log_level"`
	Server               ServerConfig  `yaml:"server"`
}

// ServerConfig configures the reference store started by `taskpad serve`.
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	DBPath         string        `yaml:"db_path"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

func Default() Config {
	return Config{
		APIBase:              DefaultAPIBase,
		RequestTimeout:       10 * time.Second,
		DesktopNotifications: false,
		LogFile:              "",
		LogLevel:             "info",
		Server: ServerConfig{
			Addr:           ":5000",
			DBPath:         "taskpad.db",
			RequestTimeout: 5 * time.Second,
		},
	}
}

// LoadFile overlays the YAML file at path onto base. A missing file is not
// an error.
func LoadFile(path string, base Config) (Config, error) {
	cfg := base
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(trimmed)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return base, fmt.Errorf("config: read %s: %w", trimmed, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return base, fmt.Errorf("config: parse %s: %w", trimmed, err)
	}
	return cfg, nil
}

func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("TASKPAD_API_BASE"); ok {
		cfg.APIBase = v
	}
	if v, ok := getEnvDuration("TASKPAD_REQUEST_TIMEOUT"); ok && v > 0 {
		cfg.RequestTimeout = v
	}
	if v, ok := getEnvBool("TASKPAD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvString("TASKPAD_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("TASKPAD_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("TASKPAD_SERVER_ADDR"); ok {
		cfg.Server.Addr = v
	}
	if v, ok := getEnvString("TASKPAD_DB_PATH"); ok {
		cfg.Server.DBPath = v
	}
	if v, ok := getEnvInt("TASKPAD_SERVER_TIMEOUT_SECONDS"); ok && v > 0 {
		cfg.Server.RequestTimeout = time.Duration(v) * time.Second
	}
	return cfg
}

// Load resolves defaults, then the file at path, then the environment.
func Load(path string) (Config, error) {
	cfg, err := LoadFile(path, Default())
	if err != nil {
		return Config{}, err
	}
	return FromEnv(cfg), nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvDuration(name string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
