// Package config resolves the deployment environment profile for the
// database service.
//
// Resolution happens once at process startup. The resulting Profile is an
// immutable value injected into the connection provider and the archive
// writer; nothing reads process environment after startup.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppEnv identifies the deployment environment.
type AppEnv string

const (
	EnvLocal   AppEnv = "local"
	EnvDev     AppEnv = "dev"
	EnvStaging AppEnv = "staging"
	EnvProd    AppEnv = "prod"
)

// ParseAppEnv validates an environment indicator against the closed set.
func ParseAppEnv(s string) (AppEnv, error) {
	switch AppEnv(s) {
	case EnvLocal, EnvDev, EnvStaging, EnvProd:
		return AppEnv(s), nil
	}
	return "", fmt.Errorf("unknown APP_ENV %q (valid: local, dev, staging, prod)", s)
}

// Profile is the resolved, immutable process configuration.
//
// Path policy: everything lives under <DatabasesDir>/compta. The prod
// environment gets its own SQLite file and archive root; local, dev and
// staging share the dev ones.
type Profile struct {
	Env          AppEnv
	DatabasesDir string
	SQLitePath   string
	ArchiveRoot  string
	ListenAddr   string
	LogLevel     slog.Level
	LogFormat    string // "text" | "json"
}

// ConfigurationError indicates the process cannot start with the given
// environment. It is fatal and never converted to a per-request response.
type ConfigurationError struct {
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("configuration: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// fileOverlay is the optional YAML configuration file. Environment
// variables take precedence over file values.
type fileOverlay struct {
	AppEnv       string `yaml:"app_env"`
	DatabasesDir string `yaml:"databases_dir"`
	ListenAddr   string `yaml:"listen_addr"`
	LogFormat    string `yaml:"log_format"`
}

// Resolve builds the environment profile from process environment, with an
// optional YAML file overlay. configFile may be empty; the COMPTA_CONFIG
// variable is consulted as a fallback location.
//
// Required: DATABASES_DIR (from env or file). APP_ENV defaults to local.
func Resolve(getenv func(string) string, configFile string) (*Profile, error) {
	overlay := fileOverlay{}
	if configFile == "" {
		configFile = getenv("COMPTA_CONFIG")
	}
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, &ConfigurationError{Message: fmt.Sprintf("read config file %s", configFile), Err: err}
		}
		if err := yaml.Unmarshal(data, &overlay); err != nil {
			return nil, &ConfigurationError{Message: fmt.Sprintf("parse config file %s", configFile), Err: err}
		}
	}

	envName := firstNonEmpty(getenv("APP_ENV"), overlay.AppEnv, string(EnvLocal))
	env, err := ParseAppEnv(envName)
	if err != nil {
		return nil, &ConfigurationError{Message: "invalid environment", Err: err}
	}

	dir := firstNonEmpty(getenv("DATABASES_DIR"), overlay.DatabasesDir)
	if dir == "" {
		return nil, &ConfigurationError{Message: "DATABASES_DIR is not set"}
	}

	variant := "dev"
	level := slog.LevelDebug
	if env == EnvProd {
		variant = "prod"
		level = slog.LevelInfo
	}

	base := filepath.Join(dir, "compta")
	return &Profile{
		Env:          env,
		DatabasesDir: dir,
		SQLitePath:   filepath.Join(base, "SQL", variant+".db"),
		ArchiveRoot:  filepath.Join(base, "blob", variant),
		ListenAddr:   firstNonEmpty(getenv("LISTEN_ADDR"), overlay.ListenAddr, ":8000"),
		LogLevel:     level,
		LogFormat:    firstNonEmpty(getenv("LOG_FORMAT"), overlay.LogFormat, "text"),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
