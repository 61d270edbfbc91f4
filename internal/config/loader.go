package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var DefaultSignatures = []string{"Neutrino Mediathek", "Neutrino Mediathek - CST"}

var DefaultDebugHosts = []string{".debug.", ".deb."}

// Loader reads API settings from a YAML file
type Loader struct {
	path     string
	validate *validator.Validate
}

func NewLoader(path string) *Loader {
	return &Loader{
		path:     path,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Load reads and validates the settings file. A missing file yields the
// defaults
func (l *Loader) Load() (*Settings, error) {
	settings := &Settings{}

	data, err := os.ReadFile(l.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Info("Settings file not found, using defaults", "path", l.path)
	case err != nil:
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	default:
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		slog.Info("Loaded settings", "path", l.path)
	}

	setDefaults(settings)

	if err := l.validate.Struct(settings); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", l.path, err)
	}

	return settings, nil
}

func Defaults() *Settings {
	settings := &Settings{}
	setDefaults(settings)
	return settings
}

func setDefaults(s *Settings) {
	if s.API.Name == "" {
		s.API.Name = "mt-api"
	}
	if s.API.Version == "" {
		s.API.Version = "0.5.0"
	}
	if len(s.Signatures) == 0 {
		s.Signatures = append([]string(nil), DefaultSignatures...)
	}
	if s.DebugHosts == nil {
		s.DebugHosts = append([]string(nil), DefaultDebugHosts...)
	}
	if s.Dialect == "" {
		s.Dialect = "sqlite"
	}
	if s.ListCap == 0 {
		s.ListCap = 50
	}
	if s.QueryTimeout == 0 {
		s.QueryTimeout = 10
	}
	if s.Breaker.Failures == 0 {
		s.Breaker.Failures = 5
	}
	if s.Breaker.Cooldown == 0 {
		s.Breaker.Cooldown = 30
	}
}
