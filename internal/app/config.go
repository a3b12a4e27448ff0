package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModulesPath string // source manifests (.hcl)

	Site      string   // site session to enable sources for
	Mimetypes []string // content-type filter for the picker query; nil means unfiltered

	EventsURL       string // socket.io hub publishing session events; empty disables
	HealthcheckPort int
	LogFormat       string
	LogLevel        string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModulesPath == "" {
		return nil, errors.New("ModulesPath is a required configuration field and cannot be empty")
	}
	if cfg.Site == "" {
		return nil, errors.New("Site is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
