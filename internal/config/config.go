// Package config holds the settings threaded through a pxologs run.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/printx/pxologs/internal/loggroup"
	"github.com/printx/pxologs/internal/logservice"
)

// envPrefix is prepended to every environment variable name, e.g. PXOLOGS_AWS_CLI.
const envPrefix = "pxologs"

// Transport names.
const (
	TransportSDK = "sdk"
	TransportCLI = "cli"
)

// Env holds configuration read from environment variables.
type Env struct {
	AWSCLI    string `envconfig:"AWS_CLI" default:"aws"`
	Timezone  string `envconfig:"TIMEZONE"`
	SentryDSN string `envconfig:"SENTRY_DSN"`
	Transport string `envconfig:"TRANSPORT" default:"sdk"`
}

// LoadEnv loads configuration from environment variables.
func LoadEnv() (*Env, error) {
	var cfg Env
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location returns the time zone used to render timestamps.
// An empty Timezone means the local zone.
func (e *Env) Location() (*time.Location, error) {
	if e.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", e.Timezone, err)
	}
	return loc, nil
}

// Options is the resolved configuration for a single run.
type Options struct {
	Env       string
	Profile   string
	Region    string
	Locale    string
	OutputDir string
	Location  *time.Location
	// FailOnError turns any failed target into a non-zero exit status.
	FailOnError bool
}

// ResolvedLocale returns the explicit locale, or the one derived from the environment and region.
func (o Options) ResolvedLocale() string {
	if o.Locale != "" {
		return o.Locale
	}
	return loggroup.LocaleFor(o.Env, o.Region)
}

// Settings returns the log service settings for this run.
func (o Options) Settings() logservice.Settings {
	return logservice.Settings{Profile: o.Profile, Region: o.Region}
}
