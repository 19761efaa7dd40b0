package main

import (
	"log/slog"
	"os"

	"braces.dev/errtrace"
	"gopkg.in/yaml.v3"

	"github.com/ghettovoice/uribuilder/internal/errorutil"
	"github.com/ghettovoice/uribuilder/internal/log"
	"github.com/ghettovoice/uribuilder/uri"
)

type config struct {
	QueryParamMode uri.QueryParamMode `yaml:"query_param_mode"`
	Encode         bool               `yaml:"encode"`
	EncodeSlash    bool               `yaml:"encode_slash"`
	// StrictHost rejects built URIs whose registered host is not a DNS name.
	StrictHost bool      `yaml:"strict_host"`
	Log        logConfig `yaml:"log"`
}

type logConfig struct {
	Format log.Format `yaml:"format"`
	Level  string     `yaml:"level"`
}

func defaultConfig() config {
	return config{
		QueryParamMode: uri.MultiPairs,
		Encode:         true,
		EncodeSlash:    true,
		Log: logConfig{
			Format: log.FormatConsole,
			Level:  "warn",
		},
	}
}

// readConfig reads the YAML file at path over the defaults.
// Empty path gives the defaults.
func readConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errtrace.Wrap(err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errtrace.Wrap(errorutil.NewInvalidArgumentError("config %q: %v", path, err))
	}
	return cfg, nil
}

func (c config) level() (slog.Level, error) { return errtrace.Wrap2(log.ParseLevel(c.Log.Level)) }
