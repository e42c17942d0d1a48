// Package config loads application configuration from defaults, an optional
// YAML file, and SPLITTAB_-prefixed environment variables, in that order of
// precedence (later sources win).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Application struct {
	Addr     string   `koanf:"addr"`
	Database Database `koanf:"db"`
	Auth     Auth     `koanf:"auth"`
	Log      Log      `koanf:"log"`
}

type Database struct {
	Path string `koanf:"path"`
}

type Auth struct {
	// JWTSecret signs session tokens. Must be set in production;
	// the default exists only so local development works out of the box.
	JWTSecret string `koanf:"jwtsecret"`
	// TokenTTLHours is how long issued tokens remain valid.
	TokenTTLHours int `koanf:"tokenttlhours"`
}

type Log struct {
	Level string `koanf:"level"`
}

// TokenTTL returns the configured token lifetime as a duration.
func (a Auth) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// Load reads configuration from the given YAML path (missing file is fine),
// layered over defaults and under environment variables.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Addr: ":8080",
		Database: Database{
			Path: "./data/splittab.db",
		},
		Auth: Auth{
			JWTSecret:     "dev-secret-change-me",
			TokenTTLHours: 24,
		},
		Log: Log{
			Level: "info",
		},
	}, "koanf"), nil)
	if err != nil {
		return Application{}, fmt.Errorf("failed to load config defaults: %w", err)
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			slog.Info("Config file not found, using defaults and environment variables", "path", path)
		} else {
			return Application{}, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		slog.Info("Loaded configuration from file", "path", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "SPLITTAB_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "SPLITTAB_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		return Application{}, fmt.Errorf("failed to load config from environment: %w", err)
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return app, nil
}
