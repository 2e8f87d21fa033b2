// Package config loads ZeroDB client settings with koanf from built-in
// defaults, an optional YAML file and ZERODB_* environment variables, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix scopes the environment variables read by Load.
	EnvPrefix = "ZERODB_"
	// EnvConfigFile points Load at a YAML file.
	EnvConfigFile = EnvPrefix + "CONFIG_FILE"
	// DefaultConfigFile is read when present and no other file is named.
	DefaultConfigFile = "zerodb.yaml"
)

// envAliases maps the documented short variable names onto config keys.
// Any other ZERODB_A_B variable maps to a.b.
var envAliases = map[string]string{
	"ZERODB_API_KEY":              "client.apikey",
	"ZERODB_JWT_TOKEN":            "client.jwttoken",
	"ZERODB_BASE_URL":             "client.baseurl",
	"ZERODB_TIMEOUT":              "client.timeout",
	"ZERODB_RETRY_ATTEMPTS":       "client.retry.attempts",
	"ZERODB_RETRY_DELAY":          "client.retry.delay",
	"ZERODB_EMBEDDING_DIMENSIONS": "client.embedding.dimensions",
	"ZERODB_LOG_LEVEL":            "log.level",
}

// LoadOption customizes where Load reads from.
type LoadOption func(*loader)

type loader struct {
	file    string
	yaml    []byte
	environ func() []string
}

// WithFile reads the given YAML file; it must exist.
func WithFile(path string) LoadOption {
	return func(l *loader) {
		l.file = path
	}
}

// WithYAML layers an in-memory YAML document over the file source.
func WithYAML(data []byte) LoadOption {
	return func(l *loader) {
		l.yaml = data
	}
}

// WithEnviron replaces os.Environ as the environment source.
func WithEnviron(fn func() []string) LoadOption {
	return func(l *loader) {
		l.environ = fn
	}
}

// Load assembles and validates the configuration.
func Load(opts ...LoadOption) (*Config, error) {
	l := &loader{environ: os.Environ}
	for _, opt := range opts {
		opt(l)
	}

	k := koanf.New(".")
	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := l.loadFile(k); err != nil {
		return nil, err
	}

	if len(l.yaml) > 0 {
		if err := k.Load(rawbytes.Provider(l.yaml), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse yaml config: %w", err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnv,
		EnvironFunc:   l.environ,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.k = k

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadFile resolves the file source: explicit path, then ZERODB_CONFIG_FILE,
// then zerodb.yaml in the working directory if it exists.
func (l *loader) loadFile(k *koanf.Koanf) error {
	path, required := l.file, l.file != ""
	if path == "" {
		path, required = lookupEnv(l.environ(), EnvConfigFile)
		if !required {
			path = DefaultConfigFile
		}
	}

	if _, err := os.Stat(path); err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return nil
}

func lookupEnv(environ []string, key string) (string, bool) {
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if ok && name == key && value != "" {
			return value, true
		}
	}
	return "", false
}

// transformEnv converts ZERODB_CLIENT_RETRY_ATTEMPTS to client.retry.attempts.
func transformEnv(k, v string) (string, any) {
	if k == EnvConfigFile {
		return "", nil
	}
	if alias, ok := envAliases[k]; ok {
		return alias, v
	}
	key := strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
	return strings.ReplaceAll(key, "_", "."), v
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"client.baseurl":              "https://api.ainative.studio",
		"client.timeout":              30 * time.Second,
		"client.useragent":            "zerodb-go",
		"client.retry.attempts":       3,
		"client.retry.delay":          time.Second,
		"client.ratelimit.rps":        0.0,
		"client.ratelimit.burst":      1,
		"client.embedding.dimensions": 1536,

		"log.level":  "info",
		"log.pretty": false,

		"observability.enabled":          false,
		"observability.service.name":     "zerodb-client",
		"observability.environment":      "development",
		"observability.trace.enabled":    true,
		"observability.trace.endpoint":   "stdout",
		"observability.trace.protocol":   "http",
		"observability.trace.samplerate": 1.0,
		"observability.metrics.enabled":  true,
		"observability.metrics.endpoint": "stdout",
		"observability.metrics.protocol": "http",
		"observability.metrics.interval": 60 * time.Second,
	}
	return k.Load(confmap.Provider(defaults, "."), nil)
}
