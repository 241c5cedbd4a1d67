// Package config resolves per-environment test configuration.
//
// Environment-specific values (URLs, credentials) come from prefixed
// environment variables (DEV_BASE_URL, STAGING_BASE_URL, ...) or an
// optional config/environments/<env>.yaml settings file. Process-wide
// values (timeouts) are the same for every environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Known environment names. Anything else is a configuration error.
var KnownEnvironments = []string{"dev", "staging", "prod"}

const (
	// DefaultEnvironment is used when neither the caller nor TEST_ENV
	// names an environment.
	DefaultEnvironment = "dev"

	// Timeouts applied to every session, identical across environments.
	DefaultImplicitWait    = 10 * time.Second
	DefaultPageLoadTimeout = 30 * time.Second

	defaultConfigDir = "config/environments"
)

// EnvironmentConfig holds all settings for one named environment.
// Instances are created once per environment name and never mutated.
type EnvironmentConfig struct {
	Environment     string
	BaseURL         string
	APIURL          string
	TestEmail       string
	TestPassword    string
	ImplicitWait    time.Duration
	PageLoadTimeout time.Duration
	LogLevel        string
}

// MissingVarsError reports every required variable that was absent for
// an environment, not just the first one.
type MissingVarsError struct {
	Environment string
	Keys        []string
}

func (e *MissingVarsError) Error() string {
	return fmt.Sprintf(
		"missing required environment variables for %q environment: %s (set them in the process environment, .env, or %s/%s.yaml)",
		e.Environment, strings.Join(e.Keys, ", "), defaultConfigDir, e.Environment,
	)
}

// LookupFunc reads one variable from the underlying source. It returns
// "" when the variable is unset.
type LookupFunc func(key string) string

// Store caches resolved configurations per environment name. Tests can
// construct their own Store with an injected lookup instead of mutating
// hidden package state.
type Store struct {
	mu        sync.Mutex
	configs   map[string]*EnvironmentConfig
	lookup    LookupFunc
	configDir string
	loadEnv   sync.Once
}

// Option customizes a Store.
type Option func(*Store)

// WithLookup replaces the variable source (default: process environment
// after a lazy one-time .env load).
func WithLookup(fn LookupFunc) Option {
	return func(s *Store) { s.lookup = fn }
}

// WithConfigDir changes where per-environment settings files are read from.
func WithConfigDir(dir string) Option {
	return func(s *Store) { s.configDir = dir }
}

// NewStore creates an empty configuration cache.
func NewStore(opts ...Option) *Store {
	s := &Store{
		configs:   make(map[string]*EnvironmentConfig),
		configDir: defaultConfigDir,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultStore backs the package-level Resolve.
var DefaultStore = NewStore()

// Resolve loads configuration for the named environment from the default
// store. An empty name falls back to TEST_ENV, then to "dev".
func Resolve(envName string) (*EnvironmentConfig, error) {
	return DefaultStore.Resolve(envName)
}

// Resolve returns the configuration for the named environment, loading
// it on first use and returning the identical cached record afterwards.
func (s *Store) Resolve(envName string) (*EnvironmentConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lookup := s.lookupFunc()

	name := strings.ToLower(strings.TrimSpace(envName))
	if name == "" {
		name = strings.ToLower(strings.TrimSpace(lookup("TEST_ENV")))
	}
	if name == "" {
		name = DefaultEnvironment
	}

	if cfg, ok := s.configs[name]; ok {
		return cfg, nil
	}

	if !knownEnvironment(name) {
		return nil, fmt.Errorf("unknown environment %q: valid options are %s",
			name, strings.Join(KnownEnvironments, ", "))
	}

	cfg, err := s.load(name, lookup)
	if err != nil {
		return nil, err
	}

	s.configs[name] = cfg
	log.Printf("[e2e-config] resolved environment=%s base_url=%s implicit_wait=%s page_load_timeout=%s",
		cfg.Environment, cfg.BaseURL, cfg.ImplicitWait, cfg.PageLoadTimeout)
	return cfg, nil
}

// Reset drops every cached configuration so the next Resolve re-reads
// the variable source.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs = make(map[string]*EnvironmentConfig)
}

func (s *Store) lookupFunc() LookupFunc {
	if s.lookup != nil {
		return s.lookup
	}
	s.loadEnv.Do(loadDotEnv)
	return envLookup
}

func (s *Store) load(name string, lookup LookupFunc) (*EnvironmentConfig, error) {
	prefix := strings.ToUpper(name) + "_"

	// Optional per-environment settings file. Env vars take precedence.
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.AddConfigPath(s.configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading %s/%s.yaml: %w", s.configDir, name, err)
		}
	}

	get := func(envKey, fileKey string) string {
		if val := strings.TrimSpace(lookup(prefix + envKey)); val != "" {
			return val
		}
		return strings.TrimSpace(v.GetString(fileKey))
	}

	baseURL := get("BASE_URL", "base_url")
	testEmail := get("TEST_EMAIL", "test_email")
	testPassword := get("TEST_PASSWORD", "test_password")

	var missing []string
	for _, kv := range []struct{ key, val string }{
		{prefix + "BASE_URL", baseURL},
		{prefix + "TEST_EMAIL", testEmail},
		{prefix + "TEST_PASSWORD", testPassword},
	} {
		if kv.val == "" {
			missing = append(missing, kv.key)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingVarsError{Environment: name, Keys: missing}
	}

	implicitWait, err := fixedSeconds(lookup, "IMPLICIT_WAIT", DefaultImplicitWait)
	if err != nil {
		return nil, err
	}
	pageLoadTimeout, err := fixedSeconds(lookup, "PAGE_LOAD_TIMEOUT", DefaultPageLoadTimeout)
	if err != nil {
		return nil, err
	}

	return &EnvironmentConfig{
		Environment:     name,
		BaseURL:         baseURL,
		APIURL:          get("API_URL", "api_url"),
		TestEmail:       testEmail,
		TestPassword:    testPassword,
		ImplicitWait:    implicitWait,
		PageLoadTimeout: pageLoadTimeout,
		LogLevel:        get("LOG_LEVEL", "log_level"),
	}, nil
}

// fixedSeconds reads a non-prefixed, process-wide timeout expressed in
// whole seconds.
func fixedSeconds(lookup LookupFunc, key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(lookup(key))
	if raw == "" {
		return fallback, nil
	}
	secs, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer number of seconds, got %q", key, raw)
	}
	if secs <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, secs)
	}
	return time.Duration(secs) * time.Second, nil
}

func knownEnvironment(name string) bool {
	for _, env := range KnownEnvironments {
		if name == env {
			return true
		}
	}
	return false
}
