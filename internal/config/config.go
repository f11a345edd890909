package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/newsletter/internal/subscriber"
	"github.com/dmitrymomot/newsletter/pkg/db"
	"github.com/dmitrymomot/newsletter/pkg/logger"
	"github.com/dmitrymomot/newsletter/pkg/mailer"
)

// EnvPrefix prefixes every environment override, e.g. APP_APPLICATION_PORT.
const EnvPrefix = "APP_"

// DefaultDir is where Load looks for the YAML files.
const DefaultDir = "configuration"

var (
	ErrUnknownEnvironment = errors.New("config: unknown environment")
	ErrReadFile           = errors.New("config: failed to read configuration file")
	ErrParseFile          = errors.New("config: failed to parse configuration file")
	ErrParseEnv           = errors.New("config: failed to parse environment overrides")
	ErrInvalid            = errors.New("config: invalid settings")
)

// Environment selects the overlay file on top of base.yaml.
type Environment string

const (
	Local      Environment = "local"
	Production Environment = "production"
)

// ParseEnvironment accepts "local" and "production" (any case).
func ParseEnvironment(s string) (Environment, error) {
	switch e := Environment(strings.ToLower(strings.TrimSpace(s))); e {
	case Local, Production:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q, use either %q or %q", ErrUnknownEnvironment, s, Local, Production)
	}
}

// EnvironmentFromEnv reads APP_ENVIRONMENT, defaulting to local.
func EnvironmentFromEnv() (Environment, error) {
	v, ok := os.LookupEnv(EnvPrefix + "ENVIRONMENT")
	if !ok || v == "" {
		return Local, nil
	}
	return ParseEnvironment(v)
}

// Settings is the complete service configuration.
type Settings struct {
	Application ApplicationSettings `yaml:"application" envPrefix:"APPLICATION_"`
	Log         LogSettings         `yaml:"log" envPrefix:"LOG_"`
	EmailClient EmailClientSettings `yaml:"email_client" envPrefix:"EMAIL_CLIENT_"`
	Sentry      logger.SentryConfig `yaml:"sentry" envPrefix:"SENTRY_"`
	Mailer      mailer.Config       `yaml:"mailer" envPrefix:"MAILER_"`
	Database    db.Config           `yaml:"database" envPrefix:"DATABASE_"`
}

// ApplicationSettings configures the HTTP server.
type ApplicationSettings struct {
	Name             string `yaml:"name" env:"NAME"`
	Host             string `yaml:"host" env:"HOST"`
	BaseURL          string `yaml:"base_url" env:"BASE_URL"`
	ConfirmationLink string `yaml:"confirmation_link" env:"CONFIRMATION_LINK"`
	Port             uint16 `yaml:"port" env:"PORT"`
}

// LogSettings configures the service logger.
type LogSettings struct {
	Level string `yaml:"level" env:"LEVEL"`
}

// Email providers.
const (
	ProviderPostmark = "postmark"
	ProviderResend   = "resend"
)

// EmailClientSettings configures the outbound email API.
type EmailClientSettings struct {
	Provider            string `yaml:"provider" env:"PROVIDER"`
	BaseURL             string `yaml:"base_url" env:"BASE_URL"`
	SenderEmail         string `yaml:"sender_email" env:"SENDER_EMAIL"`
	AuthorizationToken  string `yaml:"authorization_token" env:"AUTHORIZATION_TOKEN"`
	TimeoutMilliseconds uint64 `yaml:"timeout_milliseconds" env:"TIMEOUT_MILLISECONDS"`
}

// Sender returns the validated sender address.
func (s EmailClientSettings) Sender() (subscriber.Email, error) {
	return subscriber.ParseEmail(s.SenderEmail)
}

// Timeout returns the per-call timeout of the email client.
func (s EmailClientSettings) Timeout() time.Duration {
	return time.Duration(s.TimeoutMilliseconds) * time.Millisecond
}

func defaults() Settings {
	return Settings{
		Application: ApplicationSettings{
			Name: "newsletter",
			Host: "127.0.0.1",
			Port: 8000,
		},
		Log:         LogSettings{Level: "info"},
		EmailClient: EmailClientSettings{Provider: ProviderPostmark, TimeoutMilliseconds: 10000},
		Database:    db.DefaultConfig(),
	}
}

// Load reads configuration/base.yaml, the overlay for environment and then
// APP_* environment variables, in that order of increasing precedence.
func Load(environment Environment) (*Settings, error) {
	return LoadFromDir(DefaultDir, environment)
}

// LoadFromDir is Load with a custom configuration directory.
func LoadFromDir(dir string, environment Environment) (*Settings, error) {
	return load(os.DirFS(dir), environment, nil)
}

// environ nil means the process environment.
func load(fsys fs.FS, environment Environment, environ map[string]string) (*Settings, error) {
	if _, err := ParseEnvironment(string(environment)); err != nil {
		return nil, err
	}

	settings := defaults()
	for _, name := range []string{"base.yaml", string(environment) + ".yaml"} {
		if err := decodeFile(fsys, name, &settings); err != nil {
			return nil, err
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&settings, opts); err != nil {
		return nil, errors.Join(ErrParseEnv, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

func decodeFile(fsys fs.FS, name string, into *Settings) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrReadFile, name, err)
	}
	if err := yaml.Unmarshal(data, into); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrParseFile, name, err)
	}
	return nil
}

// Validate reports every missing or malformed required setting at once.
func (s *Settings) Validate() error {
	var errs []error
	if s.Application.Host == "" {
		errs = append(errs, errors.New("application.host is required"))
	}
	if s.Application.BaseURL == "" {
		errs = append(errs, errors.New("application.base_url is required"))
	}
	if s.Database.URL == "" && (s.Database.Host == "" || s.Database.DatabaseName == "") {
		errs = append(errs, errors.New("database.host and database.database_name are required"))
	}
	if err := checkAbsoluteURL(s.EmailClient.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("email_client.base_url: %w", err))
	}
	if _, err := s.EmailClient.Sender(); err != nil {
		errs = append(errs, fmt.Errorf("email_client.sender_email: %w", err))
	}
	if s.EmailClient.TimeoutMilliseconds == 0 {
		errs = append(errs, errors.New("email_client.timeout_milliseconds must be positive"))
	}
	switch s.EmailClient.Provider {
	case ProviderPostmark, ProviderResend:
	default:
		errs = append(errs, fmt.Errorf("email_client.provider %q is not supported", s.EmailClient.Provider))
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrInvalid}, errs...)...)
}

// checkAbsoluteURL requires a scheme and a host, e.g. http://127.0.0.1:3000.
func checkAbsoluteURL(raw string) error {
	if raw == "" {
		return errors.New("is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}
