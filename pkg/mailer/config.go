package mailer

// Config holds mailer defaults.
type Config struct {
	FallbackSubject string `yaml:"fallback_subject" env:"FALLBACK_SUBJECT"`
	DefaultLayout   string `yaml:"default_layout" env:"DEFAULT_LAYOUT"`
}

func (c Config) withDefaults() Config {
	if c.FallbackSubject == "" {
		c.FallbackSubject = "Notification"
	}
	if c.DefaultLayout == "" {
		c.DefaultLayout = "base.html"
	}
	return c
}
