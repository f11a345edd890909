package subscriber

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func emailValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Email is a subscriber email address that passed ParseEmail.
type Email struct {
	value string
}

// ParseEmail accepts raw when it is a syntactically valid address whose
// domain contains at least one dot. The value is stored as given.
func ParseEmail(raw string) (Email, error) {
	if raw == "" {
		return Email{}, invalid("email", "must not be empty")
	}
	if !utf8.ValidString(raw) {
		return Email{}, invalid("email", "must be valid UTF-8")
	}
	if err := emailValidator().Var(raw, "email"); err != nil {
		return Email{}, invalid("email", "is not a valid email address")
	}

	at := strings.LastIndexByte(raw, '@')
	domain := raw[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return Email{}, invalid("email", "domain must contain a dot")
	}

	return Email{value: raw}, nil
}

func (e Email) String() string {
	return e.value
}
