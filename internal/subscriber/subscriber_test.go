package subscriber_test

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsletter/internal/subscriber"
)

func TestParseName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "simple", input: "Ursula Le Guin", want: "Ursula Le Guin"},
		{name: "trimmed", input: "  le guin \t\n", want: "le guin"},
		{name: "256 graphemes", input: strings.Repeat("a̐", 256), want: strings.Repeat("a̐", 256)},
		{name: "256 ascii", input: strings.Repeat("a", 256), want: strings.Repeat("a", 256)},
		{name: "257 graphemes", input: strings.Repeat("a̐", 257), wantErr: true},
		{name: "257 ascii", input: strings.Repeat("a", 257), wantErr: true},
		{name: "256 after trim", input: "  " + strings.Repeat("a", 256) + "  ", want: strings.Repeat("a", 256)},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: " \t ", wantErr: true},
		{name: "unicode letters", input: "Jürgen Ðoe 李", want: "Jürgen Ðoe 李"},
		{name: "invalid utf8", input: "\xff\xfe", wantErr: true},
		{name: "invalid utf8 inside valid text", input: "le \xc3 guin", wantErr: true},
	}

	for _, r := range `/()"<>\{}` {
		for _, pos := range []string{"start", "middle", "end"} {
			input := map[string]string{
				"start":  string(r) + "name",
				"middle": "na" + string(r) + "me",
				"end":    "name" + string(r),
			}[pos]
			tests = append(tests, struct {
				name    string
				input   string
				want    string
				wantErr bool
			}{name: fmt.Sprintf("forbidden %q at %s", r, pos), input: input, wantErr: true})
		}
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := subscriber.ParseName(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, subscriber.ErrInvalid)

				var verr *subscriber.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "name", verr.Field)
				assert.NotEmpty(t, verr.Reason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		wantErr bool
	}{
		{input: "ursula_le_guin@gmail.com"},
		{input: "first.last+tag@sub.example.org"},
		{input: "", wantErr: true},
		{input: "ursulaleguin.com", wantErr: true},
		{input: "@domain.com", wantErr: true},
		{input: "ursula@localhost", wantErr: true},
		{input: "ursula@", wantErr: true},
		{input: "ursula le guin@gmail.com", wantErr: true},
		{input: "urs\xffula@gmail.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := subscriber.ParseEmail(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, subscriber.ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestParseEmail_GeneratedAddresses(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	word := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = letters[rng.IntN(len(letters))]
		}
		return string(b)
	}

	for range 200 {
		email := fmt.Sprintf("%s.%s@%s.%s", word(1+rng.IntN(10)), word(1+rng.IntN(10)), word(1+rng.IntN(12)), []string{"com", "org", "net", "io"}[rng.IntN(4)])

		got, err := subscriber.ParseEmail(email)
		require.NoError(t, err, email)

		again, err := subscriber.ParseEmail(got.String())
		require.NoError(t, err)
		assert.Equal(t, got, again)
	}
}

func TestParseName_Idempotent(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"  padded  ", "Ursula", strings.Repeat("ж", 256)} {
		first, err := subscriber.ParseName(raw)
		require.NoError(t, err)

		second, err := subscriber.ParseName(first.String())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		s, err := subscriber.New("le guin", "ursula_le_guin@gmail.com")
		require.NoError(t, err)
		assert.Equal(t, "le guin", s.Name.String())
		assert.Equal(t, "ursula_le_guin@gmail.com", s.Email.String())
	})

	t.Run("both invalid reports both", func(t *testing.T) {
		t.Parallel()

		_, err := subscriber.New("", "not-an-email")
		require.ErrorIs(t, err, subscriber.ErrInvalid)
		assert.Contains(t, err.Error(), "invalid name")
		assert.Contains(t, err.Error(), "invalid email")
	})

	t.Run("single invalid field", func(t *testing.T) {
		t.Parallel()

		_, err := subscriber.New("Ursula", "")
		var verr *subscriber.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "email", verr.Field)
	})
}
