package resend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsletter/pkg/mailer"
	"github.com/dmitrymomot/newsletter/pkg/mailer/resend"
)

func TestSender_Send(t *testing.T) {
	t.Parallel()

	t.Run("posts to emails endpoint", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/emails", r.URL.Path)
			assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
		}))
		defer srv.Close()

		s, err := resend.New(resend.Config{
			APIKey:      "re_test",
			SenderEmail: "newsletter@example.com",
			BaseURL:     srv.URL,
			Timeout:     time.Second,
		})
		require.NoError(t, err)

		err = s.Send(context.Background(), &mailer.Email{
			To:      []string{"ursula_le_guin@gmail.com"},
			Subject: "Welcome!",
			HTML:    "<p>hi</p>",
			Text:    "hi",
		})
		require.NoError(t, err)

		assert.Equal(t, "newsletter@example.com", got["from"])
		assert.Equal(t, "Welcome!", got["subject"])
	})

	t.Run("api error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"bad"}`))
		}))
		defer srv.Close()

		s, err := resend.New(resend.Config{APIKey: "re_test", BaseURL: srv.URL})
		require.NoError(t, err)

		err = s.Send(context.Background(), &mailer.Email{To: []string{"a@b.co"}, Subject: "x", HTML: "x"})
		require.ErrorIs(t, err, resend.ErrSendFailed)
	})

	t.Run("invalid base url", func(t *testing.T) {
		t.Parallel()

		_, err := resend.New(resend.Config{BaseURL: "://bad"})
		require.ErrorIs(t, err, resend.ErrInvalidBaseURL)
	})
}
