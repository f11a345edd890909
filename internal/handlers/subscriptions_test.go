package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsletter/internal"
	"github.com/dmitrymomot/newsletter/internal/emails"
	"github.com/dmitrymomot/newsletter/internal/handlers"
	"github.com/dmitrymomot/newsletter/internal/subscriber"
	"github.com/dmitrymomot/newsletter/internal/subscription"
	"github.com/dmitrymomot/newsletter/pkg/mailer"
	"github.com/dmitrymomot/newsletter/pkg/mailer/postmark"
	"github.com/dmitrymomot/newsletter/pkg/sanitizer"
)

type record struct {
	Email  string
	Name   string
	Status string
}

// memoryStore keeps inserted subscribers in memory.
type memoryStore struct {
	err     error
	records []record
	mu      sync.Mutex
}

func (s *memoryStore) Insert(_ context.Context, sub subscriber.NewSubscriber) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, record{Email: sub.Email.String(), Name: sub.Name.String(), Status: "confirmed"})
	return nil
}

func (s *memoryStore) all() []record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]record(nil), s.records...)
}

// emailAPI stands in for the Postmark API.
type emailAPI struct {
	*httptest.Server
	status   int
	calls    atomic.Int32
	mu       sync.Mutex
	requests []map[string]string
}

func newEmailAPI(t *testing.T, status int) *emailAPI {
	t.Helper()

	api := &emailAPI{status: status}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.calls.Add(1)
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		api.mu.Lock()
		api.requests = append(api.requests, body)
		api.mu.Unlock()
		w.WriteHeader(api.status)
	}))
	t.Cleanup(api.Close)
	return api
}

type testEnv struct {
	app   *internal.App
	store *memoryStore
	api   *emailAPI
}

func newTestEnv(t *testing.T, apiStatus int) *testEnv {
	t.Helper()

	store := &memoryStore{}
	api := newEmailAPI(t, apiStatus)

	sender := postmark.New(postmark.Config{
		BaseURL:     api.URL,
		SenderEmail: "newsletter@example.com",
		ServerToken: "token",
		Timeout:     2 * time.Second,
	})
	renderer := mailer.NewRendererWithConfig(emails.FS, mailer.RendererConfig{
		ContentFilter: sanitizer.EmailHTML,
	})
	svc := subscription.NewService(store, mailer.New(sender, renderer, mailer.Config{}))

	return &testEnv{
		app:   internal.New(internal.WithHandlers(handlers.NewSubscriptions(svc))),
		store: store,
		api:   api,
	}
}

func (e *testEnv) post(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/subscriptions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.app.ServeHTTP(rec, req)
	return rec
}

func TestSubscriptions_ValidForm(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, http.StatusOK)
	rec := env.post("name=le%20guin&email=ursula_le_guin%40gmail.com")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, []record{{Email: "ursula_le_guin@gmail.com", Name: "le guin", Status: "confirmed"}}, env.store.all())
}

func TestSubscriptions_MissingFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"missing email", "name=le%20guin"},
		{"missing name", "email=ursula_le_guin%40gmail.com"},
		{"missing both", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, http.StatusOK)
			rec := env.post(tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, rec.Body.String())
			assert.Empty(t, env.store.all())
			assert.Zero(t, env.api.calls.Load())
		})
	}
}

func TestSubscriptions_InvalidFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"empty name", "name=&email=ursula_le_guin%40gmail.com"},
		{"empty email", "name=Ursula&email="},
		{"invalid email", "name=Ursula&email=definitely-not-an-email"},
		{"forbidden character", "name=%3Cscript%3E&email=ursula_le_guin%40gmail.com"},
		{"whitespace name", "name=%20%20&email=ursula_le_guin%40gmail.com"},
		{"invalid utf8 name", "name=%FF%FE&email=ursula_le_guin%40gmail.com"},
		{"invalid utf8 email", "name=Ursula&email=urs%FFula%40gmail.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, http.StatusOK)
			rec := env.post(tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, rec.Body.String())
			assert.Empty(t, env.store.all())
			assert.Zero(t, env.api.calls.Load())
		})
	}
}

var linkPattern = regexp.MustCompile(`https?://[^\s"'<>)]+`)

func TestSubscriptions_SendsOneConfirmationEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, http.StatusOK)
	rec := env.post("name=le%20guin&email=ursula_le_guin%40gmail.com")
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, int32(1), env.api.calls.Load())
	body := env.api.requests[0]
	assert.Equal(t, "ursula_le_guin@gmail.com", body["To"])
	assert.Equal(t, "newsletter@example.com", body["From"])
	assert.Equal(t, "Welcome!", body["Subject"])

	htmlLinks := linkPattern.FindAllString(body["HtmlBody"], -1)
	textLinks := linkPattern.FindAllString(body["TextBody"], -1)
	require.Len(t, htmlLinks, 1)
	require.Len(t, textLinks, 1)
	assert.Equal(t, htmlLinks[0], textLinks[0])
	assert.Equal(t, subscription.DefaultConfirmationLink, htmlLinks[0])
}

func TestSubscriptions_StorageFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, http.StatusOK)
	env.store.err = errors.New(`relation "subscriptions" does not exist`)

	rec := env.post("name=le%20guin&email=ursula_le_guin%40gmail.com")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Zero(t, env.api.calls.Load())
}

func TestSubscriptions_EmailAPIFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, http.StatusInternalServerError)
	rec := env.post("name=le%20guin&email=ursula_le_guin%40gmail.com")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, int32(1), env.api.calls.Load())
	// The row stays even though the email failed.
	assert.Len(t, env.store.all(), 1)
}
