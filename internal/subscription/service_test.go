package subscription_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsletter/internal/emails"
	"github.com/dmitrymomot/newsletter/internal/subscriber"
	"github.com/dmitrymomot/newsletter/internal/subscription"
	"github.com/dmitrymomot/newsletter/pkg/mailer"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Insert(ctx context.Context, sub subscriber.NewSubscriber) error {
	return m.Called(ctx, sub).Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, params mailer.SendParams) error {
	return m.Called(ctx, params).Error(0)
}

var validForm = subscription.Form{Name: "le guin", Email: "ursula_le_guin@gmail.com"}

func TestService_Subscribe(t *testing.T) {
	t.Parallel()

	t.Run("stores then sends", func(t *testing.T) {
		t.Parallel()

		var order []string
		store := &MockStore{}
		store.On("Insert", mock.Anything, mock.MatchedBy(func(s subscriber.NewSubscriber) bool {
			return s.Name.String() == "le guin" && s.Email.String() == "ursula_le_guin@gmail.com"
		})).Run(func(mock.Arguments) { order = append(order, "insert") }).Return(nil).Once()

		m := &MockMailer{}
		m.On("Send", mock.Anything, mailer.SendParams{
			To:       "ursula_le_guin@gmail.com",
			Template: emails.Confirmation,
			Data:     emails.ConfirmationData{ConfirmationLink: subscription.DefaultConfirmationLink},
		}).Run(func(mock.Arguments) { order = append(order, "send") }).Return(nil).Once()

		err := subscription.NewService(store, m).Subscribe(context.Background(), validForm)
		require.NoError(t, err)

		assert.Equal(t, []string{"insert", "send"}, order)
		store.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("custom confirmation link", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		store.On("Insert", mock.Anything, mock.Anything).Return(nil)
		m := &MockMailer{}
		m.On("Send", mock.Anything, mock.MatchedBy(func(p mailer.SendParams) bool {
			return p.Data.(emails.ConfirmationData).ConfirmationLink == "https://news.example.com/confirm"
		})).Return(nil).Once()

		svc := subscription.NewService(store, m, subscription.WithConfirmationLink("https://news.example.com/confirm"))
		require.NoError(t, svc.Subscribe(context.Background(), validForm))
		m.AssertExpectations(t)
	})

	t.Run("invalid input has no side effects", func(t *testing.T) {
		t.Parallel()

		for _, form := range []subscription.Form{
			{Name: "", Email: "ursula_le_guin@gmail.com"},
			{Name: "Ursula", Email: ""},
			{Name: "Ursula", Email: "definitely-not-an-email"},
			{Name: "<script>", Email: "ursula_le_guin@gmail.com"},
		} {
			store := &MockStore{}
			m := &MockMailer{}

			err := subscription.NewService(store, m).Subscribe(context.Background(), form)
			require.ErrorIs(t, err, subscription.ErrInvalidSubscriber)
			require.ErrorIs(t, err, subscriber.ErrInvalid)

			store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
			m.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		}
	})

	t.Run("storage failure skips email", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("relation does not exist")
		store := &MockStore{}
		store.On("Insert", mock.Anything, mock.Anything).Return(dbErr).Once()
		m := &MockMailer{}

		err := subscription.NewService(store, m).Subscribe(context.Background(), validForm)
		require.ErrorIs(t, err, subscription.ErrStorage)
		require.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, subscription.ErrDispatch)
		m.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("dispatch failure keeps stored row", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		store.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()
		m := &MockMailer{}
		m.On("Send", mock.Anything, mock.Anything).Return(mailer.ErrSendFailed).Once()

		err := subscription.NewService(store, m).Subscribe(context.Background(), validForm)
		require.ErrorIs(t, err, subscription.ErrDispatch)
		store.AssertNumberOfCalls(t, "Insert", 1)
	})

	t.Run("dispatch survives cancelled request context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		store := &MockStore{}
		store.On("Insert", mock.Anything, mock.Anything).Run(func(mock.Arguments) { cancel() }).Return(nil).Once()

		var sendErr error
		m := &MockMailer{}
		m.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			sendErr = args.Get(0).(context.Context).Err()
		}).Return(nil).Once()

		require.NoError(t, subscription.NewService(store, m).Subscribe(ctx, validForm))
		assert.NoError(t, sendErr)
	})
}

func TestService_Subscribe_RendersConfirmationEmail(t *testing.T) {
	t.Parallel()

	store := &MockStore{}
	store.On("Insert", mock.Anything, mock.Anything).Return(nil)

	var sent *mailer.Email
	sender := mailer.SenderFunc(func(_ context.Context, e *mailer.Email) error {
		sent = e
		return nil
	})
	m := mailer.New(sender, mailer.NewRenderer(emails.FS), mailer.Config{})

	require.NoError(t, subscription.NewService(store, m).Subscribe(context.Background(), validForm))
	require.NotNil(t, sent)
	assert.Equal(t, []string{"ursula_le_guin@gmail.com"}, sent.To)
	assert.Equal(t, "Welcome!", sent.Subject)
	assert.Contains(t, sent.HTML, subscription.DefaultConfirmationLink)
	assert.Contains(t, sent.Text, subscription.DefaultConfirmationLink)
}

func TestService_Subscribe_SenderFailureThroughMailer(t *testing.T) {
	t.Parallel()

	store := &MockStore{}
	store.On("Insert", mock.Anything, mock.Anything).Return(nil)

	fs := fstest.MapFS{
		"layouts/base.html": {Data: []byte(`{{.Content}}`)},
		"confirmation.md":   {Data: []byte("---\nSubject: Welcome!\n---\n{{.ConfirmationLink}}")},
	}
	providerErr := errors.New("postmark: status 500")
	sender := mailer.SenderFunc(func(context.Context, *mailer.Email) error { return providerErr })
	m := mailer.New(sender, mailer.NewRenderer(fs), mailer.Config{})

	err := subscription.NewService(store, m).Subscribe(context.Background(), validForm)
	require.ErrorIs(t, err, subscription.ErrDispatch)
	require.ErrorIs(t, err, mailer.ErrSendFailed)
	require.ErrorIs(t, err, providerErr)
}
