package worker

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aescanero/greeting-machine/internal/config"
	"github.com/aescanero/greeting-machine/internal/greeting"
	"github.com/aescanero/greeting-machine/internal/locale"
)

func newTestWorker(t *testing.T, opts ...greeting.Option) *Worker {
	t.Helper()
	return newTestWorkerWithClient(t, nil, opts...)
}

func newTestWorkerWithClient(t *testing.T, client StreamClient, opts ...greeting.Option) *Worker {
	t.Helper()

	cfg := &config.Config{
		WorkerID:      "greeter-test",
		StreamKey:     "greeting.requests",
		ConsumerGroup: "greeting-workers",
		ResultStream:  "greeting.rendered",
		BlockTime:     10 * time.Millisecond,
	}
	opts = append([]greeting.Option{greeting.WithClock(greeting.FixedHour(9))}, opts...)
	machine := greeting.NewMachine(locale.NewResolver(locale.Default()), zap.NewNop(), opts...)

	w := NewWorker(cfg, client, machine, nil, zap.NewNop())
	t.Cleanup(w.cancel)
	return w
}

func TestParseGreetingRequest(t *testing.T) {
	t.Parallel()

	w := newTestWorker(t)

	req, err := w.parseGreetingRequest(map[string]interface{}{
		"data": `{"request_id":"r-1","user":{"name":"Alice","title":"Dr.","locale":"fr"},"category":"formal","custom_message":"Bonjour."}`,
	})
	require.NoError(t, err)
	require.Equal(t, &GreetingRequest{
		RequestID:     "r-1",
		User:          &greeting.User{Name: "Alice", Title: "Dr.", LocaleTag: "fr"},
		Category:      "formal",
		CustomMessage: "Bonjour.",
	}, req)
}

func TestParseGreetingRequest_Invalid(t *testing.T) {
	t.Parallel()

	w := newTestWorker(t)

	_, err := w.parseGreetingRequest(map[string]interface{}{})
	require.ErrorIs(t, err, errInvalidRequest)

	_, err = w.parseGreetingRequest(map[string]interface{}{"data": 42})
	require.ErrorIs(t, err, errInvalidRequest)

	_, err = w.parseGreetingRequest(map[string]interface{}{"data": "{not json"})
	require.ErrorIs(t, err, errInvalidRequest)
	require.Equal(t, reasonInvalidRequest, failureReason(err))
}

func TestProcessGreetingRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		request        *GreetingRequest
		expectCategory greeting.Category
		expectLocale   string
		expectGreeting string
	}{
		{
			name: "explicit locale overrides user locale",
			request: &GreetingRequest{
				RequestID:     "r-1",
				User:          &greeting.User{Name: "Bob", Title: "Mr.", LocaleTag: "en"},
				Category:      "FORMAL",
				Locale:        "es",
				CustomMessage: "Bienvenido!",
			},
			expectCategory: greeting.CategoryFormal,
			expectLocale:   "es",
			expectGreeting: "Estimado Mr. Bob, good mañana. Bienvenido!",
		},
		{
			name: "user locale when request has none",
			request: &GreetingRequest{
				RequestID: "r-2",
				User:      &greeting.User{Name: "François", LocaleTag: "fr"},
				Category:  "friendly",
			},
			expectCategory: greeting.CategoryFriendly,
			expectLocale:   "fr",
			expectGreeting: "Hi François, hope you're having a lovely matin! ",
		},
		{
			name: "default category and locale",
			request: &GreetingRequest{
				RequestID:     "r-3",
				User:          &greeting.User{},
				CustomMessage: "hi",
			},
			expectCategory: greeting.CategoryCasual,
			expectLocale:   "en",
			expectGreeting: "Hey there! morning — hi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := newTestWorker(t).processGreetingRequest(tt.request)
			require.NoError(t, err)
			require.Equal(t, tt.request.RequestID, result.RequestID)
			require.Equal(t, tt.expectCategory, result.Category)
			require.Equal(t, tt.expectLocale, result.Locale)
			require.Equal(t, tt.expectGreeting, result.Greeting)
			require.False(t, result.Timestamp.IsZero())

			_, err = uuid.Parse(result.GreetingID)
			require.NoError(t, err)
		})
	}
}

func TestProcessGreetingRequest_UsesMachineDefaultCategory(t *testing.T) {
	t.Parallel()

	w := newTestWorker(t, greeting.WithDefaultCategory(greeting.CategoryHumorous))
	result, err := w.processGreetingRequest(&GreetingRequest{User: &greeting.User{Name: "Yan"}})
	require.NoError(t, err)
	require.Equal(t, greeting.CategoryHumorous, result.Category)
	require.Equal(t, "Yo Yan! It's morning — stay awesome. ", result.Greeting)
}

func TestProcessGreetingRequest_Errors(t *testing.T) {
	t.Parallel()

	w := newTestWorker(t)

	_, err := w.processGreetingRequest(&GreetingRequest{RequestID: "r-1", Category: "casual"})
	require.ErrorIs(t, err, greeting.ErrNilUser)
	require.Contains(t, err.Error(), "user cannot be null")
	require.Equal(t, reasonNilUser, failureReason(err))

	_, err = w.processGreetingRequest(&GreetingRequest{User: &greeting.User{Name: "A"}, Category: "sarcastic"})
	require.ErrorIs(t, err, greeting.ErrUnknownCategory)
	require.Equal(t, reasonUnknownCategory, failureReason(err))
}
