package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 10 * time.Millisecond, Multiplier: 2}
}

var (
	okPassage = MockJSON(map[string]string{"title": "El faro", "text": "..."})
	down      = MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
	garbled   = MockResponse{Err: &ErrInvalidResponse{Content: []byte("bad"), Err: errors.New("bad")}}
)

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		script    []MockResponse
		cfg       RetryConfig
		wantCalls int
		wantErr   any
	}{
		{"first attempt", []MockResponse{okPassage}, fastRetry(), 1, nil},
		{"transient then ok", []MockResponse{down, okPassage}, fastRetry(), 2, nil},
		{"gives up after max attempts", []MockResponse{down, down, down, okPassage}, fastRetry(), 3, &ErrProviderUnavailable{}},
		{"truncation is final", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, okPassage}, fastRetry(), 1, &ErrMaxTokensExceeded{}},
		{"invalid response retried once", []MockResponse{garbled, garbled, okPassage}, fastRetry(), 2, &ErrInvalidResponse{}},
		{"invalid then ok", []MockResponse{garbled, okPassage}, fastRetry(), 2, nil},
		{"rate limit waits retry-after", []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond}}, okPassage}, fastRetry(), 2, nil},
		{"zero attempts still calls once", []MockResponse{down, okPassage}, RetryConfig{}, 1, &ErrProviderUnavailable{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.script...)
			resp, err := WithRetry(mock, tt.cfg, nil).Generate(context.Background(), Request{})

			assert.Equal(t, tt.wantCalls, mock.CallCount())
			switch want := tt.wantErr.(type) {
			case nil:
				require.NoError(t, err)
				assert.JSONEq(t, `{"title":"El faro","text":"..."}`, string(resp.Content))
			case *ErrProviderUnavailable:
				assert.ErrorAs(t, err, &want)
			case *ErrMaxTokensExceeded:
				assert.ErrorAs(t, err, &want)
			case *ErrInvalidResponse:
				assert.ErrorAs(t, err, &want)
			}
		})
	}
}

func TestRetryStopsOnCancel(t *testing.T) {
	mock := NewMockProvider(down, okPassage)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(mock, fastRetry(), nil).Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestBackoffBounds(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}}
	for attempt := range 5 {
		w := r.backoff(attempt, errors.New("x"))
		assert.GreaterOrEqual(t, w, 80*time.Millisecond)
		assert.LessOrEqual(t, w, 360*time.Millisecond)
	}
	assert.Equal(t, 7*time.Second, r.backoff(0, &ErrRateLimit{RetryAfter: 7 * time.Second}))
}

func TestRetryModelID(t *testing.T) {
	assert.Equal(t, "mock", WithRetry(NewMockProvider(), fastRetry(), nil).ModelID())
}

func TestTimeoutCancelsSlowProvider(t *testing.T) {
	_, err := WithTimeout(slowProvider{}, 5*time.Millisecond).Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }
