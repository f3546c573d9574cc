package resilience

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/kbukum/railway/errors"
)

func fastConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		BackoffFactor:  2.0,
	}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	callCount := 0
	result, err := Retry(context.Background(), DefaultRetryConfig(), func() (string, error) {
		callCount++
		return "success", nil
	})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "success" {
		t.Errorf("expected 'success', got %s", result)
	}
	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
}

func TestRetry_SucceedsAfterRetry(t *testing.T) {
	callCount := 0
	result, err := Retry(context.Background(), fastConfig(3), func() (string, error) {
		callCount++
		if callCount < 3 {
			return "", errors.ServiceUnavailable("store")
		}
		return "success", nil
	})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "success" {
		t.Errorf("expected 'success', got %s", result)
	}
	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
}

func TestRetry_ExceedsMaxAttempts(t *testing.T) {
	callCount := 0
	testErr := errors.Timeout("load")

	_, err := Retry(context.Background(), fastConfig(3), func() (string, error) {
		callCount++
		return "", testErr
	})
	if err != testErr {
		t.Errorf("expected the last error, got %v", err)
	}
	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
}

func TestRetry_PermanentErrorNotRetried(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"plain error", stderrors.New("bug")},
		{"permanent app error", errors.NotFound("row", "1")},
		{"cancelled", context.Canceled},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			callCount := 0
			_, err := Retry(context.Background(), fastConfig(5), func() (int, error) {
				callCount++
				return 0, tc.err
			})
			if err != tc.err {
				t.Errorf("expected %v, got %v", tc.err, err)
			}
			if callCount != 1 {
				t.Errorf("expected 1 call, got %d", callCount)
			}
		})
	}
}

func TestRetry_RespectsContext(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts:    10,
		InitialBackoff: 100 * time.Millisecond,
		BackoffFactor:  2.0,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	callCount := 0
	_, err := Retry(ctx, cfg, func() (string, error) {
		callCount++
		return "", errors.ConnectionFailed("api")
	})
	if !stderrors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
	if callCount >= 10 {
		t.Errorf("expected fewer than 10 calls, got %d", callCount)
	}
}

func TestRetry_CancelledBeforeFirstAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, err := Retry(ctx, fastConfig(3), func() (int, error) {
		called = true
		return 1, nil
	})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Error("expected fn not to be called after cancellation")
	}
}

func TestRetry_RetryIfOverride(t *testing.T) {
	flaky := stderrors.New("flaky")
	cfg := fastConfig(3)
	cfg.RetryIf = func(err error) bool { return stderrors.Is(err, flaky) }

	callCount := 0
	_, _ = Retry(context.Background(), cfg, func() (string, error) {
		callCount++
		return "", flaky
	})
	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
}

func TestRetry_OnRetryCallback(t *testing.T) {
	var retries []int
	cfg := fastConfig(3)
	cfg.OnRetry = func(attempt int, _ error, _ time.Duration) {
		retries = append(retries, attempt)
	}

	_, _ = Retry(context.Background(), cfg, func() (string, error) {
		return "", errors.RateLimited()
	})

	if len(retries) != 2 || retries[0] != 1 || retries[1] != 2 {
		t.Errorf("expected attempts [1 2], got %v", retries)
	}
}

func TestRetryConfig_Enabled(t *testing.T) {
	if (RetryConfig{}).Enabled() {
		t.Error("expected zero config to be disabled")
	}
	if (RetryConfig{MaxAttempts: 1}).Enabled() {
		t.Error("expected a single attempt to be disabled")
	}
	if !DefaultRetryConfig().Enabled() {
		t.Error("expected default config to be enabled")
	}
}

func TestCalculateBackoff_CapsAtMax(t *testing.T) {
	cfg := RetryConfig{InitialBackoff: time.Second, MaxBackoff: 3 * time.Second, BackoffFactor: 10}
	if got := calculateBackoff(1, cfg); got != time.Second {
		t.Errorf("expected 1s, got %v", got)
	}
	if got := calculateBackoff(4, cfg); got != 3*time.Second {
		t.Errorf("expected cap of 3s, got %v", got)
	}
}
