package bedrock

import (
	"errors"
	"testing"
	"time"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "throttling", err: errors.New("ThrottlingException: Rate exceeded"), want: true},
		{name: "too many requests", err: errors.New("TooManyRequestsException"), want: true},
		{name: "internal server", err: errors.New("InternalServerException"), want: true},
		{name: "service unavailable", err: errors.New("503 ServiceUnavailableException"), want: true},
		{name: "connection reset", err: errors.New("read tcp: connection reset by peer"), want: true},
		{name: "timeout", err: errors.New("context deadline exceeded: timeout"), want: true},
		{name: "validation error", err: errors.New("ValidationException: malformed input"), want: false},
		{name: "access denied", err: errors.New("AccessDeniedException"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.want {
				t.Errorf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	initial := 100 * time.Millisecond
	max := 12 * time.Second

	prev := time.Duration(0)
	for attempt := 0; attempt < 5; attempt++ {
		delay := calculateBackoff(attempt, initial, max)

		// Expected base is initial * 2^attempt with up to 20% jitter.
		base := initial << uint(attempt)
		lower := time.Duration(float64(base) * 0.8)
		upper := time.Duration(float64(base) * 1.2)

		if delay < lower || delay > upper {
			t.Errorf("attempt %d: delay %v outside [%v, %v]", attempt, delay, lower, upper)
		}
		if delay < prev/2 {
			t.Errorf("attempt %d: delay %v should grow roughly exponentially", attempt, delay)
		}
		prev = delay
	}
}

func TestCalculateBackoff_CappedAtMax(t *testing.T) {
	initial := 100 * time.Millisecond
	max := time.Second

	delay := calculateBackoff(10, initial, max)
	upper := time.Duration(float64(max) * 1.2)
	if delay > upper {
		t.Errorf("delay %v exceeds capped max with jitter %v", delay, upper)
	}
}
