package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type retryPolicy struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	sleeper     func(time.Duration)
}

func (c *Client) complete(ctx context.Context, op string, payload chatCompletionRequest) (string, error) {
	attempts := c.retry.attempts()
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		completion, body, err := c.requester.send(ctx, payload)
		if err == nil {
			content, finishReason := contentOf(completion)
			if content != "" {
				return content, nil
			}
			if len(completion.Choices) == 0 {
				err = fmt.Errorf("%s: empty choices", op)
			} else {
				err = &emptyContentError{
					Op:           op,
					FinishReason: finishReason,
					Refusal:      refusalOf(completion),
					Snippet:      summarizePayloadSnippet(string(body)),
				}
			}
		}
		lastErr = err
		if attempt == attempts {
			break
		}
		delay, retry := c.retry.delayFor(ctx, err, attempt)
		if !retry {
			return "", err
		}
		if err := c.retry.wait(ctx, delay); err != nil {
			return "", err
		}
	}
	if attempts == 1 {
		return "", lastErr
	}
	return "", fmt.Errorf("%s: failed after %d attempts: %w", op, attempts, lastErr)
}

func (p retryPolicy) attempts() int {
	if p.maxAttempts <= 0 {
		return 1
	}
	return p.maxAttempts
}

// delayFor reports whether err is transient and how long to wait before the
// next attempt.
func (p retryPolicy) delayFor(ctx context.Context, err error, attempt int) (time.Duration, bool) {
	if err == nil || ctx.Err() != nil {
		return 0, false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 0, false
	}

	var empty *emptyContentError
	if errors.As(err, &empty) {
		return p.backoff(attempt), true
	}

	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		code := statusErr.StatusCode
		if code != http.StatusRequestTimeout && code != http.StatusTooManyRequests && code < http.StatusInternalServerError {
			return 0, false
		}
		if statusErr.RetryAfter > 0 {
			return p.clamp(statusErr.RetryAfter), true
		}
		return p.backoff(attempt), true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return p.backoff(attempt), true
	}
	return 0, false
}

// backoff doubles from the base delay per attempt: 1 -> base, 2 -> 2*base.
func (p retryPolicy) backoff(attempt int) time.Duration {
	if p.baseDelay <= 0 {
		return 0
	}
	limit := p.limit()
	delay := p.baseDelay
	for i := 1; i < attempt; i++ {
		if delay > limit/2 {
			return limit
		}
		delay *= 2
	}
	return p.clamp(delay)
}

func (p retryPolicy) limit() time.Duration {
	if p.maxDelay > 0 {
		return p.maxDelay
	}
	return defaultRetryMaxDelay
}

func (p retryPolicy) clamp(delay time.Duration) time.Duration {
	if delay < 0 {
		return 0
	}
	return min(delay, p.limit())
}

func (p retryPolicy) wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.sleeper != nil {
		p.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func parseRetryAfter(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}
	if when, err := http.ParseTime(value); err == nil {
		if delay := time.Until(when); delay > 0 {
			return delay, true
		}
	}
	return 0, false
}
