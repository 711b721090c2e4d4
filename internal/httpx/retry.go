// Package httpx holds the retrying GET helper shared by the HTTP adapters.
package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StatusError reports a non-retryable HTTP status.
type StatusError struct {
	URL    string
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s failed: %s", e.URL, e.Status)
}

// GetWithRetry issues GET requests to target until one succeeds or maxRetries
// retries have been spent. Transport errors, 429 and 5xx are retried with
// exponential backoff (Retry-After is honoured); other non-2xx statuses fail
// immediately. The body of the successful response is returned. Errors never
// carry the query string of target.
func GetWithRetry(ctx context.Context, client *http.Client, target string, header http.Header, maxRetries int) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, scrub(err)
		}
		for k, vs := range header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = scrub(err)
			if attempt < maxRetries && wait(ctx, retryDelay(attempt)) {
				continue
			}
			return nil, lastErr
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			delay := retryDelay(attempt)
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, err := strconv.Atoi(ra); err == nil {
					delay = time.Duration(secs) * time.Second
				}
			}
			_ = resp.Body.Close()
			lastErr = &StatusError{URL: redact(target), Status: resp.Status, Code: resp.StatusCode}
			if attempt < maxRetries && wait(ctx, delay) {
				continue
			}
			return nil, lastErr
		}

		if resp.StatusCode >= 300 {
			_ = resp.Body.Close()
			return nil, &StatusError{URL: redact(target), Status: resp.Status, Code: resp.StatusCode}
		}

		payload, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err
			if attempt < maxRetries && wait(ctx, retryDelay(attempt)) {
				continue
			}
			return nil, lastErr
		}
		return payload, nil
	}
	return nil, lastErr
}

func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	base := 200 * time.Millisecond
	// exponential backoff capped at 5s
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

// wait sleeps for d and reports false if ctx ended first.
func wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// redact drops the query string, which carries API credentials.
func redact(rawURL string) string {
	base, _, _ := strings.Cut(rawURL, "?")
	return base
}

// scrub redacts the URL embedded in transport errors.
func scrub(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = redact(ue.URL)
	}
	return err
}
