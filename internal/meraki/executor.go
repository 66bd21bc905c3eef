package meraki

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/martinsuchenak/clientusage/internal/log"
)

// Clock abstracts waiting so retry behavior is testable with a fake clock.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Executor issues dashboard requests with rate-limit-aware retries. Every
// outbound call in the application goes through one shared instance so the
// enforced pacing is common to all workers.
type Executor struct {
	client     *http.Client
	pause      time.Duration
	maxRetries int
	clock      Clock
}

// NewExecutor returns an executor with the given retry policy.
func NewExecutor(pause time.Duration, maxRetries int) *Executor {
	return &Executor{
		client:     &http.Client{Timeout: 30 * time.Second},
		pause:      pause,
		maxRetries: maxRetries,
		clock:      realClock{},
	}
}

// Do issues the request. A 429 response pauses and retries up to MaxRetries
// attempts, honoring a Retry-After header when present; exhaustion yields a
// *RateLimitError. Any other non-2xx status or transport failure yields a
// *RequestError without retry. The caller owns the response body on success.
func (e *Executor) Do(req *http.Request) (*http.Response, error) {
	path := req.URL.Path
	for attempt := 1; ; attempt++ {
		resp, err := e.client.Do(req)
		if err != nil {
			return nil, &RequestError{Path: path, Err: err}
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			drain(resp)
			if attempt >= e.maxRetries {
				return nil, &RateLimitError{Path: path, Attempts: attempt}
			}
			delay := e.pause
			if ra := retryAfter(resp); ra > 0 {
				delay = ra
			}
			log.Warn("rate limited, backing off", "path", path, "attempt", attempt, "delay", delay)
			select {
			case <-req.Context().Done():
				return nil, &RequestError{Path: path, Err: req.Context().Err()}
			case <-e.clock.After(delay):
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return nil, &RequestError{
				Path:       path,
				StatusCode: resp.StatusCode,
				Body:       strings.TrimSpace(string(body)),
			}
		}

		return resp, nil
	}
}

func retryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}
