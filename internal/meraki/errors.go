package meraki

import "fmt"

// RateLimitError is returned when a request still receives 429 responses
// after exhausting every retry. It is fatal to the resource being fetched,
// never to the run; callers log it and move on.
type RateLimitError struct {
	Path     string
	Attempts int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s after %d attempts", e.Path, e.Attempts)
}

// RequestError is returned for transport failures and non-2xx responses
// unrelated to rate limiting. These are not retried.
type RequestError struct {
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request %s failed: %v", e.Path, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("request %s failed: status %d: %s", e.Path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("request %s failed: status %d", e.Path, e.StatusCode)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
