package llm

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey  = errors.New("api key is required")
	ErrAuthFailed     = errors.New("authentication failed")
	ErrQuotaExceeded  = errors.New("credit quota exceeded")
	ErrRateLimited    = errors.New("rate limited")
	ErrUnavailable    = errors.New("provider unavailable")
	ErrEmptyResponse  = errors.New("no response choices returned")
	ErrContextTooLong = errors.New("context too long")
)

// UserError wraps errors with user-friendly messages
type UserError struct {
	Message string
	Hint    string
	Err     error
}

func (e *UserError) Error() string {
	msg := e.Message
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n\nDetails: %v", e.Err)
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// WrapError converts OpenRouter API errors to user-friendly messages
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrMissingAPIKey) || errors.Is(err, ErrAuthFailed) {
		return &UserError{
			Message: "OpenRouter authentication failed",
			Hint:    "Set OPENROUTER_API_KEY to a valid key from https://openrouter.ai/keys.",
			Err:     err,
		}
	}

	if errors.Is(err, ErrQuotaExceeded) {
		return &UserError{
			Message: "OpenRouter credits exhausted",
			Hint:    "Top up your OpenRouter account or switch OPENROUTER_MODEL to a free-tier model.",
			Err:     err,
		}
	}

	if errors.Is(err, ErrRateLimited) {
		return &UserError{
			Message: "OpenRouter rate limit hit",
			Hint:    "Wait a moment and retry, or switch OPENROUTER_MODEL to a less contended model.",
			Err:     err,
		}
	}

	if errors.Is(err, ErrUnavailable) {
		return &UserError{
			Message: "OpenRouter is unavailable",
			Hint:    "Check https://status.openrouter.ai and retry shortly.",
			Err:     err,
		}
	}

	return err
}
