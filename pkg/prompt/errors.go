package prompt

import "github.com/cockroachdb/errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoChoices is returned when the wizard has nothing to offer for a
	// question.
	ErrNoChoices = errors.New("prompt: no choices available")
)
