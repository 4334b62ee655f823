package generator

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidCount is returned when the requested line count is negative or
	// larger than the source.
	ErrInvalidCount = errors.New("generator: invalid line count")
	// ErrContractViolation is returned by generators built with
	// WithContractChecks when an injected strategy breaks its contract.
	ErrContractViolation = errors.New("generator: strategy contract violation")
)

func invalidCount(n, size int) error {
	err := errors.Wrapf(ErrInvalidCount, "count %d outside [0, %d]", n, size)
	return errors.WithHintf(err, "request between 0 and %d lines", size)
}
