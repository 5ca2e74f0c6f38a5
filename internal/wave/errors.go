package wave

import "github.com/pkg/errors"

var (
	// ErrInvalidConfig is the cause of every configuration error returned by
	// Config.Validate and the constructors in this package.
	ErrInvalidConfig = errors.New("invalid wave configuration")

	// ErrNoNodes reports that a successor node was requested before any
	// node existed.
	ErrNoNodes = errors.New("no existing wave nodes")
)

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidConfig, format, args...)
}
