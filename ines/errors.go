package ines

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Load-time error kinds. These are the only errors the emulator core ever
// reports; everything past a successful Load runs without recoverable
// errors (see the top-level design notes on error handling).
var (
	ErrBadMagic          = errors.New("ines: missing \"NES\\x1a\" magic")
	ErrNES2Unsupported   = errors.New("ines: NES 2.0 headers are not supported")
	ErrShortRead         = errors.New("ines: stream ended before payload was fully read")
	ErrUnsupportedMapper = errors.New("ines: unsupported mapper number")
)

// LoadError wraps one of the sentinel errors above with the offending
// mapper number or byte count, so callers can both errors.Is against the
// kind and print a useful message.
type LoadError struct {
	Kind error
	Detail string
}

func (e *LoadError) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Detail
}

func (e *LoadError) Unwrap() error { return e.Kind }

func wrapf(kind error, format string, args ...any) error {
	return &LoadError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
