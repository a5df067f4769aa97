package base

import (
	stdErrors "errors"

	"github.com/pkg/errors"
)

var (
	ErrConfig               = errors.New("config error")
	ErrTransport            = errors.New("transport error")
	ErrMalformedResponse    = errors.New("malformed response")
	ErrVerificationMismatch = errors.New("verification mismatch")
)

func WrapConfigError(err error, message string) error {
	return wrapErrors(err, message, ErrConfig)
}

func WrapTransportError(err error, message string) error {
	return wrapErrors(err, message, ErrTransport)
}

func WrapMalformedError(err error, message string) error {
	return wrapErrors(err, message, ErrMalformedResponse)
}

// NewMalformedError reports an unexpected response shape that has no underlying error.
func NewMalformedError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedResponse, format, args...)
}

func NewVerificationError(expected, removed int) error {
	return errors.Wrapf(ErrVerificationMismatch, "expected %d removed servers, api reported %d", expected, removed)
}

// ErrorKind names the sentinel an error was classified with, "unknown" otherwise.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case stdErrors.Is(err, ErrConfig):
		return "config"
	case stdErrors.Is(err, ErrTransport):
		return "transport"
	case stdErrors.Is(err, ErrMalformedResponse):
		return "malformed"
	case stdErrors.Is(err, ErrVerificationMismatch):
		return "verification"
	}
	return "unknown"
}

func wrapErrors(err error, message string, errs ...error) error {
	if err == nil {
		return nil
	}
	errsJoined := stdErrors.Join(errs...)
	err = stdErrors.Join(errsJoined, err)
	return errors.Wrap(err, message)
}
