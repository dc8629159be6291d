package contract

import "errors"

var (
	ErrConfiguration = errors.New("configuration error")
	ErrNetwork       = errors.New("network error")
	ErrParse         = errors.New("parse error")
	ErrUpstream      = errors.New("upstream error")
	ErrIO            = errors.New("io error")
	ErrValidation    = errors.New("validation failed")
)

// ErrorKind tags a failure in an Outcome.
type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindNetwork       ErrorKind = "network"
	KindParse         ErrorKind = "parse"
	KindUpstream      ErrorKind = "upstream"
	KindIO            ErrorKind = "io"
	KindValidation    ErrorKind = "validation"
	KindUnknown       ErrorKind = "unknown"
)

// KindOf returns the first taxonomy sentinel err wraps. Configuration and
// validation are checked first so they win over transport wrappers.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrParse):
		return KindParse
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	case errors.Is(err, ErrUpstream):
		return KindUpstream
	case errors.Is(err, ErrIO):
		return KindIO
	default:
		return KindUnknown
	}
}
