package beautify

import "errors"

var (
	// ErrInvalidArgument reports a malformed width or replacer passed to
	// Beautify. Nothing has been rendered when it is returned.
	ErrInvalidArgument = errors.New("beautify: invalid argument")

	// ErrUnsupportedValue reports a Go value ValueOf cannot convert, such as
	// a map keyed by structs or a malformed json.Number.
	ErrUnsupportedValue = errors.New("beautify: unsupported value")

	// ErrInvalidJSON reports malformed JSON text given to Decode, DecodeAll or
	// returned by a json.Marshaler.
	ErrInvalidJSON = errors.New("beautify: invalid json")
)
