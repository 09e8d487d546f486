// Package domain defines the failure taxonomy of the pricechart pipeline.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind tags a pipeline failure for the calling layer.
type ErrorKind string

const (
	KindUnknown    ErrorKind = "UnknownError"
	KindTransport  ErrorKind = "TransportError"
	KindDecode     ErrorKind = "DecodeError"
	KindValidation ErrorKind = "ValidationError"
)

// TransportKind classifies an outbound fetch failure.
type TransportKind string

const (
	TransportHTTPStatus TransportKind = "HttpStatusError"
	TransportConnection TransportKind = "ConnectionError"
	TransportTimeout    TransportKind = "TimeoutError"
	TransportOther      TransportKind = "OtherTransportError"
)

// ErrUnknownColumn is wrapped when a selected column does not exist in the dataset.
var ErrUnknownColumn = errors.New("unknown column")

// TransportError reports a failed fetch. No retry has been attempted.
type TransportError struct {
	Kind       TransportKind
	DatasetID  string
	StatusCode int // set only for TransportHTTPStatus
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Kind == TransportHTTPStatus {
		return fmt.Sprintf("fetch dataset %q: http %d: %s", e.DatasetID, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("fetch dataset %q: %s", e.DatasetID, e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a payload that cannot be turned into a Table.
type DecodeError struct {
	DatasetID string
	Message   string
	Err       error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode dataset %q: %s: %v", e.DatasetID, e.Message, e.Err)
	}
	return fmt.Sprintf("decode dataset %q: %s", e.DatasetID, e.Message)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError reports user input rejected before filtering.
// Values lists every offending input so a single error covers the whole request.
type ValidationError struct {
	Field   string
	Values  []string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	quoted := make([]string, 0, len(e.Values))
	for _, v := range e.Values {
		quoted = append(quoted, fmt.Sprintf("%q", v))
	}
	return fmt.Sprintf("invalid %s %s: %s", e.Field, strings.Join(quoted, ", "), e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// KindOf returns the tag of err, or KindUnknown for errors outside the taxonomy.
func KindOf(err error) ErrorKind {
	var te *TransportError
	var de *DecodeError
	var ve *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &te):
		return KindTransport
	case errors.As(err, &de):
		return KindDecode
	case errors.As(err, &ve):
		return KindValidation
	default:
		return KindUnknown
	}
}
