package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"dms/api"

	"github.com/pkg/errors"
)

// TransportErrorKind separates cancellation from other network failures.
type TransportErrorKind int

const (
	// TransportFailure is a connection, DNS or I/O failure.
	TransportFailure TransportErrorKind = iota + 1
	// TransportCanceled means the caller's context was canceled or timed out.
	TransportCanceled
)

func (k TransportErrorKind) String() string {
	switch k {
	case TransportFailure:
		return "failure"
	case TransportCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// TransportError is a failure below HTTP: no status, no body, only a cause.
type TransportError struct {
	Kind  TransportErrorKind
	Op    string
	Cause error
}

func (e *TransportError) Error() string {
	if e.Kind == TransportCanceled {
		return fmt.Sprintf("dms: %s canceled: %v", e.Op, e.Cause)
	}

	return fmt.Sprintf("dms: %s: %v", e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// APIError is an HTTP failure carrying only a message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dms: api error %d: %s", e.StatusCode, e.Message)
}

// ValidationError is an HTTP failure listing the rejected request parameters.
type ValidationError struct {
	StatusCode int
	Message    string
	Errors     []api.ParameterValidationError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("dms: validation failed %d: %s (%d parameter errors)", e.StatusCode, e.Message, len(e.Errors))
}

// FieldError is one node of a ValidationError tree, flattened for display.
type FieldError struct {
	Location api.ParameterLocation
	Param    string
	Message  string
	Depth    int
	// Parent indexes the enclosing error in the same slice, -1 for top-level errors.
	Parent int
}

// Fields flattens the error tree in pre-order. It walks an explicit stack so
// arbitrarily deep server responses cannot exhaust the goroutine stack.
func (e *ValidationError) Fields() []FieldError {
	type frame struct {
		node   *api.ParameterValidationError
		parent int
		depth  int
	}

	stack := make([]frame, 0, len(e.Errors))
	for i := len(e.Errors) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: &e.Errors[i], parent: -1})
	}

	var fields []FieldError
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		index := len(fields)
		fields = append(fields, FieldError{
			Location: top.node.Location,
			Param:    top.node.Param,
			Message:  top.node.Msg,
			Depth:    top.depth,
			Parent:   top.parent,
		})

		nested := top.node.NestedErrors
		for i := len(nested) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: &nested[i], parent: index, depth: top.depth + 1})
		}
	}

	return fields
}

// PathOf returns the params from the top-level error down to fields[i].
func PathOf(fields []FieldError, i int) []string {
	path := make([]string, fields[i].Depth+1)
	for j := i; j >= 0; j = fields[j].Parent {
		path[fields[j].Depth] = fields[j].Param
	}

	return path
}

// Normalize maps a non-2xx response onto APIError or ValidationError.
// It never fails itself: bodies it cannot read fall back to statusText.
func Normalize(status int, statusText string, body []byte) error {
	if statusText == "" {
		statusText = http.StatusText(status)
	}
	if statusText == "" {
		statusText = fmt.Sprintf("HTTP %d", status)
	}

	var envelope struct {
		Message *string         `json:"message"`
		Errors  json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Message == nil {
		return &APIError{StatusCode: status, Message: statusText}
	}

	if isValidationStatus(status) {
		if params, ok := decodeParameterErrors(envelope.Errors); ok {
			return &ValidationError{
				StatusCode: status,
				Message:    *envelope.Message,
				Errors:     params,
			}
		}
	}

	return &APIError{StatusCode: status, Message: *envelope.Message}
}

func isValidationStatus(status int) bool {
	return status == http.StatusBadRequest || status == http.StatusUnprocessableEntity
}

// decodeParameterErrors accepts only a JSON array of well-formed parameter errors.
func decodeParameterErrors(raw json.RawMessage) ([]api.ParameterValidationError, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}

	params := []api.ParameterValidationError{}
	if err := json.Unmarshal(trimmed, &params); err != nil {
		return nil, false
	}

	return params, true
}

func newTransportError(ctx context.Context, op string, cause error) *TransportError {
	kind := TransportFailure
	if ctx.Err() != nil || errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) {
		kind = TransportCanceled
	}

	return &TransportError{Kind: kind, Op: op, Cause: cause}
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var te *TransportError

	return errors.As(err, &te)
}

// IsCanceled reports whether err is a TransportError caused by cancellation.
func IsCanceled(err error) bool {
	var te *TransportError

	return errors.As(err, &te) && te.Kind == TransportCanceled
}

// AsValidation returns the ValidationError in err's chain, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}

	return nil, false
}

// AsAPIError returns the APIError in err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}

	return nil, false
}
