package api

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ParameterLocation is the part of the request a rejected parameter came from.
type ParameterLocation string

const (
	InBody    ParameterLocation = "body"
	InQuery   ParameterLocation = "query"
	InParams  ParameterLocation = "params"
	InCookies ParameterLocation = "cookies"
	InHeaders ParameterLocation = "headers"
)

func (l *ParameterLocation) UnmarshalText(text []byte) error {
	switch loc := ParameterLocation(text); loc {
	case InBody, InQuery, InParams, InCookies, InHeaders:
		*l = loc

		return nil
	default:
		return errors.Errorf("unknown parameter location %q", text)
	}
}

// ParameterValidationError describes one rejected request parameter.
// NestedErrors describes failures inside a composite value and may nest
// to any depth.
type ParameterValidationError struct {
	Msg          string                     `json:"msg"`
	Param        string                     `json:"param"`
	Value        json.RawMessage            `json:"value,omitempty"` // Offending value, as sent back by the server
	Location     ParameterLocation          `json:"location"`
	NestedErrors []ParameterValidationError `json:"nestedErrors,omitempty"`
}
