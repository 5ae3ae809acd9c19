package api

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// ConfigKind tags the primitive held by a ConfigValue.
type ConfigKind int

const (
	ConfigKindInvalid ConfigKind = iota
	ConfigKindBool
	ConfigKindNumber
	ConfigKindString
)

func (k ConfigKind) String() string {
	switch k {
	case ConfigKindBool:
		return "bool"
	case ConfigKindNumber:
		return "number"
	case ConfigKindString:
		return "string"
	default:
		return "invalid"
	}
}

// ConfigValue is a boolean, number or string setting.
// The zero value is invalid and refuses to marshal.
type ConfigValue struct {
	kind ConfigKind
	b    bool
	n    float64
	s    string
}

// DeviceConfig maps device-specific setting names to primitive values.
type DeviceConfig map[string]ConfigValue

func BoolValue(v bool) ConfigValue {
	return ConfigValue{kind: ConfigKindBool, b: v}
}

func NumberValue(v float64) ConfigValue {
	return ConfigValue{kind: ConfigKindNumber, n: v}
}

func StringValue(v string) ConfigValue {
	return ConfigValue{kind: ConfigKindString, s: v}
}

func (v ConfigValue) Kind() ConfigKind {
	return v.kind
}

// AsBool returns the value and true if v holds a boolean.
func (v ConfigValue) AsBool() (bool, bool) {
	return v.b, v.kind == ConfigKindBool
}

// AsNumber returns the value and true if v holds a number.
func (v ConfigValue) AsNumber() (float64, bool) {
	return v.n, v.kind == ConfigKindNumber
}

// AsString returns the value and true if v holds a string.
func (v ConfigValue) AsString() (string, bool) {
	return v.s, v.kind == ConfigKindString
}

func (v ConfigValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ConfigKindBool:
		return json.Marshal(v.b)
	case ConfigKindNumber:
		return json.Marshal(v.n)
	case ConfigKindString:
		return json.Marshal(v.s)
	default:
		return nil, errors.New("config value has no kind")
	}
}

func (v *ConfigValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty config value")
	}

	switch c := data[0]; {
	case c == 't' || c == 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return errors.Wrap(err, "decode bool config value")
		}
		*v = BoolValue(b)
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Wrap(err, "decode string config value")
		}
		*v = StringValue(s)
	case c == '-' || (c >= '0' && c <= '9'):
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return errors.Wrap(err, "decode number config value")
		}
		*v = NumberValue(n)
	default:
		return errors.Errorf("config value must be a bool, number or string, got %s", data)
	}

	return nil
}
