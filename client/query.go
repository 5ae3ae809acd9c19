package client

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Value is a single query parameter value. The zero Value is absent.
type Value struct {
	present bool
	text    string
}

// String returns a present value holding s verbatim.
func String(s string) Value {
	return Value{present: true, text: s}
}

// Int returns a present value holding n in base 10.
func Int(n int) Value {
	return Value{present: true, text: strconv.Itoa(n)}
}

// Float formats f in its shortest form. Non-finite numbers encode as an empty value.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{present: true}
	}

	return Value{present: true, text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// Bool returns a present value holding "true" or "false".
func Bool(b bool) Value {
	return Value{present: true, text: strconv.FormatBool(b)}
}

// Time formats t as RFC 3339, keeping fractional seconds.
func Time(t time.Time) Value {
	return String(t.Format(time.RFC3339Nano))
}

// Absent returns a value that Encode skips.
func Absent() Value {
	return Value{}
}

// StringPtr is String(*s), or Absent when s is nil.
func StringPtr(s *string) Value {
	if s == nil {
		return Absent()
	}

	return String(*s)
}

// IntPtr is Int(*n), or Absent when n is nil.
func IntPtr(n *int) Value {
	if n == nil {
		return Absent()
	}

	return Int(*n)
}

// TimePtr is Time(*t), or Absent when t is nil.
func TimePtr(t *time.Time) Value {
	if t == nil {
		return Absent()
	}

	return Time(*t)
}

// Present reports whether Encode emits v.
func (v Value) Present() bool {
	return v.present
}

// Param is one key and its value.
type Param struct {
	Key   string
	Value Value
}

// Params is an ordered parameter list. Encode keeps insertion order.
type Params []Param

// Add returns a copy of p with key appended. p itself is left untouched, so
// several queries can be built from one base.
func (p Params) Add(key string, v Value) Params {
	out := make(Params, len(p), len(p)+1)
	copy(out, p)

	return append(out, Param{Key: key, Value: v})
}

// Encode renders p as key=value pairs joined by '&'. Absent values are skipped,
// and an empty or all-absent list yields "".
func Encode(p Params) string {
	var b strings.Builder
	for _, param := range p {
		if !param.Value.present {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escape(param.Key))
		b.WriteByte('=')
		b.WriteString(escape(param.Value.text))
	}

	return b.String()
}

// WithQuery appends the encoded params to path, leaving path untouched when nothing is present.
func WithQuery(path string, p Params) string {
	qs := Encode(p)
	if qs == "" {
		return path
	}

	return path + "?" + qs
}

// escape percent-encodes s, writing spaces as %20 rather than '+'.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
