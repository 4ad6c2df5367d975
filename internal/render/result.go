package render

import (
	"fmt"
	"sort"
	"strings"
)

// Tool backends tag every structured payload with these fields. Everything
// else in the payload is opaque to the dispatcher and meaningful only to the
// card that renders it.
const (
	FieldType   = "result_type"
	FieldSource = "source_api"
	FieldError  = "error"
)

// Input is the two-case dispatcher input: either the raw string a tool
// transport produced, or an already-parsed payload. The zero value is the
// "nothing to render" case.
type Input struct {
	raw      string
	value    map[string]any
	isRaw    bool
	hasValue bool
}

// Text wraps a raw tool reply. It may be a JSON-encoded StructuredResult or
// plain prose; the dispatcher decides which.
func Text(s string) Input {
	return Input{raw: s, isRaw: true}
}

// Value wraps an already-parsed payload. A nil map is treated the same as no
// input at all.
func Value(v map[string]any) Input {
	if v == nil {
		return Input{}
	}
	return Input{value: v, hasValue: true}
}

// Empty reports whether there is nothing to dispatch.
func (in Input) Empty() bool {
	return !in.isRaw && !in.hasValue
}

// IsStructuredResult is the validation predicate: a payload qualifies iff it
// is a non-nil object carrying a non-empty result_type string.
func IsStructuredResult(v map[string]any) bool {
	if v == nil {
		return false
	}
	t, ok := v[FieldType].(string)
	return ok && strings.TrimSpace(t) != ""
}

// Result is a validated StructuredResult. Accessors are tolerant: a missing
// or mistyped field yields a zero value, never a panic, so cards can degrade
// to placeholders instead of crashing on partial payloads.
type Result struct {
	fields map[string]any
}

// NewResult wraps a validated payload. Callers are expected to have checked
// IsStructuredResult first; wrapping an arbitrary map is still safe.
func NewResult(fields map[string]any) Result {
	return Result{fields: fields}
}

// Type returns the normalized discriminator: trimmed and lower-cased to
// absorb inconsistent casing and whitespace across producers.
func (r Result) Type() string {
	return NormalizeKind(r.Str(FieldType))
}

// Source returns the normalized secondary discriminator, if any.
func (r Result) Source() string {
	return NormalizeKind(r.Str(FieldSource))
}

// Err returns the upstream tool error carried by the payload, or "".
func (r Result) Err() string {
	return r.Str(FieldError)
}

// Str returns the string at key, or "" if absent or not a string.
func (r Result) Str(key string) string {
	s, _ := r.fields[key].(string)
	return s
}

// Num returns the number at key. JSON numbers decode as float64.
func (r Result) Num(key string) (float64, bool) {
	switch n := r.fields[key].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// Bool returns the boolean at key, false if absent.
func (r Result) Bool(key string) bool {
	b, _ := r.fields[key].(bool)
	return b
}

// Has reports whether key is present at all.
func (r Result) Has(key string) bool {
	_, ok := r.fields[key]
	return ok
}

// Sub returns the object at key wrapped as a Result. Missing or mistyped
// values yield an empty Result.
func (r Result) Sub(key string) Result {
	m, _ := r.fields[key].(map[string]any)
	return Result{fields: m}
}

// List returns the array of objects at key. Non-object elements are skipped.
func (r Result) List(key string) []Result {
	raw, _ := r.fields[key].([]any)
	if len(raw) == 0 {
		return nil
	}
	out := make([]Result, 0, len(raw))
	for _, el := range raw {
		if m, ok := el.(map[string]any); ok {
			out = append(out, Result{fields: m})
		}
	}
	return out
}

// Strings returns the array of strings at key. Non-string elements are
// stringified with %v so partially malformed lists still display.
func (r Result) Strings(key string) []string {
	raw, _ := r.fields[key].([]any)
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, el := range raw {
		if s, ok := el.(string); ok {
			out = append(out, s)
		} else if el != nil {
			out = append(out, fmt.Sprintf("%v", el))
		}
	}
	return out
}

// Fields returns the payload's keys in sorted order, excluding the
// discriminator fields. Used by the generic card to pretty-print unknown
// shapes deterministically.
func (r Result) Fields() []string {
	keys := make([]string, 0, len(r.fields))
	for k := range r.fields {
		if k == FieldType || k == FieldSource || k == FieldError {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value returns the raw value at key.
func (r Result) Value(key string) any {
	return r.fields[key]
}

// Len returns the number of payload fields.
func (r Result) Len() int {
	return len(r.fields)
}

// NormalizeKind canonicalizes a discriminator for comparison.
func NormalizeKind(kind string) string {
	return strings.ToLower(strings.TrimSpace(kind))
}
