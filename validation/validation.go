// Package validation checks request payloads for rooms and bookings before
// anything is written. Every field is evaluated so a single response lists
// all violations.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrMalformedPayload is returned by DecodeBody when the body is not a JSON object.
var ErrMalformedPayload = errors.New("payload is not a JSON object")

// Input is a request body keyed by field name, left undecoded so type
// violations surface as field errors rather than decode failures.
type Input map[string]json.RawMessage

// DecodeBody turns a request body into Input. An empty body is an empty object.
func DecodeBody(body []byte) (Input, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Input{}, nil
	}
	var in Input
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if in == nil {
		// literal null
		return Input{}, nil
	}
	return in, nil
}

// Errors collects messages per field in the order fields were checked.
type Errors struct {
	fields   []string
	messages map[string][]string
}

func (e *Errors) Add(field, message string) {
	if e.messages == nil {
		e.messages = make(map[string][]string)
	}
	if _, ok := e.messages[field]; !ok {
		e.fields = append(e.fields, field)
	}
	e.messages[field] = append(e.messages[field], message)
}

func (e *Errors) Has(field string) bool {
	_, ok := e.messages[field]
	return ok
}

func (e *Errors) Empty() bool {
	return len(e.fields) == 0
}

// Fields returns the failing field names in evaluation order.
func (e *Errors) Fields() []string {
	return append([]string(nil), e.fields...)
}

// Map returns field → messages, the shape of the "errors" response member.
func (e *Errors) Map() map[string][]string {
	out := make(map[string][]string, len(e.messages))
	for field, msgs := range e.messages {
		out[field] = append([]string(nil), msgs...)
	}
	return out
}

// Message summarises the failure: the first message, plus a count of the rest.
func (e *Errors) Message() string {
	if e.Empty() {
		return ""
	}
	first := e.messages[e.fields[0]][0]
	total := 0
	for _, msgs := range e.messages {
		total += len(msgs)
	}
	rest := total - 1
	switch {
	case rest == 1:
		return first + " (and 1 more error)"
	case rest > 1:
		return fmt.Sprintf("%s (and %d more errors)", first, rest)
	}
	return first
}

func (e *Errors) Error() string {
	return e.Message()
}

// orNil keeps a typed nil *Errors from leaking into an error interface.
func (e *Errors) orNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func label(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func msgRequired(field string) string {
	return fmt.Sprintf("The %s field is required.", label(field))
}

func msgString(field string) string {
	return fmt.Sprintf("The %s field must be a string.", label(field))
}

func msgMax(field string, max int) string {
	return fmt.Sprintf("The %s field must not be greater than %d characters.", label(field), max)
}

func msgUnique(field string) string {
	return fmt.Sprintf("The %s has already been taken.", label(field))
}

func msgNumeric(field string) string {
	return fmt.Sprintf("The %s field must be a number.", label(field))
}

func msgMin(field string, min int) string {
	return fmt.Sprintf("The %s field must be at least %d.", label(field), min)
}

func msgBoolean(field string) string {
	return fmt.Sprintf("The %s field must be true or false.", label(field))
}

func msgExists(field string) string {
	return fmt.Sprintf("The selected %s is invalid.", label(field))
}

func msgDate(field string) string {
	return fmt.Sprintf("The %s field must be a valid date.", label(field))
}

func msgAfter(field, other string) string {
	return fmt.Sprintf("The %s field must be a date after %s.", label(field), label(other))
}

func msgIn(field string) string {
	return fmt.Sprintf("The selected %s is invalid.", label(field))
}

// value decodes a field. Missing fields, null, blank strings and empty arrays
// all report present == false.
func (in Input) value(field string) (v any, present bool) {
	raw, ok := in[field]
	if !ok {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	switch t := v.(type) {
	case nil:
		return nil, false
	case string:
		t = strings.TrimSpace(t)
		if t == "" {
			return nil, false
		}
		return t, true
	case []any:
		if len(t) == 0 {
			return nil, false
		}
	}
	return v, true
}

// requiredString applies required|string|max and returns the trimmed value.
func requiredString(in Input, errs *Errors, field string, max int) (string, bool) {
	v, ok := in.value(field)
	if !ok {
		errs.Add(field, msgRequired(field))
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		errs.Add(field, msgString(field))
		return "", false
	}
	if utf8.RuneCountInString(s) > max {
		errs.Add(field, msgMax(field, max))
		return s, false
	}
	return s, true
}

func parseNumber(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case string:
		f, err = strconv.ParseFloat(t, 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case json.Number:
		switch t.String() {
		case "1":
			return true, true
		case "0":
			return false, true
		}
	case string:
		switch t {
		case "1":
			return true, true
		case "0":
			return false, true
		}
	}
	return false, false
}

func parseID(v any) (uint, bool) {
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = t
	default:
		return 0, false
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 || id > math.MaxUint32 {
		return 0, false
	}
	return uint(id), true
}

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateTime,
}

// parseDate accepts a calendar date or a timestamp and returns the calendar
// date at UTC midnight, the granularity bookings are stored at.
func parseDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
