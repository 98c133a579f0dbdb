package validators

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/oscar503sv/gestion-de-proyectos/internal/errors"
)

// Body is a decoded JSON object kept field by field, so that absent keys,
// nulls and values of the wrong type can each be told apart.
type Body map[string]json.RawMessage

// ParseBody reads a JSON object. An empty payload is an empty Body.
func ParseBody(r io.Reader) (Body, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.ErrInvalidJSON
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Body{}, nil
	}

	var b Body
	if err := json.Unmarshal(raw, &b); err != nil || b == nil {
		return nil, apperrors.ErrInvalidJSON
	}
	return b, nil
}

func (b Body) Has(key string) bool {
	_, ok := b[key]
	return ok
}

// Blank reports a key that is absent, null or an empty string.
func (b Body) Blank(key string) bool {
	raw, ok := b[key]
	if !ok || string(raw) == "null" {
		return true
	}
	s, isString := b.String(key)
	return isString && s == ""
}

// String returns the value when it is a JSON string.
func (b Body) String(key string) (string, bool) {
	raw, ok := b[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// ID returns the value when it is a positive integral JSON number.
func (b Body) ID(key string) (uint, bool) {
	raw, ok := b[key]
	if !ok {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if f <= 0 || f != math.Trunc(f) || f > math.MaxUint32 {
		return 0, false
	}
	return uint(f), true
}

func (b Body) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseID parses a path or query id the way the routes expect: a positive
// base-10 integer.
func ParseID(s string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// RequesterID takes requestedBy from the body and falls back to the query
// string value.
func RequesterID(b Body, query string) (uint, bool) {
	if b.Has("requestedBy") {
		return b.ID("requestedBy")
	}
	return ParseID(query)
}
