package validators

import (
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "github.com/oscar503sv/gestion-de-proyectos/internal/errors"
)

// Collector accumulates every violation found in a request, in the order
// the checks ran.
type Collector struct {
	messages  []string
	forbidden bool
}

func (c *Collector) Add(msg string) {
	c.messages = append(c.messages, msg)
}

func (c *Collector) Addf(format string, args ...any) {
	c.Add(fmt.Sprintf(format, args...))
}

// Forbid records a role or ownership violation. The request then fails
// as 403 instead of 400.
func (c *Collector) Forbid(msg string) {
	c.forbidden = true
	c.Add(msg)
}

func (c *Collector) OK() bool {
	return len(c.messages) == 0
}

func (c *Collector) Err() error {
	if c.OK() {
		return nil
	}
	if c.forbidden {
		return apperrors.Forbidden(c.messages)
	}
	return apperrors.Validation(c.messages)
}

type TextRule struct {
	Min, Max int

	Required string
	TooShort string
	TooLong  string
}

// Text checks a string field and returns it trimmed. The returned value is
// non-empty whenever the field held a non-blank string, even if its length
// was rejected.
func (c *Collector) Text(b Body, key string, rule TextRule) (string, bool) {
	s, isString := b.String(key)
	s = strings.TrimSpace(s)
	if !isString || s == "" {
		c.Add(rule.Required)
		return "", false
	}

	n := utf8.RuneCountInString(s)
	switch {
	case n < rule.Min:
		c.Add(rule.TooShort)
		return s, false
	case rule.Max > 0 && n > rule.Max:
		c.Add(rule.TooLong)
		return s, false
	}
	return s, true
}

// Ref checks that key holds a positive integer id.
func (c *Collector) Ref(b Body, key, invalid string) (uint, bool) {
	id, ok := b.ID(key)
	if !ok {
		c.Add(invalid)
	}
	return id, ok
}

// OneOf checks a string enum field.
func OneOf[T ~string](c *Collector, b Body, key string, values []T, label string) (T, bool) {
	s, _ := b.String(key)
	for _, v := range values {
		if T(s) == v {
			return v, true
		}
	}

	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	c.Addf("%s: %s", label, strings.Join(parts, ", "))
	var zero T
	return zero, false
}
