package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// NormalizeEmail is the form addresses are stored and compared in.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type EmailRule struct {
	Required string
	Format   string
}

func (c *Collector) Email(b Body, key string, rule EmailRule) (string, bool) {
	s, isString := b.String(key)
	s = strings.TrimSpace(s)
	if !isString || s == "" {
		c.Add(rule.Required)
		return "", false
	}
	if !IsEmail(s) {
		c.Add(rule.Format)
		return "", false
	}
	return NormalizeEmail(s), true
}
