package validators

import (
	"strings"
	"time"
)

// Layouts accepted as ISO8601. Values without a zone are read in the
// location of the reference clock.
var dateLayouts = []struct {
	layout string
	zoned  bool
}{
	{"2006-01-02", false},
	{"2006-01-02T15:04:05Z07:00", true},
	{"2006-01-02T15:04Z07:00", true},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02T15:04", false},
	{"2006-01-02 15:04:05", false},
	{"2006-01", false},
	{"2006", false},
}

// ParseDate parses an ISO8601 date or date-time.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, l := range dateLayouts {
		var (
			t   time.Time
			err error
		)
		if l.zoned {
			t, err = time.Parse(l.layout, s)
		} else {
			t, err = time.ParseInLocation(l.layout, s, loc)
		}
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

type DateRule struct {
	Required string
	Format   string
	Past     string
}

// Date checks an ISO8601 field that must not fall before today. It returns
// the value as sent.
func (c *Collector) Date(b Body, key string, rule DateRule, now time.Time) (string, bool) {
	s, isString := b.String(key)
	if !isString || strings.TrimSpace(s) == "" {
		c.Add(rule.Required)
		return "", false
	}

	t, ok := ParseDate(s, now.Location())
	if !ok {
		c.Add(rule.Format)
		return "", false
	}

	if t.Before(StartOfDay(now)) {
		c.Add(rule.Past)
		return "", false
	}
	return s, true
}
