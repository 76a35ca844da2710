// Package raw provides a minimal env reader used during bootstrap.
// It has NO dependency on the logger package so the logger can use it
package raw

import (
	"os"
	"strings"
)

var lookupEnv = os.LookupEnv

// Conf is a namespaced view over environment variables (e.g. "LOG_", "TRACING_")
type Conf struct{ prefix string }

// New returns a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix returns a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) value(k string) string {
	v, _ := lookupEnv(c.prefix + k)
	return strings.TrimSpace(v)
}

// Has reports whether the key is set to a non-blank value
func (c Conf) Has(key string) bool { return c.value(key) != "" }

// Get returns the trimmed env var or the provided default if empty
func (c Conf) Get(key, def string) string {
	if v := c.value(key); v != "" {
		return v
	}
	return def
}

// GetBool parses a bool-like env ("1|true|yes|on") with default fallback
func (c Conf) GetBool(key string, def bool) bool {
	switch strings.ToLower(c.value(key)) {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// GetInt parses a non-negative integer with default fallback; non-numeric -> def
func (c Conf) GetInt(key string, def int) int {
	s := c.value(key)
	if s == "" {
		return def
	}
	n := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch < '0' || ch > '9' {
			return def
		}
		n = n*10 + int(ch-'0')
	}
	return n
}
