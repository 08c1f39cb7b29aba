package cookiejar

import (
	"strings"
	"time"
)

type SameSite uint8

const (
	SameSiteDefault SameSite = iota
	SameSiteLax
	SameSiteStrict
	SameSiteNone
)

// Cookie is a stored cookie. Parsing Set-Cookie headers is up to the caller.
type Cookie struct {
	Name   string
	Value  string
	Domain string
	Path   string

	// Zero means a session cookie that never expires from the jar.
	// Stored cookies come back with the same instant in UTC.
	Expires time.Time

	Secure   bool
	HTTPOnly bool
	// HostOnly cookies only match their exact domain.
	HostOnly bool
	SameSite SameSite
}

// Expired reports whether c has an expiry at or before now.
func (c *Cookie) Expired(now time.Time) bool {
	return !c.Expires.IsZero() && !c.Expires.After(now)
}

func normalizeDomain(domain string) string {
	return strings.ToLower(strings.Trim(domain, "."))
}

func normalizePath(path string) string {
	if path == "" || path[0] != '/' {
		return "/"
	}

	return path
}

// domainMatch implements the RFC 6265 domain-match of host against c.
func (c *Cookie) domainMatch(host string) bool {
	if host == c.Domain {
		return true
	}

	if c.HostOnly {
		return false
	}

	return strings.HasSuffix(host, c.Domain) && host[len(host)-len(c.Domain)-1] == '.'
}
