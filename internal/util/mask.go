// Package util contiene helpers chicos sin dependencias de dominio.
package util

import (
	"net/url"
	"strings"
)

// MaskEmail oculta la mayor parte de un email para logs: ana@shop.com -> a…@s….com
func MaskEmail(s string) string {
	s = strings.TrimSpace(s)
	i := strings.IndexByte(s, '@')
	if i <= 0 {
		if s == "" {
			return ""
		}
		if len(s) <= 3 {
			return "***"
		}
		return s[:1] + "…" + s[len(s)-1:]
	}
	user, dom := s[:i], s[i+1:]
	if len(user) > 1 {
		user = user[:1] + "…"
	}
	dparts := strings.Split(dom, ".")
	if len(dparts) > 0 && len(dparts[0]) > 1 {
		dparts[0] = dparts[0][:1] + "…"
	}
	return user + "@" + strings.Join(dparts, ".")
}

// MaskDSN redacta la password de una connection string URL.
// Si no es una URL (DSN key=value) devuelve "***".
func MaskDSN(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return ""
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return "***"
	}
	return u.Redacted()
}
