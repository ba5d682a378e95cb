package util

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP resolves the caller IP used as a rate-limit key.
// X-Forwarded-For is taken at face value since the server is expected to sit
// behind a single trusted reverse proxy in durable deployments.
func ClientIP(r *http.Request) string {
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if ip := net.ParseIP(first); ip != nil {
			return ip.String()
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
