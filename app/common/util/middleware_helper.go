package util

import (
	"net"
	"net/http"
	"strings"
)

// ClientKey identifies the caller for per-client quotas. It is the peer host,
// unless the peer is a private or loopback proxy, in which case it is the last
// X-Forwarded-For hop that proxy appended. Earlier hops are client supplied.
func ClientKey(r *http.Request) string {
	peer := hostOf(r.RemoteAddr)
	ip := net.ParseIP(peer)
	if ip == nil || !(ip.IsPrivate() || ip.IsLoopback()) {
		if peer == "" {
			return "unknown"
		}
		return peer
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	if last := hostOf(hops[len(hops)-1]); last != "" {
		return last
	}
	return peer
}

func hostOf(addr string) string {
	addr = strings.TrimSpace(addr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
