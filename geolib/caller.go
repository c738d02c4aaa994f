package geolib

import (
	"context"
	"net"
	"net/http"
)

type callerIPKey struct{}

// WithCallerIP attaches an address of the current visitor to the
// context. Locator uses it when it is asked to resolve an empty
// address.
func WithCallerIP(ctx context.Context, ip net.IP) context.Context {
	return context.WithValue(ctx, callerIPKey{}, ip)
}

// CallerIP returns an address attached by WithCallerIP or nil.
func CallerIP(ctx context.Context) net.IP {
	if ip, ok := ctx.Value(callerIPKey{}).(net.IP); ok {
		return ip
	}

	return nil
}

// RemoteIP extracts a visitor address from a remote address of the
// request. Proxy headers are taken into account only if
// Options.TrustProxyHeaders is set.
func RemoteIP(req *http.Request) net.IP {
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		host = req.RemoteAddr
	}

	return net.ParseIP(host)
}
