package requestlog

import (
	"net"
	"net/http"

	"github.com/trustcentric/requestlog/common/headers"
)

// Organization is the tenant an authenticated user belongs to. An ID of zero
// means the organization has no usable identifier.
type Organization struct {
	ID int64
}

// User is the identity attached to a request. It is a two-state variant:
// anonymous (no usable identity) or authenticated with a username and an
// optional organization. A nil *User means no identity at all, which the
// enricher treats the same as anonymous.
type User struct {
	anonymous    bool
	Username     string
	Organization *Organization
}

// Anonymous returns the unauthenticated identity.
func Anonymous() *User {
	return &User{anonymous: true}
}

// Authenticated returns an identity for a logged-in user. org may be nil.
func Authenticated(username string, org *Organization) *User {
	return &User{Username: username, Organization: org}
}

// IsAnonymous reports whether the user carries no usable identity.
// It is safe to call on a nil receiver.
func (u *User) IsAnonymous() bool {
	return u == nil || u.anonymous
}

// Request is the read-only view of an inbound request that the enricher
// consumes. Every field is optional: the zero value (or a nil Request) is a
// valid "no request context" input, used by background jobs.
type Request struct {
	Method  string
	Path    string
	User    *User
	Cookies map[string]string
	Meta    Metadata
}

// Cookie returns the named cookie value, or def when absent.
func (r *Request) Cookie(name, def string) string {
	if r == nil || r.Cookies == nil {
		return def
	}
	if v, ok := r.Cookies[name]; ok && v != "" {
		return v
	}
	return def
}

// MetaFirst returns the first metadata value for key, or def when absent.
func (r *Request) MetaFirst(key, def string) string {
	if r == nil || r.Meta == nil {
		return def
	}
	return r.Meta.First(key, def)
}

// RequestOption customizes a Request built by FromHTTP.
type RequestOption func(*Request)

// WithUser attaches a resolved identity to the request. FromHTTP cannot do
// this itself; identity lives in whatever auth layer the application uses.
func WithUser(u *User) RequestOption {
	return func(r *Request) {
		r.User = u
	}
}

// FromHTTP builds a Request from a net/http request. Run this after any
// proxy-header middleware so RemoteAddr reflects the real client.
func FromHTTP(req *http.Request, opts ...RequestOption) *Request {
	cookies := make(map[string]string, len(req.Cookies()))
	for _, c := range req.Cookies() {
		cookies[c.Name] = c.Value
	}

	meta := make(Metadata, 4)
	meta.Set(headers.MetaRemoteAddr, remoteAddr(req.RemoteAddr))
	meta.Set(headers.MetaServerProtocol, req.Proto)
	if xff := req.Header.Get(headers.MetaForwardedFor); xff != "" {
		meta.Set(headers.MetaForwardedFor, xff)
	}
	if ua := req.UserAgent(); ua != "" {
		meta.Set(headers.MetaUserAgent, ua)
	}

	r := &Request{
		Method:  req.Method,
		Path:    req.URL.Path,
		Cookies: cookies,
		Meta:    meta,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// remoteAddr strips the port from a host:port remote address. Addresses
// without a port pass through unchanged.
func remoteAddr(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
