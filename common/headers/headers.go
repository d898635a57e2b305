package headers

// Request metadata keys. These follow the CGI-style names exposed by the
// request metadata mapping, which is how log formatters reference them.
const (
	// MetaRemoteAddr is the remote IP address of the client connection,
	// after any trusted proxy headers have been resolved.
	MetaRemoteAddr = "REMOTE_ADDR"

	// MetaForwardedFor carries the original client chain when the request
	// passed through one or more proxies or load balancers.
	MetaForwardedFor = "X-Forwarded-For"

	// MetaServerProtocol is the protocol version the server spoke with the
	// client (e.g. HTTP/1.1, HTTP/2.0).
	MetaServerProtocol = "SERVER_PROTOCOL"

	// MetaUserAgent is the user agent string provided by the client.
	MetaUserAgent = "User-Agent"
)

// Cookie names read by the enricher.
const (
	// CookieUUID identifies the browser installation across sessions.
	CookieUUID = "uuid"

	// CookieSessionID is the server-side session identifier. Only its
	// truncated hash ever reaches log sinks or upstream services.
	CookieSessionID = "sessionid"
)

// Request Identification Headers
const (
	// HeaderXRequestID is used to uniquely identify individual HTTP requests
	// for logging, debugging, and tracking purposes across the application
	HeaderXRequestID = "x-request-id"

	// HeaderXSessionHash carries the truncated session id hash to upstream
	// services so their logs can be correlated with ours without exposing
	// the raw session id
	HeaderXSessionHash = "x-session-hash"
)
