package requestlog

import (
	"crypto/sha1" //nolint:gosec // not used for integrity, only to shorten session ids in logs
	"encoding/hex"
	"strconv"

	"github.com/trustcentric/requestlog/common/headers"
	"github.com/trustcentric/requestlog/common/logger"
)

// Placeholder is substituted for every attribute that cannot be derived from
// the request.
const Placeholder = "-"

// Attribute names written onto the record. Formatter strings reference these.
const (
	KeyRequestMethod   = "request_method"
	KeyPathInfo        = "path_info"
	KeyUsername        = "username"
	KeyOrgID           = "org_id"
	KeyUUID            = "uuid"
	KeySessionID       = "session_id"
	KeySessionIDHashed = "session_id_hashed"
	KeyRemoteAddr      = "remote_addr"
	KeyRemoteXFF       = "remote_xff"
	KeyServerProtocol  = "server_protocol"
	KeyHTTPUserAgent   = "http_user_agent"
)

// FieldCount is the number of attributes Enrich always writes.
const FieldCount = 11

// sessionHashLen is how many hex characters of the SHA-1 digest are kept.
const sessionHashLen = 7

// Enricher adds request context to log records.
//
// Construct one per request (or with a nil request for background work) and
// run every record through Enrich; after it returns, all attributes named by
// the Key constants are present on the record, with Placeholder standing in
// for anything the request did not provide. Enrich never fails and never
// drops a record.
type Enricher struct {
	req *Request
}

// NewEnricher saves the request for later. req may be nil.
func NewEnricher(req *Request) *Enricher {
	return &Enricher{req: req}
}

// Enrich adds information from the request to the log record. The return
// value is always true: enrichment never filters records out.
func (e *Enricher) Enrich(rec Record) bool {
	req := e.req

	// Basic
	rec.Set(KeyRequestMethod, orPlaceholder(requestMethod(req)))
	rec.Set(KeyPathInfo, orPlaceholder(requestPath(req)))

	// User
	if req != nil && !req.User.IsAnonymous() {
		rec.Set(KeyUsername, orPlaceholder(req.User.Username))
		rec.Set(KeyOrgID, orgID(req.User.Organization))
	} else {
		rec.Set(KeyUsername, Placeholder)
		rec.Set(KeyOrgID, Placeholder)
	}

	// Cookies
	rec.Set(KeyUUID, req.Cookie(headers.CookieUUID, Placeholder))

	// Session
	sessionID := req.Cookie(headers.CookieSessionID, Placeholder)
	rec.Set(KeySessionID, sessionID)
	rec.Set(KeySessionIDHashed, HashSessionID(sessionID))

	// Headers
	rec.Set(KeyRemoteAddr, req.MetaFirst(headers.MetaRemoteAddr, Placeholder))
	rec.Set(KeyRemoteXFF, req.MetaFirst(headers.MetaForwardedFor, Placeholder))
	rec.Set(KeyServerProtocol, req.MetaFirst(headers.MetaServerProtocol, Placeholder))
	rec.Set(KeyHTTPUserAgent, req.MetaFirst(headers.MetaUserAgent, Placeholder))

	return true
}

// Fields runs an enrichment pass and returns the attributes as zap fields,
// ready for logger.ContextWithFields.
func (e *Enricher) Fields() []logger.Field {
	rec := &fieldRecord{fields: make([]logger.Field, 0, FieldCount)}
	e.Enrich(rec)
	return rec.fields
}

// HashSessionID returns the truncated hex SHA-1 digest of a session id, used
// to correlate sessions in logs without exposing the raw id. The digest is
// computed over the raw bytes of the id. Placeholder and empty inputs pass
// through as Placeholder.
func HashSessionID(sessionID string) string {
	if sessionID == Placeholder || sessionID == "" {
		return Placeholder
	}
	sum := sha1.Sum([]byte(sessionID)) //nolint:gosec
	return hex.EncodeToString(sum[:])[:sessionHashLen]
}

func requestMethod(req *Request) string {
	if req == nil {
		return ""
	}
	return req.Method
}

func requestPath(req *Request) string {
	if req == nil {
		return ""
	}
	return req.Path
}

func orgID(org *Organization) string {
	if org == nil || org.ID == 0 {
		return Placeholder
	}
	return strconv.FormatInt(org.ID, 10)
}

func orPlaceholder(v string) string {
	if v == "" {
		return Placeholder
	}
	return v
}
