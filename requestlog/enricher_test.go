package requestlog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustcentric/requestlog/requestlog"
)

var allKeys = []string{
	requestlog.KeyRequestMethod,
	requestlog.KeyPathInfo,
	requestlog.KeyUsername,
	requestlog.KeyOrgID,
	requestlog.KeyUUID,
	requestlog.KeySessionID,
	requestlog.KeySessionIDHashed,
	requestlog.KeyRemoteAddr,
	requestlog.KeyRemoteXFF,
	requestlog.KeyServerProtocol,
	requestlog.KeyHTTPUserAgent,
}

func enrich(t *testing.T, req *requestlog.Request) requestlog.MapRecord {
	t.Helper()
	rec := requestlog.MapRecord{}
	ok := requestlog.NewEnricher(req).Enrich(rec)
	require.True(t, ok, "Enrich must always return true")
	return rec
}

func TestEnrichNoRequest(t *testing.T) {
	rec := enrich(t, nil)

	require.Len(t, rec, requestlog.FieldCount)
	for _, key := range allKeys {
		assert.Equal(t, "-", rec[key], "field %s", key)
	}
}

func TestEnrichLoginScenario(t *testing.T) {
	// POST /login with only a session cookie and a remote address.
	req := &requestlog.Request{
		Method:  "POST",
		Path:    "/login",
		Cookies: map[string]string{"sessionid": "abc123"},
		Meta:    requestlog.NewMetadata(map[string]string{"REMOTE_ADDR": "10.0.0.1"}),
	}

	rec := enrich(t, req)

	want := requestlog.MapRecord{
		requestlog.KeyRequestMethod:   "POST",
		requestlog.KeyPathInfo:        "/login",
		requestlog.KeyUsername:        "-",
		requestlog.KeyOrgID:           "-",
		requestlog.KeyUUID:            "-",
		requestlog.KeySessionID:       "abc123",
		requestlog.KeySessionIDHashed: "6367c48", // sha1("abc123")[:7]
		requestlog.KeyRemoteAddr:      "10.0.0.1",
		requestlog.KeyRemoteXFF:       "-",
		requestlog.KeyServerProtocol:  "-",
		requestlog.KeyHTTPUserAgent:   "-",
	}
	assert.Equal(t, want, rec)
}

func TestEnrichUserVariants(t *testing.T) {
	tests := []struct {
		name         string
		user         *requestlog.User
		wantUsername string
		wantOrgID    string
	}{
		{
			name:         "no user",
			user:         nil,
			wantUsername: "-",
			wantOrgID:    "-",
		},
		{
			name:         "anonymous user with org data",
			user:         requestlog.Anonymous(),
			wantUsername: "-",
			wantOrgID:    "-",
		},
		{
			name:         "authenticated without org",
			user:         requestlog.Authenticated("alice", nil),
			wantUsername: "alice",
			wantOrgID:    "-",
		},
		{
			name:         "authenticated with org without id",
			user:         requestlog.Authenticated("alice", &requestlog.Organization{}),
			wantUsername: "alice",
			wantOrgID:    "-",
		},
		{
			name:         "authenticated with org id",
			user:         requestlog.Authenticated("alice", &requestlog.Organization{ID: 42}),
			wantUsername: "alice",
			wantOrgID:    "42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := enrich(t, &requestlog.Request{Method: "GET", Path: "/", User: tt.user})
			assert.Equal(t, tt.wantUsername, rec[requestlog.KeyUsername])
			assert.Equal(t, tt.wantOrgID, rec[requestlog.KeyOrgID])
		})
	}
}

func TestEnrichAnonymousIgnoresOrganization(t *testing.T) {
	// org_id must never be derived when the user is anonymous, even if the
	// identity object carries organization data.
	user := requestlog.Anonymous()
	user.Organization = &requestlog.Organization{ID: 42}

	rec := enrich(t, &requestlog.Request{User: user})

	assert.Equal(t, "-", rec[requestlog.KeyUsername])
	assert.Equal(t, "-", rec[requestlog.KeyOrgID])
}

func TestEnrichSession(t *testing.T) {
	tests := []struct {
		name       string
		cookies    map[string]string
		wantID     string
		wantHashed string
	}{
		{
			name:       "no cookies",
			cookies:    nil,
			wantID:     "-",
			wantHashed: "-",
		},
		{
			name:       "session cookie present",
			cookies:    map[string]string{"sessionid": "s3ss10n"},
			wantID:     "s3ss10n",
			wantHashed: "6c197e6",
		},
		{
			name:       "unrelated cookies only",
			cookies:    map[string]string{"theme": "dark"},
			wantID:     "-",
			wantHashed: "-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := enrich(t, &requestlog.Request{Cookies: tt.cookies})
			assert.Equal(t, tt.wantID, rec[requestlog.KeySessionID])
			assert.Equal(t, tt.wantHashed, rec[requestlog.KeySessionIDHashed])
		})
	}
}

func TestEnrichMetadataIsCaseInsensitive(t *testing.T) {
	req := &requestlog.Request{
		Meta: requestlog.NewMetadata(map[string]string{
			"remote_addr":     "192.0.2.7",
			"x-forwarded-for": "203.0.113.9",
			"server_protocol": "HTTP/1.1",
			"USER-AGENT":      "curl/8.0",
		}),
	}

	rec := enrich(t, req)

	assert.Equal(t, "192.0.2.7", rec[requestlog.KeyRemoteAddr])
	assert.Equal(t, "203.0.113.9", rec[requestlog.KeyRemoteXFF])
	assert.Equal(t, "HTTP/1.1", rec[requestlog.KeyServerProtocol])
	assert.Equal(t, "curl/8.0", rec[requestlog.KeyHTTPUserAgent])
}

func TestEnrichUUIDCookie(t *testing.T) {
	rec := enrich(t, &requestlog.Request{Cookies: map[string]string{"uuid": "device-7"}})
	assert.Equal(t, "device-7", rec[requestlog.KeyUUID])
}

func TestFieldsMatchEnrich(t *testing.T) {
	req := &requestlog.Request{
		Method:  "GET",
		Path:    "/health",
		User:    requestlog.Authenticated("bob", &requestlog.Organization{ID: 7}),
		Cookies: map[string]string{"sessionid": "hello", "uuid": "u-1"},
		Meta:    requestlog.NewMetadata(map[string]string{"REMOTE_ADDR": "10.1.2.3"}),
	}

	rec := enrich(t, req)

	fields := requestlog.NewEnricher(req).Fields()
	require.Len(t, fields, requestlog.FieldCount)

	got := map[string]string{}
	for _, f := range fields {
		got[f.Key] = f.String
	}
	assert.Equal(t, map[string]string(rec), got)
}

func TestHashSessionID(t *testing.T) {
	assert.Equal(t, "aaf4c61", requestlog.HashSessionID("hello"))
	assert.Equal(t, "-", requestlog.HashSessionID("-"))
	assert.Equal(t, "-", requestlog.HashSessionID(""))
}
