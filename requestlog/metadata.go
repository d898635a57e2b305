package requestlog

import (
	"strings"
)

// Metadata is the header-like mapping attached to a Request. Keys are
// case-insensitive; they are lowercased on every access so callers can use
// the canonical names from common/headers without caring about casing.
type Metadata map[string][]string

func NewMetadata(m map[string]string) Metadata {
	md := make(Metadata, len(m))
	for k, val := range m {
		key := strings.ToLower(k)
		md[key] = append(md[key], val)
	}
	return md
}

func (md Metadata) Copy() Metadata {
	out := make(Metadata, len(md))
	for k, v := range md {
		out[k] = copyOf(v)
	}
	return out
}

// Get obtains the values for a given key.
//
// k is converted to lowercase before searching in md.
func (md Metadata) Get(k string) []string {
	k = strings.ToLower(k)
	return md[k]
}

// First returns the first value for a key, or def when the key is absent or
// has no values. Lookups never fail; this is the defaulting accessor the
// enricher relies on.
func (md Metadata) First(k, def string) string {
	if vals := md.Get(k); len(vals) > 0 && vals[0] != "" {
		return vals[0]
	}
	return def
}

// Set sets the value of a given key with a slice of values.
//
// k is converted to lowercase before storing in md.
func (md Metadata) Set(k string, vals ...string) {
	if len(vals) == 0 {
		return
	}
	k = strings.ToLower(k)
	md[k] = vals
}

// Append adds the values to key k, not overwriting what was already stored at
// that key.
//
// k is converted to lowercase before storing in md.
func (md Metadata) Append(k string, vals ...string) {
	if len(vals) == 0 {
		return
	}
	k = strings.ToLower(k)
	md[k] = append(md[k], vals...)
}

// Delete removes the values for a given key k which is converted to lowercase
// before removing it from md.
func (md Metadata) Delete(k string) {
	k = strings.ToLower(k)
	delete(md, k)
}

func copyOf(v []string) []string {
	vals := make([]string, len(v))
	copy(vals, v)
	return vals
}
