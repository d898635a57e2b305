package requestlog

import (
	"github.com/trustcentric/requestlog/common/logger"
)

// Record is the mutable log record the logging subsystem passes through its
// pipeline. The enricher only needs to set named attributes on it; ownership
// stays with the caller.
type Record interface {
	Set(key, value string)
}

// MapRecord is a map-backed Record for pipelines (and tests) that want the
// enriched attributes as plain key-value pairs.
type MapRecord map[string]string

func (m MapRecord) Set(key, value string) {
	m[key] = value
}

// fieldRecord collects enriched attributes as zap fields.
type fieldRecord struct {
	fields []logger.Field
}

func (r *fieldRecord) Set(key, value string) {
	r.fields = append(r.fields, logger.String(key, value))
}
