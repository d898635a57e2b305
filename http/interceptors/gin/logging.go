package gin

import (
	"bytes"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trustcentric/requestlog/common/logger"
)

type loggingCfg struct {
	debug bool
	trace bool
}

type responseWriterCapture struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriterCapture) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

// RequestLogging emits one summary log line per request when debug is on.
// The line goes through the context logger, so it carries whatever the
// enrichment middleware derived (method, path, user, session hash, ...).
func RequestLogging(cfg loggingCfg) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reqBody, respBody []byte

		// Capture the request body if trace logging is enabled
		if cfg.trace && c.Request.Body != nil {
			bodyBytes, err := io.ReadAll(c.Request.Body)
			if err == nil {
				reqBody = bodyBytes
				// Restore the request body for downstream handlers
				c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
			}
		}

		// Record start time for duration calculation
		start := time.Now()

		// Set up response body capture if trace logging is enabled
		var responseCapture *responseWriterCapture
		if cfg.trace {
			responseCapture = &responseWriterCapture{
				ResponseWriter: c.Writer,
				body:           &bytes.Buffer{},
			}
			c.Writer = responseCapture
		}

		// Proceed to the next middleware or handler
		c.Next()

		if !cfg.debug {
			return
		}

		duration := time.Since(start)
		fields := []logger.Field{
			logger.Int("status", c.Writer.Status()),
			logger.Duration("duration", duration),
			logger.String("component", componentName),
		}
		if cfg.trace && responseCapture != nil {
			respBody = responseCapture.body.Bytes()
			fields = append(fields,
				logger.ByteString("request_body", reqBody),
				logger.ByteString("response_body", respBody),
			)
		}

		// Determine log level based on status code
		logLevel := logger.DebugLevel
		if c.Writer.Status() >= 500 {
			logLevel = logger.ErrorLevel
		} else if c.Writer.Status() >= 400 {
			logLevel = logger.WarnLevel
		}
		logger.FromContext(c.Request.Context()).Log(logLevel, "HTTP request handled", fields...)
	}
}
