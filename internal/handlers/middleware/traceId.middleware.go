package middleware

import (
	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// TraceIDHeader carries the trace ID on both request and response.
	TraceIDHeader = "X-Trace-ID"

	// TraceIDLocalKey is the Fiber locals key holding the trace ID.
	TraceIDLocalKey = "traceID"
)

// TraceID tags every request with a trace ID so a game operation can be
// followed across handler, controller and repository logs. A client-supplied
// X-Trace-ID is reused, otherwise one is generated.
func (m *Middleware) TraceID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := c.Get(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}

		// Echo the trace ID so clients can correlate error reports
		c.Set(TraceIDHeader, traceID)
		c.Locals(TraceIDLocalKey, traceID)

		// Expose it to logger.TraceFromContext in the layers below
		c.SetUserContext(logger.ContextWithTraceID(c.Context(), traceID))

		return c.Next()
	}
}

// GetTraceID returns the request's trace ID; server error responses include
// it so a failed operation can be matched to its log entries.
func GetTraceID(c *fiber.Ctx) string {
	if traceID, ok := c.Locals(TraceIDLocalKey).(string); ok {
		return traceID
	}
	return ""
}
