package ctxmanage

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TraceIdKey is the gin context key under which the logger middleware
// stores the request trace id.
const TraceIdKey = "trace-id"

// GetTraceIdOfRequest returns the trace id assigned to the request by the
// logger middleware. A request that skipped the middleware (direct handler
// tests) gets one assigned here so log lines are never missing it.
func GetTraceIdOfRequest(c *gin.Context) string {
	traceId := c.GetString(TraceIdKey)
	if traceId == "" {
		traceId = uuid.NewString()
		c.Set(TraceIdKey, traceId)
	}
	return traceId
}
