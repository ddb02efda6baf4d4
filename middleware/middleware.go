package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"store-admin-service/internal/auth"
	"store-admin-service/pkg/ctxmanage"
	"store-admin-service/pkg/logkey"

	"github.com/gin-gonic/gin"
)

type Mid struct {
	keys *auth.Keys
}

func NewMid(keys *auth.Keys) (*Mid, error) {
	if keys == nil {
		return nil, errors.New("auth keys not provided")
	}
	return &Mid{keys: keys}, nil
}

// Authentication verifies the Authorization header and puts the verified
// claims in the request context under auth.ClaimsKey.
func (m *Mid) Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceId := ctxmanage.GetTraceIdOfRequest(c)

		authHeader := c.Request.Header.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			slog.Error("authorization header is malformed or missing", slog.String(logkey.TraceID, traceId))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be in the format Bearer {token}"})
			return
		}

		claims, err := m.keys.ValidateToken(parts[1])
		if err != nil {
			slog.Error("token validation failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), auth.ClaimsKey, claims)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
