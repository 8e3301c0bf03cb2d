package middleware

import (
	"net/http"

	"github.com/eezystore/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// DefaultMaxBodySize caps request bodies when no limit is configured.
// Mirrors the http.max_body_size config default.
const DefaultMaxBodySize int64 = 10 << 20

// BodyLimit rejects oversized request bodies before a handler reads them.
// Storefront payloads are cart lines and addresses, so the cap is generous.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse("REQUEST_TOO_LARGE", "Request body exceeds maximum allowed size"))
			return
		}

		// Chunked uploads carry no Content-Length; cap those while streaming
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
