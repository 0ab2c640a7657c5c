package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/vik9386/backend/internal/common/httpx"
	"github.com/vik9386/backend/internal/config"

	"github.com/gin-gonic/gin"
)

// BodyLimit caps the request body for regular JSON endpoints. Upload routes
// carry their own, larger limit via UploadBodyLimit and are skipped here.
func BodyLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasSuffix(path, "/register") || strings.HasSuffix(path, "/avatar") || strings.HasSuffix(path, "/cover-image") {
			c.Next()
			return
		}

		maxSizeMB := config.Get().Server.MaxBodyMB
		if maxSizeMB <= 0 {
			maxSizeMB = 2
		}
		maxBytes := int64(maxSizeMB) * 1024 * 1024

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// UploadBodyLimit caps multipart upload bodies. Oversized requests with a
// known Content-Length are rejected up front; the reader cap catches the
// rest while streaming.
func UploadBodyLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		maxSizeMB := config.Get().Upload.MaxSizeMB
		if maxSizeMB <= 0 {
			maxSizeMB = 10
		}
		maxBytes := int64(maxSizeMB) * 1024 * 1024

		if c.Request.ContentLength > maxBytes {
			httpx.WriteError(c, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload must not exceed %dMB", maxSizeMB))
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
