package middleware

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/vik9386/backend/internal/common/httpx"
	"github.com/vik9386/backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const stagedKeyPrefix = "staged:"

// StageUploads saves the named multipart file fields into the configured
// temp directory and exposes one local path per field on the gin context.
// Missing fields are simply not staged; whether a field is mandatory is the
// handler's decision.
func StageUploads(fields ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		contentType := c.GetHeader("Content-Type")
		if !strings.HasPrefix(contentType, "multipart/form-data") {
			c.Next()
			return
		}

		tempPath := config.Get().Upload.TempPath
		if err := os.MkdirAll(tempPath, 0755); err != nil {
			httpx.WriteError(c, http.StatusInternalServerError, "failed to stage uploads")
			c.Abort()
			return
		}

		for _, field := range fields {
			file, err := c.FormFile(field)
			if err != nil {
				continue // field absent
			}

			dst := filepath.Join(tempPath, uuid.NewString()+strings.ToLower(filepath.Ext(file.Filename)))
			if err := c.SaveUploadedFile(file, dst); err != nil {
				httpx.WriteError(c, http.StatusInternalServerError, "failed to stage uploads")
				c.Abort()
				return
			}
			c.Set(stagedKeyPrefix+field, dst)
		}

		c.Next()
	}
}

// StagedFile returns the staged local path for a multipart field, or "".
func StagedFile(c *gin.Context, field string) string {
	val, exists := c.Get(stagedKeyPrefix + field)
	if !exists {
		return ""
	}
	path, ok := val.(string)
	if !ok {
		return ""
	}
	return path
}
