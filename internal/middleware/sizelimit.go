package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medlaunch/onboard-api/internal/handler"
)

const (
	msgBodyTooLarge   = "حجم الطلب كبير جداً"
	msgUploadTooLarge = "حجم الملف كبير جداً. الحد الأقصى 10 ميجابايت"
)

type SizeLimitConfig struct {
	MaxBodySize   int64
	MaxUploadSize int64
	UploadPrefix  string
}

func DefaultSizeLimitConfig() SizeLimitConfig {
	return SizeLimitConfig{
		MaxBodySize:   1 << 20,  // 1MB for JSON payloads
		MaxUploadSize: 11 << 20, // multipart overhead on top of the 10MB file cap
		UploadPrefix:  "/api/uploads",
	}
}

// SizeLimit rejects oversized requests before handlers read them. Upload
// routes get the larger multipart budget.
func SizeLimit(config SizeLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := config.MaxBodySize
		message := msgBodyTooLarge
		if len(config.UploadPrefix) > 0 && len(c.Request.URL.Path) >= len(config.UploadPrefix) &&
			c.Request.URL.Path[:len(config.UploadPrefix)] == config.UploadPrefix {
			limit = config.MaxUploadSize
			message = msgUploadTooLarge
		}

		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				handler.NewErrorResponse(message))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
