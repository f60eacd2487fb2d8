package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SharerHeader carries the caller's user ID, set by the validating gateway in
// front of this service.
const SharerHeader = "X-Sharer-User-Id"

const sharerIDKey = "sharer_id"

// SharerID requires a well-formed caller identity header on every request of
// the group. The header is trusted; verification happens upstream.
func SharerID() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SharerHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing " + SharerHeader + " header",
			})
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "malformed " + SharerHeader + " header",
			})
			return
		}

		c.Set(sharerIDKey, id)
		c.Next()
	}
}

// GetSharerID returns the caller's user ID extracted by SharerID.
func GetSharerID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(sharerIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
