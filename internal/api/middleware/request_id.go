package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// requestIDMaxLen chặn Request-ID quá dài từ bên ngoài để tránh log injection
const requestIDMaxLen = 64

// RequestID gắn mã truy vết cho mỗi request: đọc từ header X-Request-ID,
// không có thì sinh UUID mới, và trả lại trong header phản hồi.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}
