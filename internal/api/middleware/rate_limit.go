package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/redis"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/response"
)

// RateLimit giới hạn số request theo cửa sổ trượt trên Redis.
// limit: số request tối đa trong cửa sổ; window: độ dài cửa sổ.
// Redis lỗi hoặc rdb nil thì cho qua.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, "thao tác quá nhanh, vui lòng thử lại sau")
			c.Abort()
			return
		}

		c.Next()
	}
}
