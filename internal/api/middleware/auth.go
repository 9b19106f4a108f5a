package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/jwt"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/redis"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/response"
)

// JWTAuth xác thực Access Token từ header Authorization: Bearer <token>.
// Token đã logout (nằm trong blacklist Redis) bị từ chối; rdb nil thì bỏ
// qua bước kiểm tra blacklist.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "thiếu header xác thực")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "header xác thực sai định dạng")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "token không hợp lệ hoặc đã hết hạn")
			c.Abort()
			return
		}
		if claims.TokenType != "access" {
			response.Unauthorized(c, "loại token không hợp lệ")
			c.Abort()
			return
		}

		if rdb != nil {
			blacklisted, err := rdb.IsTokenBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && blacklisted {
				response.Unauthorized(c, "token đã bị thu hồi")
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("token", parts[1])

		c.Next()
	}
}

// RoleAuth chỉ cho qua khi người dùng mang một trong các vai trò cho phép
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, "chưa xác thực")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "bạn không có quyền truy cập")
		c.Abort()
	}
}
