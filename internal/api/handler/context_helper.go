package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/response"
)

// MustGetUserID lấy user_id từ context một cách an toàn.
// Middleware chưa gắn user_id thì trả về false và ghi phản hồi 401;
// phía gọi phải return ngay khi ok=false.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "chưa xác thực")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, "chưa xác thực")
		return "", false
	}
	return s, true
}

// MustGetRole lấy role từ context một cách an toàn.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, "chưa xác thực")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, "chưa xác thực")
		return "", false
	}
	return s, true
}

// MustGetCaller lấy đồng thời user_id và role.
func MustGetCaller(c *gin.Context) (userID, role string, ok bool) {
	userID, ok = MustGetUserID(c)
	if !ok {
		return "", "", false
	}
	role, ok = MustGetRole(c)
	if !ok {
		return "", "", false
	}
	return userID, role, true
}
