package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/dto"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/service"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/response"
)

// AuthHandler xử lý HTTP cho xác thực và người dùng
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler tạo AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register đăng ký tài khoản
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.Created(c, user)
}

// Login đăng nhập
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	tokens, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OKMessage(c, "Đăng nhập thành công", tokens)
}

// Refresh làm mới access token
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	tokens, err := h.authSvc.Refresh(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, tokens)
}

// Logout thu hồi access token hiện tại
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := extractBearer(c)
	if token == "" {
		response.Unauthorized(c, "thiếu header xác thực")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), token); err != nil {
		response.InternalError(c)
		return
	}

	response.OKMessage(c, "Đăng xuất thành công", nil)
}

// Me thông tin người dùng hiện tại
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, user)
}

// ListUsers danh sách người dùng (lọc theo vai trò, tìm kiếm)
// GET /api/v1/users
func (h *AuthHandler) ListUsers(c *gin.Context) {
	var req dto.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "tham số không hợp lệ")
		return
	}

	users, total, err := h.authSvc.ListUsers(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, users, total, req.GetPage(), req.GetPageSize())
}

// handleAuthError ánh xạ lỗi nghiệp vụ xác thực sang mã HTTP
func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrInvalidRefresh):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		response.InternalError(c)
	}
}

func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
