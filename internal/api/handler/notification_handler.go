package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/dto"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/service"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/response"
)

// NotificationHandler xử lý HTTP cho thông báo
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler tạo NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// ListMine GET /api/v1/notifications
func (h *NotificationHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, "tham số không hợp lệ")
		return
	}

	notifications, total, err := h.notificationSvc.ListMine(c.Request.Context(), userID, &page)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, notifications, total, page.GetPage(), page.GetPageSize())
}

// MarkRead PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.notificationSvc.MarkRead(c.Request.Context(), c.Param("id"), userID); err != nil {
		response.InternalError(c)
		return
	}
	response.OKMessage(c, "Đã đánh dấu đã đọc", nil)
}
