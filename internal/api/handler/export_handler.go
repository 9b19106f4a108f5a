package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/service"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/response"
)

// ExportHandler xử lý HTTP cho xuất dữ liệu
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler tạo ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportAttendance xuất bảng điểm danh của lớp ra Excel
// GET /api/v1/teaching-classes/:id/export/attendance
func (h *ExportHandler) ExportAttendance(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportClassAttendance(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxMime, buf.Bytes())
}

// ExportCalendar xuất lịch buổi học của lớp dạng iCalendar
// GET /api/v1/teaching-classes/:id/export/calendar
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportClassCalendar(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (h *ExportHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeachingClassNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrExportNoSessions):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c)
	}
}
