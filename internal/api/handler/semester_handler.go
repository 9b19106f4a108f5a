package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/dto"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/service"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/response"
)

// SemesterHandler xử lý HTTP cho học kỳ
type SemesterHandler struct {
	semesterSvc service.SemesterService
}

// NewSemesterHandler tạo SemesterHandler
func NewSemesterHandler(semesterSvc service.SemesterService) *SemesterHandler {
	return &SemesterHandler{semesterSvc: semesterSvc}
}

// List danh sách học kỳ
// GET /api/v1/semesters
func (h *SemesterHandler) List(c *gin.Context) {
	semesters, err := h.semesterSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": semesters})
}

// GetCurrent học kỳ đang kích hoạt
// GET /api/v1/semesters/current
func (h *SemesterHandler) GetCurrent(c *gin.Context) {
	semester, err := h.semesterSvc.GetCurrent(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, semester)
}

// Get chi tiết học kỳ
// GET /api/v1/semesters/:id
func (h *SemesterHandler) Get(c *gin.Context) {
	semester, err := h.semesterSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, semester)
}

// Create tạo học kỳ
// POST /api/v1/semesters
func (h *SemesterHandler) Create(c *gin.Context) {
	var req dto.CreateSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	semester, err := h.semesterSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, semester)
}

// Update cập nhật học kỳ
// PUT /api/v1/semesters/:id
func (h *SemesterHandler) Update(c *gin.Context) {
	var req dto.UpdateSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	semester, err := h.semesterSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, semester)
}

// Delete xóa học kỳ
// DELETE /api/v1/semesters/:id
func (h *SemesterHandler) Delete(c *gin.Context) {
	if err := h.semesterSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	response.OKMessage(c, "Xóa học kỳ thành công", nil)
}

func (h *SemesterHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSemesterNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrSemesterDateInvalid):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c)
	}
}
