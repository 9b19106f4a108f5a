package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/dto"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/service"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/response"
)

// MainClassHandler xử lý HTTP cho lớp chính và quy trình duyệt sinh viên
type MainClassHandler struct {
	mainClassSvc service.MainClassService
}

// NewMainClassHandler tạo MainClassHandler
func NewMainClassHandler(mainClassSvc service.MainClassService) *MainClassHandler {
	return &MainClassHandler{mainClassSvc: mainClassSvc}
}

// List GET /api/v1/main-classes
func (h *MainClassHandler) List(c *gin.Context) {
	var req dto.ListMainClassesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "tham số không hợp lệ")
		return
	}

	classes, total, err := h.mainClassSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, classes, total, req.GetPage(), req.GetPageSize())
}

// Get GET /api/v1/main-classes/:id
func (h *MainClassHandler) Get(c *gin.Context) {
	mc, err := h.mainClassSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, mc)
}

// Create POST /api/v1/main-classes
func (h *MainClassHandler) Create(c *gin.Context) {
	var req dto.CreateMainClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	mc, err := h.mainClassSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, mc)
}

// Update PUT /api/v1/main-classes/:id
func (h *MainClassHandler) Update(c *gin.Context) {
	var req dto.UpdateMainClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	mc, err := h.mainClassSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, mc)
}

// Delete DELETE /api/v1/main-classes/:id
func (h *MainClassHandler) Delete(c *gin.Context) {
	if err := h.mainClassSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.OKMessage(c, "Xóa lớp chính thành công", nil)
}

// RequestJoin sinh viên xin vào lớp; admin có thể gửi hộ qua body
// POST /api/v1/main-classes/:id/join
func (h *MainClassHandler) RequestJoin(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	studentID := userID
	if role == model.RoleAdmin {
		var req dto.RequestJoinMainClassRequest
		if err := c.ShouldBindJSON(&req); err == nil && req.StudentID != "" {
			studentID = req.StudentID
		}
	}

	if err := h.mainClassSvc.RequestJoin(c.Request.Context(), c.Param("id"), studentID); err != nil {
		h.handleError(c, err)
		return
	}
	response.OKMessage(c, "Đã gửi yêu cầu vào lớp, vui lòng chờ duyệt", nil)
}

// ListPending GET /api/v1/main-classes/:id/pending
func (h *MainClassHandler) ListPending(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	students, err := h.mainClassSvc.ListPendingStudents(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": students})
}

// Approve POST /api/v1/main-classes/:id/approve
func (h *MainClassHandler) Approve(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.ApproveStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	if err := h.mainClassSvc.ApproveStudent(c.Request.Context(), c.Param("id"), req.StudentID, userID, role); err != nil {
		h.handleError(c, err)
		return
	}
	response.OKMessage(c, "Duyệt sinh viên thành công", nil)
}

// Reject POST /api/v1/main-classes/:id/reject
func (h *MainClassHandler) Reject(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.ApproveStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	if err := h.mainClassSvc.RejectStudent(c.Request.Context(), c.Param("id"), req.StudentID, userID, role); err != nil {
		h.handleError(c, err)
		return
	}
	response.OKMessage(c, "Đã từ chối yêu cầu", nil)
}

// ListStudents GET /api/v1/main-classes/:id/students
func (h *MainClassHandler) ListStudents(c *gin.Context) {
	students, err := h.mainClassSvc.ListStudents(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": students})
}

// RemoveStudent DELETE /api/v1/main-classes/:id/students/:studentId
func (h *MainClassHandler) RemoveStudent(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.mainClassSvc.RemoveStudent(c.Request.Context(), c.Param("id"), c.Param("studentId"), userID, role); err != nil {
		h.handleError(c, err)
		return
	}
	response.OKMessage(c, "Xóa sinh viên khỏi lớp thành công", nil)
}

func (h *MainClassHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMainClassNotFound), errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrStudentAlreadyInClass),
		errors.Is(err, service.ErrStudentAlreadyPending),
		errors.Is(err, service.ErrStudentNotPending),
		errors.Is(err, service.ErrStudentNotInClass):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotClassAdvisor):
		response.Forbidden(c, err.Error())
	default:
		response.InternalError(c)
	}
}
