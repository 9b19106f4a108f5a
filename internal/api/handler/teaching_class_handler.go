package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/dto"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/service"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/response"
)

// TeachingClassHandler xử lý HTTP cho lớp giảng dạy và buổi học
type TeachingClassHandler struct {
	classSvc   service.TeachingClassService
	sessionSvc service.SessionService
}

// NewTeachingClassHandler tạo TeachingClassHandler
func NewTeachingClassHandler(classSvc service.TeachingClassService, sessionSvc service.SessionService) *TeachingClassHandler {
	return &TeachingClassHandler{classSvc: classSvc, sessionSvc: sessionSvc}
}

// List GET /api/v1/teaching-classes
func (h *TeachingClassHandler) List(c *gin.Context) {
	var req dto.ListTeachingClassesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "tham số không hợp lệ")
		return
	}

	classes, total, err := h.classSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, classes, total, req.GetPage(), req.GetPageSize())
}

// ListMine lớp của tôi: giảng viên thấy lớp mình dạy, sinh viên thấy lớp mình học
// GET /api/v1/teaching-classes/my
func (h *TeachingClassHandler) ListMine(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.ListTeachingClassesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "tham số không hợp lệ")
		return
	}

	classes, total, err := h.classSvc.ListMine(c.Request.Context(), userID, role, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, classes, total, req.GetPage(), req.GetPageSize())
}

// Get GET /api/v1/teaching-classes/:id
func (h *TeachingClassHandler) Get(c *gin.Context) {
	tc, err := h.classSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, tc)
}

// Create POST /api/v1/teaching-classes
func (h *TeachingClassHandler) Create(c *gin.Context) {
	var req dto.CreateTeachingClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	tc, err := h.classSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, tc)
}

// Update PUT /api/v1/teaching-classes/:id
func (h *TeachingClassHandler) Update(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateTeachingClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	tc, err := h.classSvc.Update(c.Request.Context(), c.Param("id"), &req, userID, role)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, tc)
}

// Delete DELETE /api/v1/teaching-classes/:id
func (h *TeachingClassHandler) Delete(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.classSvc.Delete(c.Request.Context(), c.Param("id"), userID, role); err != nil {
		h.handleError(c, err)
		return
	}
	response.OKMessage(c, "Xóa lớp giảng dạy thành công", nil)
}

// CheckConflicts kiểm tra trùng lịch trước khi lưu
// POST /api/v1/teaching-classes/check-conflicts
func (h *TeachingClassHandler) CheckConflicts(c *gin.Context) {
	var req dto.CheckConflictsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	result, err := h.classSvc.CheckConflicts(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ── Sinh viên trong lớp ──

// ListStudents GET /api/v1/teaching-classes/:id/students
func (h *TeachingClassHandler) ListStudents(c *gin.Context) {
	students, err := h.classSvc.ListStudents(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": students})
}

// AddStudent POST /api/v1/teaching-classes/:id/students
func (h *TeachingClassHandler) AddStudent(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.AddStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	if err := h.classSvc.AddStudent(c.Request.Context(), c.Param("id"), req.StudentID, userID, role); err != nil {
		h.handleError(c, err)
		return
	}
	response.OKMessage(c, "Thêm sinh viên vào lớp thành công", nil)
}

// BatchAddStudents POST /api/v1/teaching-classes/:id/students/batch
func (h *TeachingClassHandler) BatchAddStudents(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.BatchAddStudentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	result, err := h.classSvc.BatchAddStudents(c.Request.Context(), c.Param("id"), req.StudentIDs, userID, role)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// RemoveStudent DELETE /api/v1/teaching-classes/:id/students/:studentId
func (h *TeachingClassHandler) RemoveStudent(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.classSvc.RemoveStudent(c.Request.Context(), c.Param("id"), c.Param("studentId"), userID, role); err != nil {
		h.handleError(c, err)
		return
	}
	response.OKMessage(c, "Xóa sinh viên khỏi lớp thành công", nil)
}

// ── Buổi học của lớp ──

// ListSessions GET /api/v1/teaching-classes/:id/sessions
func (h *TeachingClassHandler) ListSessions(c *gin.Context) {
	sessions, err := h.sessionSvc.ListByClass(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": sessions})
}

// ListUpcomingSessions GET /api/v1/teaching-classes/:id/sessions/upcoming
func (h *TeachingClassHandler) ListUpcomingSessions(c *gin.Context) {
	sessions, err := h.sessionSvc.ListUpcoming(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": sessions})
}

// GenerateSessions sinh lại buổi học từ lịch của lớp
// POST /api/v1/teaching-classes/:id/sessions/generate
func (h *TeachingClassHandler) GenerateSessions(c *gin.Context) {
	result, err := h.sessionSvc.GenerateSessions(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// CreateSession tạo thủ công một buổi học
// POST /api/v1/teaching-classes/:id/sessions
func (h *TeachingClassHandler) CreateSession(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	session, err := h.sessionSvc.CreateManual(c.Request.Context(), c.Param("id"), &req, userID, role)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, session)
}

func (h *TeachingClassHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeachingClassNotFound),
		errors.Is(err, service.ErrSemesterNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCourseDateOutOfRange),
		errors.Is(err, service.ErrCourseDateInvalid),
		errors.Is(err, service.ErrScheduleMissingRoom),
		errors.Is(err, service.ErrScheduleTimeInvalid),
		errors.Is(err, service.ErrStudentAlreadyInClass),
		errors.Is(err, service.ErrStudentNotEnrolled),
		errors.Is(err, service.ErrNotAStudent),
		errors.Is(err, service.ErrSessionTimeInvalid):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotClassTeacher):
		response.Forbidden(c, err.Error())
	default:
		response.InternalError(c)
	}
}
