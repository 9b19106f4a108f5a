package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/dto"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/service"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/response"
)

// AttendanceHandler xử lý HTTP cho điểm danh và điểm chuyên cần
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
	sessionSvc    service.SessionService
}

// NewAttendanceHandler tạo AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService, sessionSvc service.SessionService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc, sessionSvc: sessionSvc}
}

// ── Buổi học ──

// GetSession GET /api/v1/sessions/:id
func (h *AttendanceHandler) GetSession(c *gin.Context) {
	session, err := h.sessionSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, session)
}

// UpdateSessionStatus PUT /api/v1/sessions/:id/status
func (h *AttendanceHandler) UpdateSessionStatus(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateSessionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	session, err := h.sessionSvc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, userID, role)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, session)
}

// ── Ghi nhận điểm danh ──

// RecordAttendance POST /api/v1/sessions/:id/attendance
func (h *AttendanceHandler) RecordAttendance(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	log, err := h.attendanceSvc.RecordAttendance(c.Request.Context(), c.Param("id"), &req, userID, role)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OKMessage(c, "Ghi nhận điểm danh thành công", log)
}

// ListSessionLogs GET /api/v1/sessions/:id/attendance
func (h *AttendanceHandler) ListSessionLogs(c *gin.Context) {
	logs, err := h.attendanceSvc.ListSessionLogs(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": logs})
}

// ── Điểm chuyên cần ──

// ListClassScores GET /api/v1/teaching-classes/:id/scores
func (h *AttendanceHandler) ListClassScores(c *gin.Context) {
	scores, err := h.attendanceSvc.ListClassScores(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": scores})
}

// RecomputeClassScores tính lại điểm cả lớp
// POST /api/v1/teaching-classes/:id/scores/recompute
func (h *AttendanceHandler) RecomputeClassScores(c *gin.Context) {
	result, err := h.attendanceSvc.RecomputeClassScores(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// GetMyScore sinh viên xem điểm chuyên cần của mình
// GET /api/v1/teaching-classes/:id/scores/my
func (h *AttendanceHandler) GetMyScore(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	score, err := h.attendanceSvc.GetMyScore(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, score)
}

// GetMyAttendanceDetail sinh viên xem chi tiết điểm danh của mình
// GET /api/v1/teaching-classes/:id/attendance/my
func (h *AttendanceHandler) GetMyAttendanceDetail(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	detail, err := h.attendanceSvc.GetStudentDetail(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, detail)
}

// GetStudentDetail giảng viên xem chi tiết điểm danh của một sinh viên
// GET /api/v1/teaching-classes/:id/students/:studentId/attendance
func (h *AttendanceHandler) GetStudentDetail(c *gin.Context) {
	detail, err := h.attendanceSvc.GetStudentDetail(c.Request.Context(), c.Param("id"), c.Param("studentId"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, detail)
}

// UpdateStudentScore giảng viên nhập điểm cuối kỳ / ghi chú
// PUT /api/v1/teaching-classes/:id/students/:studentId/score
func (h *AttendanceHandler) UpdateStudentScore(c *gin.Context) {
	userID, role, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateStudentScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	score, err := h.attendanceSvc.UpdateStudentScore(c.Request.Context(), c.Param("id"), c.Param("studentId"), &req, userID, role)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, score)
}

func (h *AttendanceHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrTeachingClassNotFound),
		errors.Is(err, service.ErrScoreNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidAttendanceStatus),
		errors.Is(err, service.ErrInvalidStatusChange),
		errors.Is(err, service.ErrSessionAlreadyClosed),
		errors.Is(err, service.ErrStudentNotEnrolled):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotClassTeacher):
		response.Forbidden(c, err.Error())
	default:
		response.InternalError(c)
	}
}
