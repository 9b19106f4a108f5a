package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/dto"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/service"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/response"
)

// CatalogHandler xử lý HTTP cho danh mục môn học và phòng học
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

// NewCatalogHandler tạo CatalogHandler
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// ── Môn học ──

// ListSubjects GET /api/v1/subjects
func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.catalogSvc.ListSubjects(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": subjects})
}

// CreateSubject POST /api/v1/subjects
func (h *CatalogHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	subject, err := h.catalogSvc.CreateSubject(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, subject)
}

// UpdateSubject PUT /api/v1/subjects/:id
func (h *CatalogHandler) UpdateSubject(c *gin.Context) {
	var req dto.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	subject, err := h.catalogSvc.UpdateSubject(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, subject)
}

// DeleteSubject DELETE /api/v1/subjects/:id
func (h *CatalogHandler) DeleteSubject(c *gin.Context) {
	if err := h.catalogSvc.DeleteSubject(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.OKMessage(c, "Xóa môn học thành công", nil)
}

// ── Phòng học ──

// ListRooms GET /api/v1/rooms
func (h *CatalogHandler) ListRooms(c *gin.Context) {
	rooms, err := h.catalogSvc.ListRooms(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": rooms})
}

// CreateRoom POST /api/v1/rooms
func (h *CatalogHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	room, err := h.catalogSvc.CreateRoom(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, room)
}

// UpdateRoom PUT /api/v1/rooms/:id
func (h *CatalogHandler) UpdateRoom(c *gin.Context) {
	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dữ liệu không hợp lệ")
		return
	}

	room, err := h.catalogSvc.UpdateRoom(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, room)
}

// DeleteRoom DELETE /api/v1/rooms/:id
func (h *CatalogHandler) DeleteRoom(c *gin.Context) {
	if err := h.catalogSvc.DeleteRoom(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.OKMessage(c, "Xóa phòng học thành công", nil)
}

func (h *CatalogHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound), errors.Is(err, service.ErrRoomNotFound):
		response.NotFound(c, err.Error())
	default:
		response.InternalError(c)
	}
}
