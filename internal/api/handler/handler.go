package handler

import "github.com/peruhpham/Facial-recognition-attendance-management-system/internal/service"

// Handler điểm vào gộp của toàn bộ tầng HTTP
type Handler struct {
	Auth          *AuthHandler
	Semester      *SemesterHandler
	Catalog       *CatalogHandler
	MainClass     *MainClassHandler
	TeachingClass *TeachingClassHandler
	Attendance    *AttendanceHandler
	Export        *ExportHandler
	Notification  *NotificationHandler
}

// NewHandler tạo Handler gộp
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:          NewAuthHandler(svc.Auth),
		Semester:      NewSemesterHandler(svc.Semester),
		Catalog:       NewCatalogHandler(svc.Catalog),
		MainClass:     NewMainClassHandler(svc.MainClass),
		TeachingClass: NewTeachingClassHandler(svc.TeachingClass, svc.Session),
		Attendance:    NewAttendanceHandler(svc.Attendance, svc.Session),
		Export:        NewExportHandler(svc.Export),
		Notification:  NewNotificationHandler(svc.Notification),
	}
}
