package service

import (
	"go.uber.org/zap"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/config"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/repository"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/jwt"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/redis"
)

// Service điểm vào gộp của toàn bộ tầng nghiệp vụ
type Service struct {
	Auth          AuthService
	Semester      SemesterService
	Catalog       CatalogService
	MainClass     MainClassService
	TeachingClass TeachingClassService
	Session       SessionService
	Attendance    AttendanceService
	Export        ExportService
	Notification  NotificationService
}

// NewService khởi tạo Service gộp theo đúng thứ tự phụ thuộc
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	notifier := NewNotificationService(repo, logger)
	attendance := NewAttendanceService(repo, logger)
	session := NewSessionService(repo, attendance, logger)

	return &Service{
		Auth:          NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Semester:      NewSemesterService(repo, logger),
		Catalog:       NewCatalogService(repo, logger),
		MainClass:     NewMainClassService(repo, notifier, logger),
		TeachingClass: NewTeachingClassService(repo, session, notifier, logger),
		Session:       session,
		Attendance:    attendance,
		Export:        NewExportService(repo, logger),
		Notification:  notifier,
	}
}
