package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
)

// AttendanceSessionRepository truy cập dữ liệu buổi điểm danh
type AttendanceSessionRepository interface {
	Create(ctx context.Context, session *model.AttendanceSession) error
	GetByID(ctx context.Context, id string) (*model.AttendanceSession, error)
	ListByClass(ctx context.Context, classID string) ([]model.AttendanceSession, error)
	ListByClassAndStatus(ctx context.Context, classID, status string) ([]model.AttendanceSession, error)
	// ListUpcomingByClass lấy các buổi chưa kết thúc, xếp theo thời gian bắt đầu
	ListUpcomingByClass(ctx context.Context, classID string, after time.Time) ([]model.AttendanceSession, error)
	CountByClass(ctx context.Context, classID string) (int64, error)
	Update(ctx context.Context, session *model.AttendanceSession) error
	// DeleteByClassAndStatus xóa các buổi của lớp theo trạng thái (dùng khi sinh lại lịch)
	DeleteByClassAndStatus(ctx context.Context, classID, status string) error
	DeleteByClass(ctx context.Context, classID string) error
}

type attendanceSessionRepo struct {
	db *gorm.DB
}

// NewAttendanceSessionRepo tạo AttendanceSessionRepository
func NewAttendanceSessionRepo(db *gorm.DB) AttendanceSessionRepository {
	return &attendanceSessionRepo{db: db}
}

func (r *attendanceSessionRepo) Create(ctx context.Context, session *model.AttendanceSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *attendanceSessionRepo) GetByID(ctx context.Context, id string) (*model.AttendanceSession, error) {
	var session model.AttendanceSession
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("session_id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *attendanceSessionRepo) ListByClass(ctx context.Context, classID string) ([]model.AttendanceSession, error) {
	var sessions []model.AttendanceSession
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("teaching_class_id = ?", classID).
		Order("session_number ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *attendanceSessionRepo) ListByClassAndStatus(ctx context.Context, classID, status string) ([]model.AttendanceSession, error) {
	var sessions []model.AttendanceSession
	err := r.db.WithContext(ctx).
		Where("teaching_class_id = ? AND status = ?", classID, status).
		Order("session_number ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *attendanceSessionRepo) ListUpcomingByClass(ctx context.Context, classID string, after time.Time) ([]model.AttendanceSession, error) {
	var sessions []model.AttendanceSession
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("teaching_class_id = ? AND end_time >= ? AND status <> ?",
			classID, after, model.SessionStatusCancelled).
		Order("start_time ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *attendanceSessionRepo) CountByClass(ctx context.Context, classID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AttendanceSession{}).
		Where("teaching_class_id = ?", classID).
		Count(&count).Error
	return count, err
}

func (r *attendanceSessionRepo) Update(ctx context.Context, session *model.AttendanceSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *attendanceSessionRepo) DeleteByClassAndStatus(ctx context.Context, classID, status string) error {
	return r.db.WithContext(ctx).
		Where("teaching_class_id = ? AND status = ?", classID, status).
		Delete(&model.AttendanceSession{}).Error
}

func (r *attendanceSessionRepo) DeleteByClass(ctx context.Context, classID string) error {
	return r.db.WithContext(ctx).
		Where("teaching_class_id = ?", classID).
		Delete(&model.AttendanceSession{}).Error
}
