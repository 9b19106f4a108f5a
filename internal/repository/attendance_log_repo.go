package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
)

// AttendanceLogRepository truy cập dữ liệu bản ghi điểm danh
type AttendanceLogRepository interface {
	GetBySessionAndStudent(ctx context.Context, sessionID, studentID string) (*model.AttendanceLog, error)
	// Upsert ghi đè bản ghi theo khóa (session_id, student_id)
	Upsert(ctx context.Context, log *model.AttendanceLog) error
	ListBySession(ctx context.Context, sessionID string) ([]model.AttendanceLog, error)
	ListByStudentAndSessions(ctx context.Context, studentID string, sessionIDs []string) ([]model.AttendanceLog, error)
	DeleteBySessions(ctx context.Context, sessionIDs []string) error
	DeleteByStudentAndSessions(ctx context.Context, studentID string, sessionIDs []string) error
}

type attendanceLogRepo struct {
	db *gorm.DB
}

// NewAttendanceLogRepo tạo AttendanceLogRepository
func NewAttendanceLogRepo(db *gorm.DB) AttendanceLogRepository {
	return &attendanceLogRepo{db: db}
}

func (r *attendanceLogRepo) GetBySessionAndStudent(ctx context.Context, sessionID, studentID string) (*model.AttendanceLog, error) {
	var log model.AttendanceLog
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND student_id = ?", sessionID, studentID).
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *attendanceLogRepo) Upsert(ctx context.Context, log *model.AttendanceLog) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}, {Name: "student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "note", "timestamp", "updated_at",
			}),
		}).
		Create(log).Error
}

func (r *attendanceLogRepo) ListBySession(ctx context.Context, sessionID string) ([]model.AttendanceLog, error) {
	var logs []model.AttendanceLog
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp").
		Find(&logs).Error
	return logs, err
}

func (r *attendanceLogRepo) ListByStudentAndSessions(ctx context.Context, studentID string, sessionIDs []string) ([]model.AttendanceLog, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	var logs []model.AttendanceLog
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND session_id IN ?", studentID, sessionIDs).
		Find(&logs).Error
	return logs, err
}

func (r *attendanceLogRepo) DeleteBySessions(ctx context.Context, sessionIDs []string) error {
	if len(sessionIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("session_id IN ?", sessionIDs).
		Delete(&model.AttendanceLog{}).Error
}

func (r *attendanceLogRepo) DeleteByStudentAndSessions(ctx context.Context, studentID string, sessionIDs []string) error {
	if len(sessionIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("student_id = ? AND session_id IN ?", studentID, sessionIDs).
		Delete(&model.AttendanceLog{}).Error
}
