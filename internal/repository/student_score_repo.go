package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
)

// StudentScoreRepository truy cập dữ liệu điểm chuyên cần
type StudentScoreRepository interface {
	GetByClassAndStudent(ctx context.Context, classID, studentID string) (*model.StudentScore, error)
	ListByClass(ctx context.Context, classID string) ([]model.StudentScore, error)
	// Upsert ghi đè bản ghi theo khóa (teaching_class_id, student_id)
	Upsert(ctx context.Context, score *model.StudentScore) error
	Update(ctx context.Context, score *model.StudentScore) error
	DeleteByClass(ctx context.Context, classID string) error
	DeleteByClassAndStudent(ctx context.Context, classID, studentID string) error
}

type studentScoreRepo struct {
	db *gorm.DB
}

// NewStudentScoreRepo tạo StudentScoreRepository
func NewStudentScoreRepo(db *gorm.DB) StudentScoreRepository {
	return &studentScoreRepo{db: db}
}

func (r *studentScoreRepo) GetByClassAndStudent(ctx context.Context, classID, studentID string) (*model.StudentScore, error) {
	var score model.StudentScore
	err := r.db.WithContext(ctx).
		Where("teaching_class_id = ? AND student_id = ?", classID, studentID).
		First(&score).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *studentScoreRepo) ListByClass(ctx context.Context, classID string) ([]model.StudentScore, error) {
	var scores []model.StudentScore
	err := r.db.WithContext(ctx).
		Where("teaching_class_id = ?", classID).
		Find(&scores).Error
	return scores, err
}

func (r *studentScoreRepo) Upsert(ctx context.Context, score *model.StudentScore) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "teaching_class_id"}, {Name: "student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_sessions", "absent_sessions", "attendance_score",
				"max_absent_allowed", "is_failed_due_to_absent", "last_updated", "updated_at",
			}),
		}).
		Create(score).Error
}

func (r *studentScoreRepo) Update(ctx context.Context, score *model.StudentScore) error {
	return r.db.WithContext(ctx).Save(score).Error
}

func (r *studentScoreRepo) DeleteByClass(ctx context.Context, classID string) error {
	return r.db.WithContext(ctx).
		Where("teaching_class_id = ?", classID).
		Delete(&model.StudentScore{}).Error
}

func (r *studentScoreRepo) DeleteByClassAndStudent(ctx context.Context, classID, studentID string) error {
	return r.db.WithContext(ctx).
		Where("teaching_class_id = ? AND student_id = ?", classID, studentID).
		Delete(&model.StudentScore{}).Error
}
