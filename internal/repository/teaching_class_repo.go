package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
)

// TeachingClassFilter bộ lọc danh sách lớp giảng dạy
type TeachingClassFilter struct {
	TeacherID  string
	SemesterID string
	StudentID  string // lọc lớp có sinh viên này trong roster
	Search     string
}

// TeachingClassRepository truy cập dữ liệu lớp giảng dạy
type TeachingClassRepository interface {
	Create(ctx context.Context, tc *model.TeachingClass) error
	GetByID(ctx context.Context, id string) (*model.TeachingClass, error)
	List(ctx context.Context, filter TeachingClassFilter, offset, limit int) ([]model.TeachingClass, int64, error)
	// ListByTeacher lấy các lớp của một giáo viên, bỏ qua excludeID nếu khác rỗng
	ListByTeacher(ctx context.Context, teacherID, excludeID string) ([]model.TeachingClass, error)
	// ListScheduled lấy tất cả lớp có lịch học (phục vụ xét xung đột phòng), bỏ qua excludeID
	ListScheduled(ctx context.Context, excludeID string) ([]model.TeachingClass, error)
	Update(ctx context.Context, tc *model.TeachingClass) error
	Delete(ctx context.Context, id string) error
}

type teachingClassRepo struct {
	db *gorm.DB
}

// NewTeachingClassRepo tạo TeachingClassRepository
func NewTeachingClassRepo(db *gorm.DB) TeachingClassRepository {
	return &teachingClassRepo{db: db}
}

func (r *teachingClassRepo) Create(ctx context.Context, tc *model.TeachingClass) error {
	return r.db.WithContext(ctx).Create(tc).Error
}

func (r *teachingClassRepo) GetByID(ctx context.Context, id string) (*model.TeachingClass, error) {
	var tc model.TeachingClass
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Teacher").
		Preload("Semester").
		Where("teaching_class_id = ?", id).
		First(&tc).Error
	if err != nil {
		return nil, err
	}
	return &tc, nil
}

func (r *teachingClassRepo) List(ctx context.Context, filter TeachingClassFilter, offset, limit int) ([]model.TeachingClass, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.TeachingClass{})
	if filter.TeacherID != "" {
		q = q.Where("teacher_id = ?", filter.TeacherID)
	}
	if filter.SemesterID != "" {
		q = q.Where("semester_id = ?", filter.SemesterID)
	}
	if filter.StudentID != "" {
		q = q.Where("? = ANY(students)", filter.StudentID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("class_name ILIKE ? OR class_code ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var classes []model.TeachingClass
	err := q.Preload("Subject").Preload("Teacher").Preload("Semester").
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&classes).Error
	return classes, total, err
}

func (r *teachingClassRepo) ListByTeacher(ctx context.Context, teacherID, excludeID string) ([]model.TeachingClass, error) {
	q := r.db.WithContext(ctx).
		Preload("Subject").
		Where("teacher_id = ?", teacherID)
	if excludeID != "" {
		q = q.Where("teaching_class_id <> ?", excludeID)
	}
	var classes []model.TeachingClass
	err := q.Find(&classes).Error
	return classes, err
}

func (r *teachingClassRepo) ListScheduled(ctx context.Context, excludeID string) ([]model.TeachingClass, error) {
	q := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Teacher").
		Where("jsonb_array_length(schedule) > 0")
	if excludeID != "" {
		q = q.Where("teaching_class_id <> ?", excludeID)
	}
	var classes []model.TeachingClass
	err := q.Find(&classes).Error
	return classes, err
}

func (r *teachingClassRepo) Update(ctx context.Context, tc *model.TeachingClass) error {
	return r.db.WithContext(ctx).Save(tc).Error
}

func (r *teachingClassRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("teaching_class_id = ?", id).Delete(&model.TeachingClass{}).Error
}
