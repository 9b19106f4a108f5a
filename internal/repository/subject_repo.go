package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
)

// SubjectRepository truy cập dữ liệu môn học
type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	GetByID(ctx context.Context, id string) (*model.Subject, error)
	List(ctx context.Context) ([]model.Subject, error)
	Update(ctx context.Context, subject *model.Subject) error
	Delete(ctx context.Context, id string) error
}

type subjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo tạo SubjectRepository
func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) Create(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *subjectRepo) GetByID(ctx context.Context, id string) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.WithContext(ctx).Where("subject_id = ?", id).First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) List(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.WithContext(ctx).Order("name ASC").Find(&subjects).Error
	return subjects, err
}

func (r *subjectRepo) Update(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).Save(subject).Error
}

func (r *subjectRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("subject_id = ?", id).Delete(&model.Subject{}).Error
}
