package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
)

// MainClassRepository truy cập dữ liệu lớp chính
type MainClassRepository interface {
	Create(ctx context.Context, mc *model.MainClass) error
	GetByID(ctx context.Context, id string) (*model.MainClass, error)
	List(ctx context.Context, search, advisorID string, offset, limit int) ([]model.MainClass, int64, error)
	Update(ctx context.Context, mc *model.MainClass) error
	Delete(ctx context.Context, id string) error
}

type mainClassRepo struct {
	db *gorm.DB
}

// NewMainClassRepo tạo MainClassRepository
func NewMainClassRepo(db *gorm.DB) MainClassRepository {
	return &mainClassRepo{db: db}
}

func (r *mainClassRepo) Create(ctx context.Context, mc *model.MainClass) error {
	return r.db.WithContext(ctx).Create(mc).Error
}

func (r *mainClassRepo) GetByID(ctx context.Context, id string) (*model.MainClass, error) {
	var mc model.MainClass
	err := r.db.WithContext(ctx).
		Preload("Advisor").
		Where("main_class_id = ?", id).
		First(&mc).Error
	if err != nil {
		return nil, err
	}
	return &mc, nil
}

func (r *mainClassRepo) List(ctx context.Context, search, advisorID string, offset, limit int) ([]model.MainClass, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.MainClass{})
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("name ILIKE ? OR class_code ILIKE ?", pattern, pattern)
	}
	if advisorID != "" {
		q = q.Where("advisor_id = ?", advisorID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var classes []model.MainClass
	err := q.Preload("Advisor").Order("name ASC").Offset(offset).Limit(limit).Find(&classes).Error
	return classes, total, err
}

func (r *mainClassRepo) Update(ctx context.Context, mc *model.MainClass) error {
	return r.db.WithContext(ctx).Save(mc).Error
}

func (r *mainClassRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("main_class_id = ?", id).Delete(&model.MainClass{}).Error
}
