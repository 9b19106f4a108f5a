package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
)

// RoomRepository truy cập dữ liệu phòng học
type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	List(ctx context.Context) ([]model.Room, error)
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id string) error
}

type roomRepo struct {
	db *gorm.DB
}

// NewRoomRepo tạo RoomRepository
func NewRoomRepo(db *gorm.DB) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepo) GetByID(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).Where("room_id = ?", id).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) List(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.WithContext(ctx).Order("building ASC, name ASC").Find(&rooms).Error
	return rooms, err
}

func (r *roomRepo) Update(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *roomRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("room_id = ?", id).Delete(&model.Room{}).Error
}
