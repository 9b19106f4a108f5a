package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/dto"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/repository"
)

var (
	ErrSubjectNotFound = errors.New("không tìm thấy môn học")
	ErrRoomNotFound    = errors.New("không tìm thấy phòng học")
)

// CatalogService nghiệp vụ danh mục môn học và phòng học
type CatalogService interface {
	CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*model.Subject, error)
	ListSubjects(ctx context.Context) ([]model.Subject, error)
	UpdateSubject(ctx context.Context, id string, req *dto.UpdateSubjectRequest) (*model.Subject, error)
	DeleteSubject(ctx context.Context, id string) error

	CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*model.Room, error)
	ListRooms(ctx context.Context) ([]model.Room, error)
	UpdateRoom(ctx context.Context, id string, req *dto.UpdateRoomRequest) (*model.Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

type catalogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCatalogService tạo CatalogService
func NewCatalogService(repo *repository.Repository, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

// ── Môn học ──

func (s *catalogService) CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*model.Subject, error) {
	subject := &model.Subject{
		Name:    req.Name,
		Code:    req.Code,
		Credits: req.Credits,
	}
	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		s.logger.Error("tạo môn học thất bại", zap.Error(err))
		return nil, err
	}
	return subject, nil
}

func (s *catalogService) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	return s.repo.Subject.List(ctx)
}

func (s *catalogService) UpdateSubject(ctx context.Context, id string, req *dto.UpdateSubjectRequest) (*model.Subject, error) {
	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Code != nil {
		subject.Code = *req.Code
	}
	if req.Credits != nil {
		subject.Credits = *req.Credits
	}

	if err := s.repo.Subject.Update(ctx, subject); err != nil {
		s.logger.Error("cập nhật môn học thất bại", zap.Error(err))
		return nil, err
	}
	return subject, nil
}

func (s *catalogService) DeleteSubject(ctx context.Context, id string) error {
	if _, err := s.repo.Subject.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		return err
	}
	return s.repo.Subject.Delete(ctx, id)
}

// ── Phòng học ──

func (s *catalogService) CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*model.Room, error) {
	room := &model.Room{
		Name:     req.Name,
		Building: req.Building,
		Capacity: req.Capacity,
	}
	if err := s.repo.Room.Create(ctx, room); err != nil {
		s.logger.Error("tạo phòng học thất bại", zap.Error(err))
		return nil, err
	}
	return room, nil
}

func (s *catalogService) ListRooms(ctx context.Context) ([]model.Room, error) {
	return s.repo.Room.List(ctx)
}

func (s *catalogService) UpdateRoom(ctx context.Context, id string, req *dto.UpdateRoomRequest) (*model.Room, error) {
	room, err := s.repo.Room.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Building != nil {
		room.Building = *req.Building
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}

	if err := s.repo.Room.Update(ctx, room); err != nil {
		s.logger.Error("cập nhật phòng học thất bại", zap.Error(err))
		return nil, err
	}
	return room, nil
}

func (s *catalogService) DeleteRoom(ctx context.Context, id string) error {
	if _, err := s.repo.Room.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	return s.repo.Room.Delete(ctx, id)
}
