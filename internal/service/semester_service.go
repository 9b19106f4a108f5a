package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/dto"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/repository"
)

// ── Lỗi nghiệp vụ học kỳ ──

var (
	ErrSemesterNotFound    = errors.New("không tìm thấy học kỳ")
	ErrSemesterDateInvalid = errors.New("ngày kết thúc phải sau ngày bắt đầu")
)

const dateLayout = "2006-01-02"

// SemesterService nghiệp vụ quản lý học kỳ
type SemesterService interface {
	Create(ctx context.Context, req *dto.CreateSemesterRequest) (*dto.SemesterResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SemesterResponse, error)
	GetCurrent(ctx context.Context) (*dto.SemesterResponse, error)
	List(ctx context.Context) ([]dto.SemesterResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSemesterRequest) (*dto.SemesterResponse, error)
	Delete(ctx context.Context, id string) error
}

type semesterService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSemesterService tạo SemesterService
func NewSemesterService(repo *repository.Repository, logger *zap.Logger) SemesterService {
	return &semesterService{repo: repo, logger: logger}
}

func (s *semesterService) Create(ctx context.Context, req *dto.CreateSemesterRequest) (*dto.SemesterResponse, error) {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, ErrSemesterDateInvalid
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, ErrSemesterDateInvalid
	}
	if end.Before(start) {
		return nil, ErrSemesterDateInvalid
	}

	// Chỉ một học kỳ được active tại một thời điểm
	if req.IsActive {
		if err := s.repo.Semester.ClearActive(ctx); err != nil {
			s.logger.Error("bỏ cờ active học kỳ cũ thất bại", zap.Error(err))
			return nil, err
		}
	}

	semester := &model.Semester{
		Name:      req.Name,
		Year:      req.Year,
		StartDate: start,
		EndDate:   end,
		IsActive:  req.IsActive,
	}
	if err := s.repo.Semester.Create(ctx, semester); err != nil {
		s.logger.Error("tạo học kỳ thất bại", zap.Error(err))
		return nil, err
	}

	resp := toSemesterResponse(semester)
	return &resp, nil
}

func (s *semesterService) GetByID(ctx context.Context, id string) (*dto.SemesterResponse, error) {
	semester, err := s.repo.Semester.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("truy vấn học kỳ thất bại", zap.Error(err))
		return nil, err
	}
	resp := toSemesterResponse(semester)
	return &resp, nil
}

func (s *semesterService) GetCurrent(ctx context.Context) (*dto.SemesterResponse, error) {
	semester, err := s.repo.Semester.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("truy vấn học kỳ hiện tại thất bại", zap.Error(err))
		return nil, err
	}
	resp := toSemesterResponse(semester)
	return &resp, nil
}

func (s *semesterService) List(ctx context.Context) ([]dto.SemesterResponse, error) {
	semesters, err := s.repo.Semester.List(ctx)
	if err != nil {
		s.logger.Error("truy vấn danh sách học kỳ thất bại", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SemesterResponse, 0, len(semesters))
	for i := range semesters {
		result = append(result, toSemesterResponse(&semesters[i]))
	}
	return result, nil
}

func (s *semesterService) Update(ctx context.Context, id string, req *dto.UpdateSemesterRequest) (*dto.SemesterResponse, error) {
	semester, err := s.repo.Semester.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("truy vấn học kỳ thất bại", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		semester.Name = *req.Name
	}
	if req.Year != nil {
		semester.Year = *req.Year
	}
	if req.StartDate != nil {
		start, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, ErrSemesterDateInvalid
		}
		semester.StartDate = start
	}
	if req.EndDate != nil {
		end, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return nil, ErrSemesterDateInvalid
		}
		semester.EndDate = end
	}
	if semester.EndDate.Before(semester.StartDate) {
		return nil, ErrSemesterDateInvalid
	}
	if req.IsActive != nil {
		if *req.IsActive && !semester.IsActive {
			if err := s.repo.Semester.ClearActive(ctx); err != nil {
				s.logger.Error("bỏ cờ active học kỳ cũ thất bại", zap.Error(err))
				return nil, err
			}
		}
		semester.IsActive = *req.IsActive
	}

	if err := s.repo.Semester.Update(ctx, semester); err != nil {
		s.logger.Error("cập nhật học kỳ thất bại", zap.Error(err))
		return nil, err
	}

	resp := toSemesterResponse(semester)
	return &resp, nil
}

func (s *semesterService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Semester.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSemesterNotFound
		}
		return err
	}
	return s.repo.Semester.Delete(ctx, id)
}

// toSemesterResponse chuyển model.Semester sang DTO trả về
func toSemesterResponse(m *model.Semester) dto.SemesterResponse {
	return dto.SemesterResponse{
		SemesterID: m.SemesterID,
		Name:       m.Name,
		Year:       m.Year,
		StartDate:  m.StartDate.Format(dateLayout),
		EndDate:    m.EndDate.Format(dateLayout),
		IsActive:   m.IsActive,
	}
}
