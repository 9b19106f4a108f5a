package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/dto"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/repository"
)

// ── Lỗi nghiệp vụ lớp chính ──

var (
	ErrMainClassNotFound     = errors.New("không tìm thấy lớp chính")
	ErrStudentAlreadyInClass = errors.New("sinh viên đã có trong lớp")
	ErrStudentAlreadyPending = errors.New("sinh viên đã gửi yêu cầu và đang chờ duyệt")
	ErrStudentNotPending     = errors.New("sinh viên không có trong danh sách chờ duyệt")
	ErrStudentNotInClass     = errors.New("sinh viên không có trong lớp")
	ErrNotClassAdvisor       = errors.New("bạn không phải cố vấn của lớp này")
)

// MainClassService nghiệp vụ lớp chính: CRUD và quy trình duyệt sinh viên
type MainClassService interface {
	Create(ctx context.Context, req *dto.CreateMainClassRequest) (*dto.MainClassResponse, error)
	GetByID(ctx context.Context, id string) (*dto.MainClassResponse, error)
	List(ctx context.Context, req *dto.ListMainClassesRequest) ([]dto.MainClassResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateMainClassRequest) (*dto.MainClassResponse, error)
	Delete(ctx context.Context, id string) error

	// Quy trình duyệt: sinh viên đăng ký vào pending, cố vấn duyệt hoặc từ chối
	RequestJoin(ctx context.Context, classID, studentID string) error
	ListPendingStudents(ctx context.Context, classID, callerID, callerRole string) ([]dto.UserBrief, error)
	ApproveStudent(ctx context.Context, classID, studentID, callerID, callerRole string) error
	RejectStudent(ctx context.Context, classID, studentID, callerID, callerRole string) error
	ListStudents(ctx context.Context, classID string) ([]dto.UserBrief, error)
	RemoveStudent(ctx context.Context, classID, studentID, callerID, callerRole string) error
}

type mainClassService struct {
	repo     *repository.Repository
	notifier NotificationService
	logger   *zap.Logger
}

// NewMainClassService tạo MainClassService
func NewMainClassService(repo *repository.Repository, notifier NotificationService, logger *zap.Logger) MainClassService {
	return &mainClassService{repo: repo, notifier: notifier, logger: logger}
}

func (s *mainClassService) Create(ctx context.Context, req *dto.CreateMainClassRequest) (*dto.MainClassResponse, error) {
	mc := &model.MainClass{
		Name:      req.Name,
		ClassCode: req.ClassCode,
		AdvisorID: req.AdvisorID,
		YearStart: req.YearStart,
	}
	if err := s.repo.MainClass.Create(ctx, mc); err != nil {
		s.logger.Error("tạo lớp chính thất bại", zap.Error(err))
		return nil, err
	}
	return s.getResponse(ctx, mc.MainClassID)
}

func (s *mainClassService) GetByID(ctx context.Context, id string) (*dto.MainClassResponse, error) {
	return s.getResponse(ctx, id)
}

func (s *mainClassService) List(ctx context.Context, req *dto.ListMainClassesRequest) ([]dto.MainClassResponse, int64, error) {
	classes, total, err := s.repo.MainClass.List(ctx, req.Search, req.AdvisorID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("truy vấn danh sách lớp chính thất bại", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.MainClassResponse, 0, len(classes))
	for i := range classes {
		result = append(result, toMainClassResponse(&classes[i]))
	}
	return result, total, nil
}

func (s *mainClassService) Update(ctx context.Context, id string, req *dto.UpdateMainClassRequest) (*dto.MainClassResponse, error) {
	mc, err := s.getClass(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		mc.Name = *req.Name
	}
	if req.ClassCode != nil {
		mc.ClassCode = *req.ClassCode
	}
	if req.AdvisorID != nil {
		mc.AdvisorID = req.AdvisorID
	}
	if req.YearStart != nil {
		mc.YearStart = *req.YearStart
	}

	if err := s.repo.MainClass.Update(ctx, mc); err != nil {
		s.logger.Error("cập nhật lớp chính thất bại", zap.Error(err))
		return nil, err
	}
	return s.getResponse(ctx, id)
}

func (s *mainClassService) Delete(ctx context.Context, id string) error {
	if _, err := s.getClass(ctx, id); err != nil {
		return err
	}
	return s.repo.MainClass.Delete(ctx, id)
}

// ════════════════════════════════════════════════════════════
// Quy trình duyệt sinh viên
// ════════════════════════════════════════════════════════════

func (s *mainClassService) RequestJoin(ctx context.Context, classID, studentID string) error {
	mc, err := s.getClass(ctx, classID)
	if err != nil {
		return err
	}

	if mc.Students.Contains(studentID) {
		return ErrStudentAlreadyInClass
	}
	if mc.PendingStudents.Contains(studentID) {
		return ErrStudentAlreadyPending
	}

	mc.PendingStudents = append(mc.PendingStudents, studentID)
	if err := s.repo.MainClass.Update(ctx, mc); err != nil {
		s.logger.Error("ghi yêu cầu vào lớp thất bại", zap.Error(err))
		return err
	}

	// Báo cho cố vấn có yêu cầu mới (best-effort)
	if mc.AdvisorID != nil {
		student, err := s.repo.User.GetByID(ctx, studentID)
		name := studentID
		if err == nil {
			name = student.FullName
		}
		s.notifier.Notify(ctx, *mc.AdvisorID, &studentID, model.NotificationClassEnrollment,
			fmt.Sprintf("Sinh viên %s xin vào lớp %s", name, mc.Name),
			fmt.Sprintf("/main-classes/%s/pending", mc.MainClassID))
	}
	return nil
}

func (s *mainClassService) ListPendingStudents(ctx context.Context, classID, callerID, callerRole string) ([]dto.UserBrief, error) {
	mc, err := s.getClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	if !canManageMainClass(mc, callerID, callerRole) {
		return nil, ErrNotClassAdvisor
	}
	return s.listBriefs(ctx, mc.PendingStudents)
}

func (s *mainClassService) ApproveStudent(ctx context.Context, classID, studentID, callerID, callerRole string) error {
	mc, err := s.getClass(ctx, classID)
	if err != nil {
		return err
	}
	if !canManageMainClass(mc, callerID, callerRole) {
		return ErrNotClassAdvisor
	}
	if !mc.PendingStudents.Contains(studentID) {
		return ErrStudentNotPending
	}

	mc.PendingStudents = mc.PendingStudents.Remove(studentID)
	if !mc.Students.Contains(studentID) {
		mc.Students = append(mc.Students, studentID)
	}
	if err := s.repo.MainClass.Update(ctx, mc); err != nil {
		s.logger.Error("duyệt sinh viên thất bại", zap.Error(err))
		return err
	}

	s.notifier.Notify(ctx, studentID, &callerID, model.NotificationEnrollApproved,
		fmt.Sprintf("Bạn đã được duyệt vào lớp %s", mc.Name),
		fmt.Sprintf("/main-classes/%s", mc.MainClassID))
	return nil
}

func (s *mainClassService) RejectStudent(ctx context.Context, classID, studentID, callerID, callerRole string) error {
	mc, err := s.getClass(ctx, classID)
	if err != nil {
		return err
	}
	if !canManageMainClass(mc, callerID, callerRole) {
		return ErrNotClassAdvisor
	}
	if !mc.PendingStudents.Contains(studentID) {
		return ErrStudentNotPending
	}

	mc.PendingStudents = mc.PendingStudents.Remove(studentID)
	if err := s.repo.MainClass.Update(ctx, mc); err != nil {
		s.logger.Error("từ chối sinh viên thất bại", zap.Error(err))
		return err
	}

	s.notifier.Notify(ctx, studentID, &callerID, model.NotificationEnrollRejected,
		fmt.Sprintf("Yêu cầu vào lớp %s đã bị từ chối", mc.Name),
		fmt.Sprintf("/main-classes/%s", mc.MainClassID))
	return nil
}

func (s *mainClassService) ListStudents(ctx context.Context, classID string) ([]dto.UserBrief, error) {
	mc, err := s.getClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	return s.listBriefs(ctx, mc.Students)
}

func (s *mainClassService) RemoveStudent(ctx context.Context, classID, studentID, callerID, callerRole string) error {
	mc, err := s.getClass(ctx, classID)
	if err != nil {
		return err
	}
	if !canManageMainClass(mc, callerID, callerRole) {
		return ErrNotClassAdvisor
	}
	if !mc.Students.Contains(studentID) {
		return ErrStudentNotInClass
	}

	mc.Students = mc.Students.Remove(studentID)
	if err := s.repo.MainClass.Update(ctx, mc); err != nil {
		s.logger.Error("xóa sinh viên khỏi lớp chính thất bại", zap.Error(err))
		return err
	}
	return nil
}

// ── Hàm phụ trợ ──

// canManageMainClass admin hoặc cố vấn của chính lớp đó
func canManageMainClass(mc *model.MainClass, callerID, callerRole string) bool {
	if callerRole == model.RoleAdmin {
		return true
	}
	return mc.AdvisorID != nil && *mc.AdvisorID == callerID
}

func (s *mainClassService) getClass(ctx context.Context, id string) (*model.MainClass, error) {
	mc, err := s.repo.MainClass.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMainClassNotFound
		}
		s.logger.Error("truy vấn lớp chính thất bại", zap.Error(err))
		return nil, err
	}
	return mc, nil
}

func (s *mainClassService) getResponse(ctx context.Context, id string) (*dto.MainClassResponse, error) {
	mc, err := s.getClass(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toMainClassResponse(mc)
	return &resp, nil
}

func (s *mainClassService) listBriefs(ctx context.Context, ids model.StringArray) ([]dto.UserBrief, error) {
	if len(ids) == 0 {
		return []dto.UserBrief{}, nil
	}
	users, err := s.repo.User.ListByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("truy vấn danh sách sinh viên thất bại", zap.Error(err))
		return nil, err
	}
	result := make([]dto.UserBrief, 0, len(users))
	for i := range users {
		result = append(result, *toUserBrief(&users[i]))
	}
	return result, nil
}

// toMainClassResponse chuyển model.MainClass sang DTO trả về
func toMainClassResponse(mc *model.MainClass) dto.MainClassResponse {
	return dto.MainClassResponse{
		MainClassID:  mc.MainClassID,
		Name:         mc.Name,
		ClassCode:    mc.ClassCode,
		Advisor:      toUserBrief(mc.Advisor),
		YearStart:    mc.YearStart,
		StudentCount: len(mc.Students),
		PendingCount: len(mc.PendingStudents),
	}
}
