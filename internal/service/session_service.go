package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/dto"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/repository"
)

// ── Lỗi nghiệp vụ buổi điểm danh ──

var (
	ErrSessionNotFound      = errors.New("không tìm thấy buổi điểm danh")
	ErrSessionTimeInvalid   = errors.New("giờ học không hợp lệ, định dạng đúng là HH:MM")
	ErrInvalidStatusChange  = errors.New("không thể chuyển sang trạng thái này")
	ErrSessionAlreadyClosed = errors.New("buổi điểm danh đã kết thúc hoặc bị hủy")
)

// SessionService nghiệp vụ buổi điểm danh: sinh lịch tự động từ lịch học
// của lớp, tạo thủ công và chuyển trạng thái.
type SessionService interface {
	// GenerateSessions xóa các buổi còn chờ (pending) rồi sinh lại từ lịch học.
	// Buổi đã điểm danh hoặc đã hủy được giữ nguyên.
	GenerateSessions(ctx context.Context, classID string) (*dto.GenerateSessionsResponse, error)
	GetByID(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	ListByClass(ctx context.Context, classID string) ([]dto.SessionResponse, error)
	ListUpcoming(ctx context.Context, classID string) ([]dto.SessionResponse, error)
	CreateManual(ctx context.Context, classID string, req *dto.CreateSessionRequest, callerID, callerRole string) (*dto.SessionResponse, error)
	UpdateStatus(ctx context.Context, sessionID, status, callerID, callerRole string) (*dto.SessionResponse, error)
}

type sessionService struct {
	repo   *repository.Repository
	scorer ScoreRecomputer
	logger *zap.Logger
}

// ScoreRecomputer tính lại điểm chuyên cần cho cả lớp (cài đặt ở AttendanceService)
type ScoreRecomputer interface {
	RecomputeClassScores(ctx context.Context, classID string) (*dto.RecomputeAllResponse, error)
}

// NewSessionService tạo SessionService
func NewSessionService(repo *repository.Repository, scorer ScoreRecomputer, logger *zap.Logger) SessionService {
	return &sessionService{repo: repo, scorer: scorer, logger: logger}
}

// ════════════════════════════════════════════════════════════
// GenerateSessions — sinh buổi học từ lịch của lớp
// ════════════════════════════════════════════════════════════

func (s *sessionService) GenerateSessions(ctx context.Context, classID string) (*dto.GenerateSessionsResponse, error) {
	tc, err := s.repo.TeachingClass.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeachingClassNotFound
		}
		s.logger.Error("truy vấn lớp giảng dạy thất bại", zap.Error(err))
		return nil, err
	}

	// Chỉ xóa các buổi chưa diễn ra, giữ buổi đã điểm danh
	if err := s.repo.AttendanceSession.DeleteByClassAndStatus(ctx, classID, model.SessionStatusPending); err != nil {
		s.logger.Error("xóa buổi học cũ thất bại", zap.Error(err))
		return nil, err
	}

	resp := &dto.GenerateSessionsResponse{Sessions: []dto.SessionResponse{}}
	if len(tc.Schedule) == 0 {
		return resp, nil
	}

	existing, err := s.repo.AttendanceSession.CountByClass(ctx, classID)
	if err != nil {
		s.logger.Error("đếm buổi học thất bại", zap.Error(err))
		return nil, err
	}
	sessionNumber := int(existing) + 1

	now := time.Now()
	for i := range tc.Schedule {
		entry := &tc.Schedule[i]
		if entry.StartTime == "" || entry.EndTime == "" {
			continue
		}

		var dates []time.Time
		if !entry.IsRecurring {
			// Lớp học theo ngày cụ thể
			for _, ds := range entry.SpecificDates {
				d, err := time.Parse(dateLayout, ds)
				if err != nil {
					s.logger.Warn("bỏ qua ngày học không hợp lệ",
						zap.String("class_id", classID), zap.String("date", ds))
					continue
				}
				dates = append(dates, d)
			}
		} else {
			// Lớp lặp hàng tuần cần đủ khoảng thời gian khóa học
			if entry.DayOfWeek == nil || tc.CourseStartDate == nil || tc.CourseEndDate == nil {
				continue
			}
			for d := *tc.CourseStartDate; !d.After(*tc.CourseEndDate); d = d.AddDate(0, 0, 1) {
				if int(d.Weekday()) != *entry.DayOfWeek {
					continue
				}
				if entry.IsExcluded(d) {
					continue
				}
				dates = append(dates, d)
			}
		}

		// Mỗi mục lịch sinh tối đa total_sessions buổi
		count := 0
		for _, d := range dates {
			if count >= tc.TotalSessions {
				break
			}
			session, err := s.buildSession(tc, sessionNumber, d, entry.StartTime, entry.EndTime, entry.RoomID)
			if err != nil {
				s.logger.Warn("bỏ qua buổi học có giờ không hợp lệ",
					zap.String("class_id", classID), zap.Error(err))
				continue
			}
			if err := s.repo.AttendanceSession.Create(ctx, session); err != nil {
				s.logger.Error("tạo buổi học thất bại",
					zap.String("class_id", classID),
					zap.Int("session_number", sessionNumber),
					zap.Error(err))
				continue
			}
			resp.Sessions = append(resp.Sessions, toSessionResponse(session, now))
			sessionNumber++
			count++
		}
	}

	resp.Generated = len(resp.Sessions)
	return resp, nil
}

// buildSession dựng buổi học tại ngày d với khung giờ "HH:MM";
// danh sách vắng khởi tạo bằng toàn bộ sĩ số lớp tại thời điểm sinh.
func (s *sessionService) buildSession(tc *model.TeachingClass, number int, d time.Time, startHM, endHM, roomID string) (*model.AttendanceSession, error) {
	start, err := combineDateTime(d, startHM)
	if err != nil {
		return nil, err
	}
	end, err := combineDateTime(d, endHM)
	if err != nil {
		return nil, err
	}

	absent := make(model.StringArray, len(tc.Students))
	copy(absent, tc.Students)

	session := &model.AttendanceSession{
		TeachingClassID: tc.TeachingClassID,
		SessionNumber:   number,
		Date:            d,
		StartTime:       start,
		EndTime:         end,
		Status:          model.SessionStatusPending,
		StudentsPresent: model.StringArray{},
		StudentsAbsent:  absent,
	}
	if roomID != "" {
		session.RoomID = &roomID
	}
	return session, nil
}

// ════════════════════════════════════════════════════════════
// Truy vấn và chuyển trạng thái
// ════════════════════════════════════════════════════════════

func (s *sessionService) GetByID(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	resp := toSessionResponse(session, time.Now())
	return &resp, nil
}

func (s *sessionService) ListByClass(ctx context.Context, classID string) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.AttendanceSession.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Error("truy vấn buổi học thất bại", zap.Error(err))
		return nil, err
	}
	return toSessionResponses(sessions), nil
}

func (s *sessionService) ListUpcoming(ctx context.Context, classID string) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.AttendanceSession.ListUpcomingByClass(ctx, classID, time.Now())
	if err != nil {
		s.logger.Error("truy vấn buổi học sắp tới thất bại", zap.Error(err))
		return nil, err
	}
	return toSessionResponses(sessions), nil
}

func (s *sessionService) CreateManual(ctx context.Context, classID string, req *dto.CreateSessionRequest, callerID, callerRole string) (*dto.SessionResponse, error) {
	tc, err := s.repo.TeachingClass.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeachingClassNotFound
		}
		return nil, err
	}
	if !canManageClass(tc, callerID, callerRole) {
		return nil, ErrNotClassTeacher
	}

	d, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrSessionTimeInvalid
	}

	count, err := s.repo.AttendanceSession.CountByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	session, err := s.buildSession(tc, int(count)+1, d, req.StartTime, req.EndTime, req.RoomID)
	if err != nil {
		return nil, ErrSessionTimeInvalid
	}
	if err := s.repo.AttendanceSession.Create(ctx, session); err != nil {
		s.logger.Error("tạo buổi học thất bại", zap.Error(err))
		return nil, err
	}

	resp := toSessionResponse(session, time.Now())
	return &resp, nil
}

// UpdateStatus chuyển trạng thái buổi học. Khi buổi được chốt (completed),
// điểm chuyên cần của cả lớp được tính lại ngay.
func (s *sessionService) UpdateStatus(ctx context.Context, sessionID, status, callerID, callerRole string) (*dto.SessionResponse, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	tc, err := s.repo.TeachingClass.GetByID(ctx, session.TeachingClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeachingClassNotFound
		}
		return nil, err
	}
	if !canManageClass(tc, callerID, callerRole) {
		return nil, ErrNotClassTeacher
	}

	if !validStatusTransition(session.Status, status) {
		return nil, ErrInvalidStatusChange
	}

	session.Status = status
	if err := s.repo.AttendanceSession.Update(ctx, session); err != nil {
		s.logger.Error("cập nhật trạng thái buổi học thất bại", zap.Error(err))
		return nil, err
	}

	if status == model.SessionStatusCompleted {
		if _, err := s.scorer.RecomputeClassScores(ctx, session.TeachingClassID); err != nil {
			s.logger.Error("tính lại điểm chuyên cần thất bại",
				zap.String("class_id", session.TeachingClassID), zap.Error(err))
		}
	}

	resp := toSessionResponse(session, time.Now())
	return &resp, nil
}

// ── Hàm phụ trợ ──

// validStatusTransition buổi đã chốt hoặc đã hủy không quay lại được
func validStatusTransition(from, to string) bool {
	switch from {
	case model.SessionStatusPending:
		return to == model.SessionStatusInProgress ||
			to == model.SessionStatusCompleted ||
			to == model.SessionStatusCancelled
	case model.SessionStatusInProgress:
		return to == model.SessionStatusCompleted || to == model.SessionStatusCancelled
	default:
		return false
	}
}

// combineDateTime ghép ngày với giờ "HH:MM" theo múi giờ địa phương
func combineDateTime(d time.Time, hm string) (time.Time, error) {
	parts := strings.SplitN(hm, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("giờ không hợp lệ: %q", hm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("giờ không hợp lệ: %q", hm)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("giờ không hợp lệ: %q", hm)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location()), nil
}

func (s *sessionService) getSession(ctx context.Context, sessionID string) (*model.AttendanceSession, error) {
	session, err := s.repo.AttendanceSession.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("truy vấn buổi học thất bại", zap.Error(err))
		return nil, err
	}
	return session, nil
}

func toSessionResponses(sessions []model.AttendanceSession) []dto.SessionResponse {
	now := time.Now()
	result := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, toSessionResponse(&sessions[i], now))
	}
	return result
}

// toSessionResponse chuyển model.AttendanceSession sang DTO trả về
func toSessionResponse(sess *model.AttendanceSession, now time.Time) dto.SessionResponse {
	resp := dto.SessionResponse{
		SessionID:       sess.SessionID,
		TeachingClassID: sess.TeachingClassID,
		SessionNumber:   sess.SessionNumber,
		Date:            sess.Date.Format(dateLayout),
		StartTime:       sess.StartTime.Format("15:04"),
		EndTime:         sess.EndTime.Format("15:04"),
		Status:          sess.Status,
		DisplayStatus:   sess.DisplayStatus(now),
		PresentCount:    len(sess.StudentsPresent),
		AbsentCount:     len(sess.StudentsAbsent),
	}
	if sess.Room != nil {
		resp.Room = &dto.RoomBrief{
			ID:       sess.Room.RoomID,
			Name:     sess.Room.Name,
			Building: sess.Room.Building,
		}
	}
	return resp
}
