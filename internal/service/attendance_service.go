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

// ── Lỗi nghiệp vụ điểm danh ──

var (
	ErrInvalidAttendanceStatus = errors.New("trạng thái điểm danh không hợp lệ")
	ErrScoreNotFound           = errors.New("không tìm thấy điểm chuyên cần")
)

// AttendanceService nghiệp vụ ghi nhận điểm danh và điểm chuyên cần.
//
// Điểm chuyên cần là dữ liệu dẫn xuất: luôn tính lại được từ các buổi đã
// hoàn thành và bản ghi điểm danh, nên mọi thao tác ghi đều kết thúc bằng
// một lượt tính lại.
type AttendanceService interface {
	// RecordAttendance ghi nhận trạng thái của một sinh viên trong một buổi,
	// ghi đè bản ghi cũ nếu đã điểm danh trước đó
	RecordAttendance(ctx context.Context, sessionID string, req *dto.RecordAttendanceRequest, callerID, callerRole string) (*dto.AttendanceLogResponse, error)
	ListSessionLogs(ctx context.Context, sessionID string) ([]dto.AttendanceLogResponse, error)

	// RecomputeStudentScore tính lại điểm chuyên cần của một sinh viên từ đầu
	RecomputeStudentScore(ctx context.Context, classID, studentID string) (*dto.StudentScoreResponse, error)
	RecomputeClassScores(ctx context.Context, classID string) (*dto.RecomputeAllResponse, error)
	ListClassScores(ctx context.Context, classID string) ([]dto.StudentScoreResponse, error)
	GetMyScore(ctx context.Context, classID, studentID string) (*dto.StudentScoreResponse, error)
	GetStudentDetail(ctx context.Context, classID, studentID string) (*dto.StudentAttendanceDetail, error)
	UpdateStudentScore(ctx context.Context, classID, studentID string, req *dto.UpdateStudentScoreRequest, callerID, callerRole string) (*dto.StudentScoreResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService tạo AttendanceService
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════════════
// RecordAttendance — ghi nhận điểm danh
// ════════════════════════════════════════════════════════════

func (s *attendanceService) RecordAttendance(ctx context.Context, sessionID string, req *dto.RecordAttendanceRequest, callerID, callerRole string) (*dto.AttendanceLogResponse, error) {
	status := model.AttendanceStatus(req.Status)
	if !status.Valid() {
		return nil, ErrInvalidAttendanceStatus
	}

	session, err := s.repo.AttendanceSession.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("truy vấn buổi học thất bại", zap.Error(err))
		return nil, err
	}
	if session.Status == model.SessionStatusCancelled {
		return nil, ErrSessionAlreadyClosed
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
	if !tc.Students.Contains(req.StudentID) {
		return nil, ErrStudentNotEnrolled
	}

	log := &model.AttendanceLog{
		SessionID: sessionID,
		StudentID: req.StudentID,
		Status:    status,
		Note:      req.Note,
		Timestamp: time.Now(),
	}
	if err := s.repo.AttendanceLog.Upsert(ctx, log); err != nil {
		s.logger.Error("ghi bản ghi điểm danh thất bại", zap.Error(err))
		return nil, err
	}

	// Đồng bộ danh sách có mặt / vắng của buổi học
	session.StudentsPresent = session.StudentsPresent.Remove(req.StudentID)
	session.StudentsAbsent = session.StudentsAbsent.Remove(req.StudentID)
	if status.CountsAsPresent() {
		session.StudentsPresent = append(session.StudentsPresent, req.StudentID)
	} else {
		session.StudentsAbsent = append(session.StudentsAbsent, req.StudentID)
	}
	if err := s.repo.AttendanceSession.Update(ctx, session); err != nil {
		s.logger.Error("cập nhật danh sách buổi học thất bại", zap.Error(err))
		return nil, err
	}

	// Tính lại điểm cả lớp; lỗi ở đây không làm hỏng lượt điểm danh
	if _, err := s.RecomputeClassScores(ctx, session.TeachingClassID); err != nil {
		s.logger.Error("tính lại điểm chuyên cần thất bại",
			zap.String("class_id", session.TeachingClassID), zap.Error(err))
	}

	resp := s.toLogResponse(ctx, log)
	return &resp, nil
}

func (s *attendanceService) ListSessionLogs(ctx context.Context, sessionID string) ([]dto.AttendanceLogResponse, error) {
	if _, err := s.repo.AttendanceSession.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	logs, err := s.repo.AttendanceLog.ListBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("truy vấn bản ghi điểm danh thất bại", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AttendanceLogResponse, 0, len(logs))
	for i := range logs {
		result = append(result, s.toLogResponse(ctx, &logs[i]))
	}
	return result, nil
}

// ════════════════════════════════════════════════════════════
// Điểm chuyên cần — tính lại từ dữ liệu gốc
// ════════════════════════════════════════════════════════════

// RecomputeStudentScore đếm từ đầu trên các buổi đã hoàn thành:
// có bản ghi điểm danh thì bản ghi là nguồn sự thật (chỉ "present" được
// tính có mặt), chưa có thì tra danh sách có mặt của buổi. Đi muộn và
// có phép vẫn tính là vắng khi trừ điểm.
func (s *attendanceService) RecomputeStudentScore(ctx context.Context, classID, studentID string) (*dto.StudentScoreResponse, error) {
	tc, err := s.repo.TeachingClass.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeachingClassNotFound
		}
		return nil, err
	}

	score, err := s.recompute(ctx, tc, studentID)
	if err != nil {
		return nil, err
	}

	resp := s.toScoreResponse(ctx, score)
	return &resp, nil
}

func (s *attendanceService) recompute(ctx context.Context, tc *model.TeachingClass, studentID string) (*model.StudentScore, error) {
	completed, err := s.repo.AttendanceSession.ListByClassAndStatus(ctx, tc.TeachingClassID, model.SessionStatusCompleted)
	if err != nil {
		s.logger.Error("truy vấn buổi hoàn thành thất bại", zap.Error(err))
		return nil, err
	}

	sessionIDs := make([]string, 0, len(completed))
	for _, sess := range completed {
		sessionIDs = append(sessionIDs, sess.SessionID)
	}

	logs, err := s.repo.AttendanceLog.ListByStudentAndSessions(ctx, studentID, sessionIDs)
	if err != nil {
		s.logger.Error("truy vấn bản ghi điểm danh thất bại", zap.Error(err))
		return nil, err
	}
	logBySession := make(map[string]model.AttendanceStatus, len(logs))
	for _, l := range logs {
		logBySession[l.SessionID] = l.Status
	}

	present := 0
	for i := range completed {
		sess := &completed[i]
		if st, ok := logBySession[sess.SessionID]; ok {
			if st == model.AttendancePresent {
				present++
			}
			continue
		}
		if sess.StudentsPresent.Contains(studentID) {
			present++
		}
	}

	absent := len(completed) - present
	score := &model.StudentScore{
		TeachingClassID:     tc.TeachingClassID,
		StudentID:           studentID,
		TotalSessions:       len(completed),
		AbsentSessions:      absent,
		AttendanceScore:     model.AttendanceScoreFor(absent),
		MaxAbsentAllowed:    tc.MaxAbsentAllowed,
		IsFailedDueToAbsent: absent > tc.MaxAbsentAllowed,
		LastUpdated:         time.Now(),
	}
	if err := s.repo.StudentScore.Upsert(ctx, score); err != nil {
		s.logger.Error("ghi điểm chuyên cần thất bại", zap.Error(err))
		return nil, err
	}
	return score, nil
}

// RecomputeClassScores tính lại cho từng sinh viên của lớp; một em lỗi
// không chặn các em còn lại.
func (s *attendanceService) RecomputeClassScores(ctx context.Context, classID string) (*dto.RecomputeAllResponse, error) {
	tc, err := s.repo.TeachingClass.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeachingClassNotFound
		}
		return nil, err
	}

	resp := &dto.RecomputeAllResponse{
		Total:   len(tc.Students),
		Results: make([]dto.RecomputeResult, 0, len(tc.Students)),
	}
	for _, sid := range tc.Students {
		if _, err := s.recompute(ctx, tc, sid); err != nil {
			resp.Failed++
			resp.Results = append(resp.Results, dto.RecomputeResult{
				StudentID: sid,
				Error:     err.Error(),
			})
			continue
		}
		resp.Success++
		resp.Results = append(resp.Results, dto.RecomputeResult{StudentID: sid, OK: true})
	}
	return resp, nil
}

func (s *attendanceService) ListClassScores(ctx context.Context, classID string) ([]dto.StudentScoreResponse, error) {
	if _, err := s.repo.TeachingClass.GetByID(ctx, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeachingClassNotFound
		}
		return nil, err
	}

	scores, err := s.repo.StudentScore.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Error("truy vấn điểm chuyên cần thất bại", zap.Error(err))
		return nil, err
	}

	result := make([]dto.StudentScoreResponse, 0, len(scores))
	for i := range scores {
		result = append(result, s.toScoreResponse(ctx, &scores[i]))
	}
	return result, nil
}

// GetMyScore sinh viên xem điểm của mình; tính lại ngay lúc đọc để
// số liệu luôn khớp với các buổi đã chốt.
func (s *attendanceService) GetMyScore(ctx context.Context, classID, studentID string) (*dto.StudentScoreResponse, error) {
	tc, err := s.repo.TeachingClass.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeachingClassNotFound
		}
		return nil, err
	}
	if !tc.Students.Contains(studentID) {
		return nil, ErrStudentNotEnrolled
	}

	score, err := s.recompute(ctx, tc, studentID)
	if err != nil {
		return nil, err
	}

	resp := s.toScoreResponse(ctx, score)
	return &resp, nil
}

// GetStudentDetail điểm kèm trạng thái từng buổi đã hoàn thành và các
// buổi sắp tới của một sinh viên.
func (s *attendanceService) GetStudentDetail(ctx context.Context, classID, studentID string) (*dto.StudentAttendanceDetail, error) {
	tc, err := s.repo.TeachingClass.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeachingClassNotFound
		}
		return nil, err
	}
	if !tc.Students.Contains(studentID) {
		return nil, ErrStudentNotEnrolled
	}

	score, err := s.recompute(ctx, tc, studentID)
	if err != nil {
		return nil, err
	}
	scoreResp := s.toScoreResponse(ctx, score)

	completed, err := s.repo.AttendanceSession.ListByClassAndStatus(ctx, classID, model.SessionStatusCompleted)
	if err != nil {
		return nil, err
	}
	sessionIDs := make([]string, 0, len(completed))
	for _, sess := range completed {
		sessionIDs = append(sessionIDs, sess.SessionID)
	}
	logs, err := s.repo.AttendanceLog.ListByStudentAndSessions(ctx, studentID, sessionIDs)
	if err != nil {
		return nil, err
	}
	logBySession := make(map[string]*model.AttendanceLog, len(logs))
	for i := range logs {
		logBySession[logs[i].SessionID] = &logs[i]
	}

	entries := make([]dto.SessionLogEntry, 0, len(completed))
	for i := range completed {
		sess := &completed[i]
		entry := dto.SessionLogEntry{
			SessionID:     sess.SessionID,
			SessionNumber: sess.SessionNumber,
			Date:          sess.Date.Format(dateLayout),
		}
		if l, ok := logBySession[sess.SessionID]; ok {
			entry.Status = string(l.Status)
			entry.Note = l.Note
		} else if sess.StudentsPresent.Contains(studentID) {
			entry.Status = string(model.AttendancePresent)
		} else {
			entry.Status = string(model.AttendanceAbsent)
		}
		entries = append(entries, entry)
	}

	upcoming, err := s.repo.AttendanceSession.ListUpcomingByClass(ctx, classID, time.Now())
	if err != nil {
		return nil, err
	}

	return &dto.StudentAttendanceDetail{
		Score:    &scoreResp,
		Sessions: entries,
		Upcoming: toSessionResponses(upcoming),
	}, nil
}

// UpdateStudentScore giảng viên nhập điểm cuối kỳ hoặc ghi chú;
// phần chuyên cần vẫn do hệ thống tính, không sửa tay được.
func (s *attendanceService) UpdateStudentScore(ctx context.Context, classID, studentID string, req *dto.UpdateStudentScoreRequest, callerID, callerRole string) (*dto.StudentScoreResponse, error) {
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

	score, err := s.repo.StudentScore.GetByClassAndStudent(ctx, classID, studentID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// Chưa có bản ghi thì dựng từ dữ liệu điểm danh
		score, err = s.recompute(ctx, tc, studentID)
		if err != nil {
			return nil, err
		}
	}

	if req.FinalScore != nil {
		score.FinalScore = req.FinalScore
	}
	if req.Note != nil {
		score.Note = *req.Note
	}
	if err := s.repo.StudentScore.Update(ctx, score); err != nil {
		s.logger.Error("cập nhật điểm sinh viên thất bại", zap.Error(err))
		return nil, err
	}

	resp := s.toScoreResponse(ctx, score)
	return &resp, nil
}

// ── Hàm phụ trợ ──

func (s *attendanceService) toLogResponse(ctx context.Context, log *model.AttendanceLog) dto.AttendanceLogResponse {
	resp := dto.AttendanceLogResponse{
		LogID:     log.LogID,
		SessionID: log.SessionID,
		Status:    string(log.Status),
		Note:      log.Note,
		Timestamp: log.Timestamp.Format("2006-01-02T15:04:05Z"),
	}
	if user, err := s.repo.User.GetByID(ctx, log.StudentID); err == nil {
		resp.Student = toUserBrief(user)
	} else {
		resp.Student = &dto.UserBrief{ID: log.StudentID}
	}
	return resp
}

func (s *attendanceService) toScoreResponse(ctx context.Context, score *model.StudentScore) dto.StudentScoreResponse {
	resp := dto.StudentScoreResponse{
		ScoreID:             score.ScoreID,
		TeachingClassID:     score.TeachingClassID,
		TotalSessions:       score.TotalSessions,
		AbsentSessions:      score.AbsentSessions,
		AttendanceScore:     score.AttendanceScore,
		MaxAbsentAllowed:    score.MaxAbsentAllowed,
		IsFailedDueToAbsent: score.IsFailedDueToAbsent,
		FinalScore:          score.FinalScore,
		Note:                score.Note,
		LastUpdated:         score.LastUpdated.Format("2006-01-02T15:04:05Z"),
	}
	if user, err := s.repo.User.GetByID(ctx, score.StudentID); err == nil {
		resp.Student = toUserBrief(user)
	} else {
		resp.Student = &dto.UserBrief{ID: score.StudentID}
	}
	return resp
}
