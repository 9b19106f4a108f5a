package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/dto"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/repository"
)

// ── Lỗi nghiệp vụ lớp giảng dạy ──

var (
	ErrTeachingClassNotFound = errors.New("không tìm thấy lớp giảng dạy")
	ErrCourseDateOutOfRange  = errors.New("thời gian khóa học phải nằm trong khoảng thời gian của học kỳ")
	ErrScheduleMissingRoom   = errors.New("vui lòng chọn phòng học cho tất cả các buổi trong lịch")
	ErrCourseDateInvalid     = errors.New("ngày kết thúc khóa học phải sau ngày bắt đầu")
	ErrScheduleTimeInvalid   = errors.New("khung giờ học phải theo định dạng HH:MM và giờ bắt đầu trước giờ kết thúc")
	ErrNotClassTeacher       = errors.New("bạn không phải giảng viên của lớp này")
	ErrStudentNotEnrolled    = errors.New("sinh viên chưa đăng ký lớp này")
	ErrNotAStudent           = errors.New("người dùng không phải sinh viên")
)

// TeachingClassService nghiệp vụ lớp giảng dạy: CRUD, kiểm tra trùng lịch,
// quản lý sinh viên trong lớp và dọn dẹp dữ liệu liên quan khi xóa.
type TeachingClassService interface {
	Create(ctx context.Context, req *dto.CreateTeachingClassRequest) (*dto.TeachingClassResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TeachingClassResponse, error)
	List(ctx context.Context, req *dto.ListTeachingClassesRequest) ([]dto.TeachingClassResponse, int64, error)
	ListMine(ctx context.Context, userID, role string, req *dto.ListTeachingClassesRequest) ([]dto.TeachingClassResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateTeachingClassRequest, callerID, callerRole string) (*dto.TeachingClassResponse, error)
	Delete(ctx context.Context, id string, callerID, callerRole string) error

	// CheckConflicts so khớp lịch dự kiến với các lớp hiện có, trả về dữ liệu
	// tham khảo (không chặn lưu)
	CheckConflicts(ctx context.Context, req *dto.CheckConflictsRequest) (*dto.CheckConflictsResponse, error)

	AddStudent(ctx context.Context, classID, studentID, callerID, callerRole string) error
	BatchAddStudents(ctx context.Context, classID string, studentIDs []string, callerID, callerRole string) (*dto.BatchAddStudentsResponse, error)
	RemoveStudent(ctx context.Context, classID, studentID, callerID, callerRole string) error
	ListStudents(ctx context.Context, classID string) ([]dto.UserBrief, error)
}

type teachingClassService struct {
	repo       *repository.Repository
	sessionSvc SessionService
	notifier   NotificationService
	logger     *zap.Logger
}

// NewTeachingClassService tạo TeachingClassService
func NewTeachingClassService(
	repo *repository.Repository,
	sessionSvc SessionService,
	notifier NotificationService,
	logger *zap.Logger,
) TeachingClassService {
	return &teachingClassService{
		repo:       repo,
		sessionSvc: sessionSvc,
		notifier:   notifier,
		logger:     logger,
	}
}

func (s *teachingClassService) Create(ctx context.Context, req *dto.CreateTeachingClassRequest) (*dto.TeachingClassResponse, error) {
	schedule := scheduleFromRequest(req.Schedule)
	if err := validateSchedule(schedule); err != nil {
		return nil, err
	}

	start, end, err := parseCourseDates(req.CourseStartDate, req.CourseEndDate)
	if err != nil {
		return nil, err
	}

	// Khoảng thời gian khóa học phải nằm trong học kỳ
	if start != nil && end != nil {
		semester, err := s.repo.Semester.GetByID(ctx, req.SemesterID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSemesterNotFound
			}
			s.logger.Error("truy vấn học kỳ thất bại", zap.Error(err))
			return nil, err
		}
		if !semester.ContainsRange(*start, *end) {
			return nil, ErrCourseDateOutOfRange
		}
	}

	totalSessions := req.TotalSessions
	if totalSessions <= 0 {
		totalSessions = 15
	}
	maxAbsent := 3
	if req.MaxAbsentAllowed != nil {
		maxAbsent = *req.MaxAbsentAllowed
	}
	autoGenerate := true
	if req.AutoGenerateSessions != nil {
		autoGenerate = *req.AutoGenerateSessions
	}

	tc := &model.TeachingClass{
		ClassName:            req.Name,
		ClassCode:            req.ClassCode,
		SubjectID:            req.SubjectID,
		TeacherID:            req.TeacherID,
		MainClassID:          req.MainClassID,
		SemesterID:           req.SemesterID,
		TotalSessions:        totalSessions,
		MaxAbsentAllowed:     maxAbsent,
		Schedule:             schedule,
		Students:             model.StringArray{},
		CourseStartDate:      start,
		CourseEndDate:        end,
		AutoGenerateSessions: autoGenerate,
	}
	if err := s.repo.TeachingClass.Create(ctx, tc); err != nil {
		s.logger.Error("tạo lớp giảng dạy thất bại", zap.Error(err))
		return nil, err
	}

	// Sinh buổi học tự động, lỗi chỉ ghi log
	if autoGenerate {
		if _, err := s.sessionSvc.GenerateSessions(ctx, tc.TeachingClassID); err != nil {
			s.logger.Error("sinh buổi học tự động thất bại",
				zap.String("class_id", tc.TeachingClassID), zap.Error(err))
		}
	}

	return s.getResponse(ctx, tc.TeachingClassID)
}

func (s *teachingClassService) GetByID(ctx context.Context, id string) (*dto.TeachingClassResponse, error) {
	return s.getResponse(ctx, id)
}

func (s *teachingClassService) List(ctx context.Context, req *dto.ListTeachingClassesRequest) ([]dto.TeachingClassResponse, int64, error) {
	filter := repository.TeachingClassFilter{
		TeacherID:  req.TeacherID,
		SemesterID: req.SemesterID,
		Search:     req.Search,
	}
	return s.list(ctx, filter, req)
}

// ListMine giảng viên thấy lớp mình dạy, sinh viên thấy lớp mình học
func (s *teachingClassService) ListMine(ctx context.Context, userID, role string, req *dto.ListTeachingClassesRequest) ([]dto.TeachingClassResponse, int64, error) {
	filter := repository.TeachingClassFilter{
		SemesterID: req.SemesterID,
		Search:     req.Search,
	}
	switch role {
	case model.RoleTeacher:
		filter.TeacherID = userID
	case model.RoleStudent:
		filter.StudentID = userID
	}
	return s.list(ctx, filter, req)
}

func (s *teachingClassService) list(ctx context.Context, filter repository.TeachingClassFilter, req *dto.ListTeachingClassesRequest) ([]dto.TeachingClassResponse, int64, error) {
	classes, total, err := s.repo.TeachingClass.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("truy vấn danh sách lớp giảng dạy thất bại", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.TeachingClassResponse, 0, len(classes))
	for i := range classes {
		result = append(result, toTeachingClassResponse(&classes[i]))
	}
	return result, total, nil
}

func (s *teachingClassService) Update(ctx context.Context, id string, req *dto.UpdateTeachingClassRequest, callerID, callerRole string) (*dto.TeachingClassResponse, error) {
	tc, err := s.getClass(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManageClass(tc, callerID, callerRole) {
		return nil, ErrNotClassTeacher
	}

	scheduleChanged := false

	if req.Name != nil {
		tc.ClassName = *req.Name
	}
	if req.ClassCode != nil {
		tc.ClassCode = *req.ClassCode
	}
	if req.SubjectID != nil {
		tc.SubjectID = *req.SubjectID
	}
	if req.TeacherID != nil {
		tc.TeacherID = *req.TeacherID
	}
	if req.SemesterID != nil {
		tc.SemesterID = *req.SemesterID
	}
	if req.TotalSessions != nil {
		tc.TotalSessions = *req.TotalSessions
		scheduleChanged = true
	}
	if req.MaxAbsentAllowed != nil {
		tc.MaxAbsentAllowed = *req.MaxAbsentAllowed
	}
	if req.Schedule != nil {
		schedule := scheduleFromRequest(req.Schedule)
		if err := validateSchedule(schedule); err != nil {
			return nil, err
		}
		tc.Schedule = schedule
		scheduleChanged = true
	}
	if req.CourseStartDate != nil {
		start, err := time.Parse(dateLayout, *req.CourseStartDate)
		if err != nil {
			return nil, ErrCourseDateInvalid
		}
		tc.CourseStartDate = &start
		scheduleChanged = true
	}
	if req.CourseEndDate != nil {
		end, err := time.Parse(dateLayout, *req.CourseEndDate)
		if err != nil {
			return nil, ErrCourseDateInvalid
		}
		tc.CourseEndDate = &end
		scheduleChanged = true
	}
	if req.AutoGenerateSessions != nil {
		tc.AutoGenerateSessions = *req.AutoGenerateSessions
	}

	if tc.CourseStartDate != nil && tc.CourseEndDate != nil {
		if tc.CourseEndDate.Before(*tc.CourseStartDate) {
			return nil, ErrCourseDateInvalid
		}
		semester, err := s.repo.Semester.GetByID(ctx, tc.SemesterID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSemesterNotFound
			}
			return nil, err
		}
		if !semester.ContainsRange(*tc.CourseStartDate, *tc.CourseEndDate) {
			return nil, ErrCourseDateOutOfRange
		}
	}

	if err := s.repo.TeachingClass.Update(ctx, tc); err != nil {
		s.logger.Error("cập nhật lớp giảng dạy thất bại", zap.Error(err))
		return nil, err
	}

	// Lịch thay đổi: sinh lại các buổi chưa diễn ra và báo cho sinh viên
	if scheduleChanged && tc.AutoGenerateSessions {
		if _, err := s.sessionSvc.GenerateSessions(ctx, tc.TeachingClassID); err != nil {
			s.logger.Error("sinh lại buổi học thất bại",
				zap.String("class_id", tc.TeachingClassID), zap.Error(err))
		}
		s.notifier.NotifyMany(ctx, tc.Students, &callerID, model.NotificationScheduleUpdate,
			fmt.Sprintf("Lịch học lớp %s vừa được cập nhật", tc.ClassName),
			fmt.Sprintf("/teaching-classes/%s", tc.TeachingClassID))
	}

	return s.getResponse(ctx, id)
}

// Delete xóa lớp kèm toàn bộ dữ liệu dẫn xuất trong một transaction:
// bản ghi điểm danh, buổi học, điểm chuyên cần rồi mới đến lớp.
func (s *teachingClassService) Delete(ctx context.Context, id string, callerID, callerRole string) error {
	tc, err := s.getClass(ctx, id)
	if err != nil {
		return err
	}
	if !canManageClass(tc, callerID, callerRole) {
		return ErrNotClassTeacher
	}

	sessions, err := s.repo.AttendanceSession.ListByClass(ctx, id)
	if err != nil {
		s.logger.Error("truy vấn buổi học thất bại", zap.Error(err))
		return err
	}
	sessionIDs := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		sessionIDs = append(sessionIDs, sess.SessionID)
	}

	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.AttendanceLog.DeleteBySessions(ctx, sessionIDs); err != nil {
			return err
		}
		if err := tx.AttendanceSession.DeleteByClass(ctx, id); err != nil {
			return err
		}
		if err := tx.StudentScore.DeleteByClass(ctx, id); err != nil {
			return err
		}
		return tx.TeachingClass.Delete(ctx, id)
	})
}

// ════════════════════════════════════════════════════════════
// CheckConflicts — kiểm tra trùng lịch giảng viên và phòng học
// ════════════════════════════════════════════════════════════

func (s *teachingClassService) CheckConflicts(ctx context.Context, req *dto.CheckConflictsRequest) (*dto.CheckConflictsResponse, error) {
	candidate := scheduleFromRequest(req.Schedule)

	// Trùng giảng viên: các lớp khác của cùng giảng viên
	teacherClasses, err := s.repo.TeachingClass.ListByTeacher(ctx, req.TeacherID, req.ExcludeClassID)
	if err != nil {
		s.logger.Error("truy vấn lớp theo giảng viên thất bại", zap.Error(err))
		return nil, err
	}

	// Trùng phòng: mọi lớp có lịch học
	scheduledClasses, err := s.repo.TeachingClass.ListScheduled(ctx, req.ExcludeClassID)
	if err != nil {
		s.logger.Error("truy vấn lớp có lịch thất bại", zap.Error(err))
		return nil, err
	}

	conflicts := make([]dto.ScheduleConflict, 0)
	for i := range candidate {
		entry := &candidate[i]
		// Mục lịch thiếu thông tin thì bỏ qua
		if !entry.IsComplete() {
			continue
		}

		for j := range teacherClasses {
			other := &teacherClasses[j]
			for k := range other.Schedule {
				oe := &other.Schedule[k]
				if !oe.IsComplete() || *oe.DayOfWeek != *entry.DayOfWeek {
					continue
				}
				if timeRangesOverlap(entry.StartTime, entry.EndTime, oe.StartTime, oe.EndTime) {
					subject := subjectName(other.Subject)
					conflicts = append(conflicts, dto.ScheduleConflict{
						Type:      "teacher",
						DayOfWeek: *entry.DayOfWeek,
						StartTime: oe.StartTime,
						EndTime:   oe.EndTime,
						ClassInfo: dto.ClassBrief{
							ID:      other.TeachingClassID,
							Name:    other.ClassName,
							Code:    other.ClassCode,
							Subject: subject,
						},
						Message: fmt.Sprintf("Giảng viên đã có lịch dạy lớp %s (%s) vào %s lúc %s - %s",
							other.ClassName, subject, dayOfWeekName(*entry.DayOfWeek), oe.StartTime, oe.EndTime),
					})
				}
			}
		}

		for j := range scheduledClasses {
			other := &scheduledClasses[j]
			for k := range other.Schedule {
				oe := &other.Schedule[k]
				if !oe.IsComplete() || oe.RoomID != entry.RoomID || *oe.DayOfWeek != *entry.DayOfWeek {
					continue
				}
				if timeRangesOverlap(entry.StartTime, entry.EndTime, oe.StartTime, oe.EndTime) {
					subject := subjectName(other.Subject)
					teacher := teacherName(other.Teacher)
					conflicts = append(conflicts, dto.ScheduleConflict{
						Type:      "room",
						DayOfWeek: *entry.DayOfWeek,
						StartTime: oe.StartTime,
						EndTime:   oe.EndTime,
						RoomID:    entry.RoomID,
						ClassInfo: dto.ClassBrief{
							ID:      other.TeachingClassID,
							Name:    other.ClassName,
							Code:    other.ClassCode,
							Subject: subject,
							Teacher: teacher,
						},
						Message: fmt.Sprintf("Phòng học đã được đặt cho lớp %s (%s) của giảng viên %s vào %s lúc %s - %s",
							other.ClassName, subject, teacher, dayOfWeekName(*entry.DayOfWeek), oe.StartTime, oe.EndTime),
					})
				}
			}
		}
	}

	return &dto.CheckConflictsResponse{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
	}, nil
}

// ════════════════════════════════════════════════════════════
// Quản lý sinh viên trong lớp
// ════════════════════════════════════════════════════════════

func (s *teachingClassService) AddStudent(ctx context.Context, classID, studentID, callerID, callerRole string) error {
	tc, err := s.getClass(ctx, classID)
	if err != nil {
		return err
	}
	if !canManageClass(tc, callerID, callerRole) {
		return ErrNotClassTeacher
	}

	if err := s.addOne(ctx, tc, studentID); err != nil {
		return err
	}
	if err := s.repo.TeachingClass.Update(ctx, tc); err != nil {
		s.logger.Error("cập nhật danh sách sinh viên thất bại", zap.Error(err))
		return err
	}

	s.notifier.Notify(ctx, studentID, &callerID, model.NotificationClassEnrollment,
		fmt.Sprintf("Bạn đã được thêm vào lớp %s", tc.ClassName),
		fmt.Sprintf("/teaching-classes/%s", tc.TeachingClassID))
	return nil
}

// BatchAddStudents thêm nhiều sinh viên, bỏ qua em đã có trong lớp
// hoặc không hợp lệ thay vì hủy cả lô.
func (s *teachingClassService) BatchAddStudents(ctx context.Context, classID string, studentIDs []string, callerID, callerRole string) (*dto.BatchAddStudentsResponse, error) {
	tc, err := s.getClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	if !canManageClass(tc, callerID, callerRole) {
		return nil, ErrNotClassTeacher
	}

	resp := &dto.BatchAddStudentsResponse{
		Added:   make([]string, 0, len(studentIDs)),
		Skipped: make([]string, 0),
	}
	for _, sid := range studentIDs {
		if err := s.addOne(ctx, tc, sid); err != nil {
			resp.Skipped = append(resp.Skipped, sid)
			continue
		}
		resp.Added = append(resp.Added, sid)
	}

	if len(resp.Added) > 0 {
		if err := s.repo.TeachingClass.Update(ctx, tc); err != nil {
			s.logger.Error("cập nhật danh sách sinh viên thất bại", zap.Error(err))
			return nil, err
		}
		s.notifier.NotifyMany(ctx, resp.Added, &callerID, model.NotificationClassEnrollment,
			fmt.Sprintf("Bạn đã được thêm vào lớp %s", tc.ClassName),
			fmt.Sprintf("/teaching-classes/%s", tc.TeachingClassID))
	}
	return resp, nil
}

// addOne kiểm tra và thêm sinh viên vào danh sách lớp cùng các buổi chưa học
func (s *teachingClassService) addOne(ctx context.Context, tc *model.TeachingClass, studentID string) error {
	if tc.Students.Contains(studentID) {
		return ErrStudentAlreadyInClass
	}
	user, err := s.repo.User.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.Role != model.RoleStudent {
		return ErrNotAStudent
	}

	tc.Students = append(tc.Students, studentID)

	// Buổi chưa diễn ra: sinh viên mới mặc định vắng
	pending, err := s.repo.AttendanceSession.ListByClassAndStatus(ctx, tc.TeachingClassID, model.SessionStatusPending)
	if err != nil {
		return err
	}
	for i := range pending {
		sess := &pending[i]
		if sess.StudentsAbsent.Contains(studentID) || sess.StudentsPresent.Contains(studentID) {
			continue
		}
		sess.StudentsAbsent = append(sess.StudentsAbsent, studentID)
		if err := s.repo.AttendanceSession.Update(ctx, sess); err != nil {
			return err
		}
	}
	return nil
}

// RemoveStudent gỡ sinh viên khỏi lớp và xóa sạch dấu vết điểm danh của em đó:
// điểm chuyên cần, bản ghi điểm danh, tên trong danh sách từng buổi.
func (s *teachingClassService) RemoveStudent(ctx context.Context, classID, studentID, callerID, callerRole string) error {
	tc, err := s.getClass(ctx, classID)
	if err != nil {
		return err
	}
	if !canManageClass(tc, callerID, callerRole) {
		return ErrNotClassTeacher
	}
	if !tc.Students.Contains(studentID) {
		return ErrStudentNotEnrolled
	}

	sessions, err := s.repo.AttendanceSession.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Error("truy vấn buổi học thất bại", zap.Error(err))
		return err
	}
	sessionIDs := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		sessionIDs = append(sessionIDs, sess.SessionID)
	}

	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		tc.Students = tc.Students.Remove(studentID)
		if err := tx.TeachingClass.Update(ctx, tc); err != nil {
			return err
		}
		if err := tx.StudentScore.DeleteByClassAndStudent(ctx, classID, studentID); err != nil {
			return err
		}
		if err := tx.AttendanceLog.DeleteByStudentAndSessions(ctx, studentID, sessionIDs); err != nil {
			return err
		}
		for i := range sessions {
			sess := &sessions[i]
			if !sess.StudentsPresent.Contains(studentID) && !sess.StudentsAbsent.Contains(studentID) {
				continue
			}
			sess.StudentsPresent = sess.StudentsPresent.Remove(studentID)
			sess.StudentsAbsent = sess.StudentsAbsent.Remove(studentID)
			if err := tx.AttendanceSession.Update(ctx, sess); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *teachingClassService) ListStudents(ctx context.Context, classID string) ([]dto.UserBrief, error) {
	tc, err := s.getClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	if len(tc.Students) == 0 {
		return []dto.UserBrief{}, nil
	}
	users, err := s.repo.User.ListByIDs(ctx, tc.Students)
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

// ── Hàm phụ trợ ──

// timeRangesOverlap hai khung giờ "HH:MM" chạm nhau, kể cả chạm biên
func timeRangesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart <= bEnd && aEnd >= bStart
}

// dayOfWeekName tên tiếng Việt của thứ trong tuần (0 = Chủ nhật)
func dayOfWeekName(d int) string {
	if d == 0 {
		return "Chủ nhật"
	}
	if d >= 1 && d <= 6 {
		return fmt.Sprintf("Thứ %d", d+1)
	}
	return fmt.Sprintf("Thứ ? (%d)", d)
}

func subjectName(subject *model.Subject) string {
	if subject == nil || subject.Name == "" {
		return "Không xác định"
	}
	return subject.Name
}

func teacherName(teacher *model.User) string {
	if teacher == nil || teacher.FullName == "" {
		return "Không xác định"
	}
	return teacher.FullName
}

// canManageClass admin hoặc giảng viên của chính lớp đó
func canManageClass(tc *model.TeachingClass, callerID, callerRole string) bool {
	if callerRole == model.RoleAdmin {
		return true
	}
	return tc.TeacherID == callerID
}

func validateSchedule(schedule model.ScheduleEntries) error {
	for i := range schedule {
		e := &schedule[i]
		if e.RoomID == "" {
			return ErrScheduleMissingRoom
		}
		// Giờ chuẩn "HH:MM" để so sánh theo thứ tự từ điển còn đúng
		if !validClockTime(e.StartTime) || !validClockTime(e.EndTime) || e.StartTime >= e.EndTime {
			return ErrScheduleTimeInvalid
		}
	}
	return nil
}

// validClockTime giờ dạng "HH:MM" đủ hai chữ số, 00:00-23:59
func validClockTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	hour, err := strconv.Atoi(s[:2])
	if err != nil || hour < 0 || hour > 23 {
		return false
	}
	minute, err := strconv.Atoi(s[3:])
	if err != nil || minute < 0 || minute > 59 {
		return false
	}
	return true
}

func parseCourseDates(startStr, endStr string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if startStr != "" {
		t, err := time.Parse(dateLayout, startStr)
		if err != nil {
			return nil, nil, ErrCourseDateInvalid
		}
		start = &t
	}
	if endStr != "" {
		t, err := time.Parse(dateLayout, endStr)
		if err != nil {
			return nil, nil, ErrCourseDateInvalid
		}
		end = &t
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, ErrCourseDateInvalid
	}
	return start, end, nil
}

func scheduleFromRequest(entries []dto.ScheduleEntryRequest) model.ScheduleEntries {
	schedule := make(model.ScheduleEntries, 0, len(entries))
	for _, e := range entries {
		recurring := true
		if e.IsRecurring != nil {
			recurring = *e.IsRecurring
		}
		schedule = append(schedule, model.ScheduleEntry{
			DayOfWeek:     e.DayOfWeek,
			StartTime:     e.StartTime,
			EndTime:       e.EndTime,
			RoomID:        e.RoomID,
			IsRecurring:   recurring,
			SpecificDates: e.SpecificDates,
			ExcludedDates: e.ExcludedDates,
		})
	}
	return schedule
}

func (s *teachingClassService) getClass(ctx context.Context, id string) (*model.TeachingClass, error) {
	tc, err := s.repo.TeachingClass.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeachingClassNotFound
		}
		s.logger.Error("truy vấn lớp giảng dạy thất bại", zap.Error(err))
		return nil, err
	}
	return tc, nil
}

func (s *teachingClassService) getResponse(ctx context.Context, id string) (*dto.TeachingClassResponse, error) {
	tc, err := s.getClass(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toTeachingClassResponse(tc)
	return &resp, nil
}

// toTeachingClassResponse chuyển model.TeachingClass sang DTO trả về
func toTeachingClassResponse(tc *model.TeachingClass) dto.TeachingClassResponse {
	resp := dto.TeachingClassResponse{
		TeachingClassID:      tc.TeachingClassID,
		Name:                 tc.ClassName,
		ClassCode:            tc.ClassCode,
		SemesterID:           tc.SemesterID,
		MainClassID:          tc.MainClassID,
		TotalSessions:        tc.TotalSessions,
		MaxAbsentAllowed:     tc.MaxAbsentAllowed,
		StudentCount:         len(tc.Students),
		AutoGenerateSessions: tc.AutoGenerateSessions,
	}
	if tc.Subject != nil {
		resp.Subject = &dto.SubjectBrief{
			ID:   tc.Subject.SubjectID,
			Name: tc.Subject.Name,
			Code: tc.Subject.Code,
		}
	}
	resp.Teacher = toUserBrief(tc.Teacher)
	if tc.CourseStartDate != nil {
		resp.CourseStartDate = tc.CourseStartDate.Format(dateLayout)
	}
	if tc.CourseEndDate != nil {
		resp.CourseEndDate = tc.CourseEndDate.Format(dateLayout)
	}
	resp.Schedule = make([]dto.ScheduleEntryResponse, 0, len(tc.Schedule))
	for _, e := range tc.Schedule {
		resp.Schedule = append(resp.Schedule, dto.ScheduleEntryResponse{
			DayOfWeek:     e.DayOfWeek,
			StartTime:     e.StartTime,
			EndTime:       e.EndTime,
			RoomID:        e.RoomID,
			IsRecurring:   e.IsRecurring,
			SpecificDates: e.SpecificDates,
			ExcludedDates: e.ExcludedDates,
		})
	}
	return resp
}
