package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/dto"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/repository"
)

// ── Hàm phụ trợ dựng dữ liệu ──

func setupSessionService() (*repository.Repository, SessionService) {
	repo := newTestRepo()
	logger := zap.NewNop()
	attendance := NewAttendanceService(repo, logger)
	return repo, NewSessionService(repo, attendance, logger)
}

func intPtr(v int) *int { return &v }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// seedWeeklyClass lớp học thứ Hai hàng tuần trong tháng 3/2026
// (các thứ Hai: 02, 09, 16, 23, 30)
func seedWeeklyClass(repo *repository.Repository, totalSessions int, students ...string) *model.TeachingClass {
	tc := &model.TeachingClass{
		TeachingClassID:  "tc-weekly",
		ClassName:        "Lập trình Go",
		TeacherID:        "teacher-1",
		SemesterID:       "sem-1",
		TotalSessions:    totalSessions,
		MaxAbsentAllowed: 3,
		Schedule: model.ScheduleEntries{
			{
				DayOfWeek:   intPtr(1),
				StartTime:   "07:30",
				EndTime:     "09:30",
				RoomID:      "room-1",
				IsRecurring: true,
			},
		},
		Students:             model.StringArray(students),
		CourseStartDate:      datePtr(2026, time.March, 1),
		CourseEndDate:        datePtr(2026, time.March, 31),
		AutoGenerateSessions: true,
	}
	_ = repo.TeachingClass.Create(context.Background(), tc)
	return tc
}

// ── GenerateSessions ──

func TestSessionService_GenerateSessions_Weekly(t *testing.T) {
	repo, svc := setupSessionService()
	seedWeeklyClass(repo, 15, "sv-1", "sv-2")

	resp, err := svc.GenerateSessions(context.Background(), "tc-weekly")
	if err != nil {
		t.Fatalf("GenerateSessions phải thành công: %v", err)
	}

	// Tháng 3/2026 có 5 thứ Hai
	if resp.Generated != 5 {
		t.Fatalf("kỳ vọng 5 buổi, thực tế %d", resp.Generated)
	}
	if resp.Sessions[0].Date != "2026-03-02" {
		t.Errorf("buổi đầu phải rơi vào 2026-03-02, thực tế %s", resp.Sessions[0].Date)
	}
	if resp.Sessions[4].Date != "2026-03-30" {
		t.Errorf("buổi cuối phải rơi vào 2026-03-30, thực tế %s", resp.Sessions[4].Date)
	}
	for i, sess := range resp.Sessions {
		if sess.SessionNumber != i+1 {
			t.Errorf("số thứ tự buổi %d phải là %d, thực tế %d", i, i+1, sess.SessionNumber)
		}
		if sess.StartTime != "07:30" || sess.EndTime != "09:30" {
			t.Errorf("khung giờ buổi %d sai: %s-%s", i, sess.StartTime, sess.EndTime)
		}
	}
}

func TestSessionService_GenerateSessions_CapAtTotalSessions(t *testing.T) {
	repo, svc := setupSessionService()
	seedWeeklyClass(repo, 3)

	resp, err := svc.GenerateSessions(context.Background(), "tc-weekly")
	if err != nil {
		t.Fatalf("GenerateSessions phải thành công: %v", err)
	}
	if resp.Generated != 3 {
		t.Fatalf("mỗi mục lịch sinh tối đa total_sessions buổi, kỳ vọng 3, thực tế %d", resp.Generated)
	}
}

func TestSessionService_GenerateSessions_SkipsExcludedDates(t *testing.T) {
	repo, svc := setupSessionService()
	tc := seedWeeklyClass(repo, 15)
	tc.Schedule[0].ExcludedDates = []string{"2026-03-09"}
	_ = repo.TeachingClass.Update(context.Background(), tc)

	resp, err := svc.GenerateSessions(context.Background(), "tc-weekly")
	if err != nil {
		t.Fatalf("GenerateSessions phải thành công: %v", err)
	}
	if resp.Generated != 4 {
		t.Fatalf("kỳ vọng 4 buổi sau khi loại ngày nghỉ, thực tế %d", resp.Generated)
	}
	for _, sess := range resp.Sessions {
		if sess.Date == "2026-03-09" {
			t.Error("ngày 2026-03-09 nằm trong excluded_dates nhưng vẫn được sinh buổi")
		}
	}
}

func TestSessionService_GenerateSessions_SpecificDates(t *testing.T) {
	repo, svc := setupSessionService()
	tc := &model.TeachingClass{
		TeachingClassID: "tc-specific",
		ClassName:       "Chuyên đề cuối khóa",
		TeacherID:       "teacher-1",
		TotalSessions:   15,
		Schedule: model.ScheduleEntries{
			{
				StartTime:     "13:00",
				EndTime:       "15:00",
				RoomID:        "room-2",
				IsRecurring:   false,
				SpecificDates: []string{"2026-04-10", "2026-04-17", "ngày-hỏng"},
			},
		},
	}
	_ = repo.TeachingClass.Create(context.Background(), tc)

	resp, err := svc.GenerateSessions(context.Background(), "tc-specific")
	if err != nil {
		t.Fatalf("GenerateSessions phải thành công: %v", err)
	}
	// Ngày sai định dạng bị bỏ qua, hai ngày hợp lệ vẫn sinh buổi
	if resp.Generated != 2 {
		t.Fatalf("kỳ vọng 2 buổi từ specific_dates, thực tế %d", resp.Generated)
	}
}

func TestSessionService_GenerateSessions_RosterSnapshot(t *testing.T) {
	repo, svc := setupSessionService()
	seedWeeklyClass(repo, 15, "sv-1", "sv-2", "sv-3")

	if _, err := svc.GenerateSessions(context.Background(), "tc-weekly"); err != nil {
		t.Fatalf("GenerateSessions phải thành công: %v", err)
	}

	sessions, _ := repo.AttendanceSession.ListByClass(context.Background(), "tc-weekly")
	for _, sess := range sessions {
		if len(sess.StudentsAbsent) != 3 {
			t.Fatalf("danh sách vắng phải khởi tạo bằng cả sĩ số lớp, kỳ vọng 3, thực tế %d", len(sess.StudentsAbsent))
		}
		if len(sess.StudentsPresent) != 0 {
			t.Errorf("danh sách có mặt phải rỗng khi mới sinh buổi")
		}
	}
}

func TestSessionService_GenerateSessions_KeepsCompletedSessions(t *testing.T) {
	repo, svc := setupSessionService()
	seedWeeklyClass(repo, 15)

	done := &model.AttendanceSession{
		SessionID:       "sess-done",
		TeachingClassID: "tc-weekly",
		SessionNumber:   1,
		Date:            time.Date(2026, time.February, 23, 0, 0, 0, 0, time.UTC),
		StartTime:       time.Date(2026, time.February, 23, 7, 30, 0, 0, time.UTC),
		EndTime:         time.Date(2026, time.February, 23, 9, 30, 0, 0, time.UTC),
		Status:          model.SessionStatusCompleted,
	}
	_ = repo.AttendanceSession.Create(context.Background(), done)

	resp, err := svc.GenerateSessions(context.Background(), "tc-weekly")
	if err != nil {
		t.Fatalf("GenerateSessions phải thành công: %v", err)
	}

	// Buổi đã hoàn thành được giữ, buổi mới đánh số tiếp theo
	if _, err := repo.AttendanceSession.GetByID(context.Background(), "sess-done"); err != nil {
		t.Fatal("buổi đã hoàn thành không được phép bị xóa khi sinh lại lịch")
	}
	if resp.Sessions[0].SessionNumber != 2 {
		t.Errorf("buổi mới phải đánh số từ 2, thực tế %d", resp.Sessions[0].SessionNumber)
	}

	// Sinh lại lần nữa: buổi pending cũ bị thay, completed vẫn còn
	resp2, err := svc.GenerateSessions(context.Background(), "tc-weekly")
	if err != nil {
		t.Fatalf("GenerateSessions lần hai phải thành công: %v", err)
	}
	if resp2.Generated != resp.Generated {
		t.Errorf("sinh lại phải cho cùng số buổi, lần một %d lần hai %d", resp.Generated, resp2.Generated)
	}
}

func TestSessionService_GenerateSessions_EmptySchedule(t *testing.T) {
	repo, svc := setupSessionService()
	tc := &model.TeachingClass{
		TeachingClassID: "tc-empty",
		ClassName:       "Lớp chưa xếp lịch",
		TeacherID:       "teacher-1",
		TotalSessions:   15,
	}
	_ = repo.TeachingClass.Create(context.Background(), tc)

	resp, err := svc.GenerateSessions(context.Background(), "tc-empty")
	if err != nil {
		t.Fatalf("lịch rỗng không phải lỗi: %v", err)
	}
	if resp.Generated != 0 {
		t.Errorf("lịch rỗng phải sinh 0 buổi, thực tế %d", resp.Generated)
	}
}

func TestSessionService_GenerateSessions_ClassNotFound(t *testing.T) {
	_, svc := setupSessionService()

	_, err := svc.GenerateSessions(context.Background(), "tc-missing")
	if !errors.Is(err, ErrTeachingClassNotFound) {
		t.Errorf("kỳ vọng ErrTeachingClassNotFound, thực tế: %v", err)
	}
}

// ── CreateManual ──

func TestSessionService_CreateManual_Success(t *testing.T) {
	repo, svc := setupSessionService()
	seedWeeklyClass(repo, 15, "sv-1")

	req := &dto.CreateSessionRequest{
		Date:      "2026-03-20",
		StartTime: "09:00",
		EndTime:   "11:00",
		RoomID:    "room-9",
	}
	resp, err := svc.CreateManual(context.Background(), "tc-weekly", req, "teacher-1", model.RoleTeacher)
	if err != nil {
		t.Fatalf("CreateManual phải thành công: %v", err)
	}
	if resp.SessionNumber != 1 {
		t.Errorf("buổi đầu phải mang số 1, thực tế %d", resp.SessionNumber)
	}
	if resp.AbsentCount != 1 {
		t.Errorf("buổi tạo tay cũng khởi tạo danh sách vắng từ sĩ số, kỳ vọng 1, thực tế %d", resp.AbsentCount)
	}
}

func TestSessionService_CreateManual_NotTeacher(t *testing.T) {
	repo, svc := setupSessionService()
	seedWeeklyClass(repo, 15)

	req := &dto.CreateSessionRequest{Date: "2026-03-20", StartTime: "09:00", EndTime: "11:00"}
	_, err := svc.CreateManual(context.Background(), "tc-weekly", req, "teacher-khac", model.RoleTeacher)
	if !errors.Is(err, ErrNotClassTeacher) {
		t.Errorf("kỳ vọng ErrNotClassTeacher, thực tế: %v", err)
	}
}

func TestSessionService_CreateManual_BadTime(t *testing.T) {
	repo, svc := setupSessionService()
	seedWeeklyClass(repo, 15)

	req := &dto.CreateSessionRequest{Date: "2026-03-20", StartTime: "25:00", EndTime: "11:00"}
	_, err := svc.CreateManual(context.Background(), "tc-weekly", req, "teacher-1", model.RoleTeacher)
	if !errors.Is(err, ErrSessionTimeInvalid) {
		t.Errorf("kỳ vọng ErrSessionTimeInvalid, thực tế: %v", err)
	}
}

// ── UpdateStatus ──

func TestSessionService_UpdateStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{model.SessionStatusPending, model.SessionStatusInProgress, true},
		{model.SessionStatusPending, model.SessionStatusCompleted, true},
		{model.SessionStatusPending, model.SessionStatusCancelled, true},
		{model.SessionStatusInProgress, model.SessionStatusCompleted, true},
		{model.SessionStatusInProgress, model.SessionStatusCancelled, true},
		{model.SessionStatusCompleted, model.SessionStatusPending, false},
		{model.SessionStatusCompleted, model.SessionStatusInProgress, false},
		{model.SessionStatusCancelled, model.SessionStatusInProgress, false},
		{model.SessionStatusCancelled, model.SessionStatusCompleted, false},
	}
	for _, tc := range cases {
		if got := validStatusTransition(tc.from, tc.to); got != tc.ok {
			t.Errorf("chuyển %s → %s: kỳ vọng %v, thực tế %v", tc.from, tc.to, tc.ok, got)
		}
	}
}

func TestSessionService_UpdateStatus_CompletedTriggersRecompute(t *testing.T) {
	repo, svc := setupSessionService()
	seedWeeklyClass(repo, 15, "sv-1", "sv-2")

	sess := &model.AttendanceSession{
		SessionID:       "sess-1",
		TeachingClassID: "tc-weekly",
		SessionNumber:   1,
		Date:            time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       time.Date(2026, time.March, 2, 7, 30, 0, 0, time.UTC),
		EndTime:         time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC),
		Status:          model.SessionStatusPending,
		StudentsPresent: model.StringArray{"sv-1"},
		StudentsAbsent:  model.StringArray{"sv-2"},
	}
	_ = repo.AttendanceSession.Create(context.Background(), sess)

	resp, err := svc.UpdateStatus(context.Background(), "sess-1", model.SessionStatusCompleted, "teacher-1", model.RoleTeacher)
	if err != nil {
		t.Fatalf("UpdateStatus phải thành công: %v", err)
	}
	if resp.Status != model.SessionStatusCompleted {
		t.Errorf("trạng thái phải là completed, thực tế %s", resp.Status)
	}

	// Chốt buổi thì điểm của cả lớp được tính lại ngay
	score, err := repo.StudentScore.GetByClassAndStudent(context.Background(), "tc-weekly", "sv-2")
	if err != nil {
		t.Fatalf("điểm của sv-2 phải được tạo sau khi chốt buổi: %v", err)
	}
	if score.AbsentSessions != 1 {
		t.Errorf("sv-2 vắng 1 buổi, thực tế %d", score.AbsentSessions)
	}
	if score.AttendanceScore != 8 {
		t.Errorf("vắng 1 buổi phải còn 8 điểm, thực tế %.1f", score.AttendanceScore)
	}
}

func TestSessionService_UpdateStatus_InvalidChange(t *testing.T) {
	repo, svc := setupSessionService()
	seedWeeklyClass(repo, 15)

	sess := &model.AttendanceSession{
		SessionID:       "sess-closed",
		TeachingClassID: "tc-weekly",
		SessionNumber:   1,
		Status:          model.SessionStatusCompleted,
	}
	_ = repo.AttendanceSession.Create(context.Background(), sess)

	_, err := svc.UpdateStatus(context.Background(), "sess-closed", model.SessionStatusPending, "teacher-1", model.RoleTeacher)
	if !errors.Is(err, ErrInvalidStatusChange) {
		t.Errorf("kỳ vọng ErrInvalidStatusChange, thực tế: %v", err)
	}
}
