package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/dto"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/repository"
)

func setupAttendanceService() (*repository.Repository, AttendanceService) {
	repo := newTestRepo()
	return repo, NewAttendanceService(repo, zap.NewNop())
}

// seedScoredClass lớp có sẵn danh sách sinh viên và n buổi đã hoàn thành;
// presentIn quyết định sv-A có mặt ở buổi thứ i hay không.
func seedScoredClass(repo *repository.Repository, n int, presentIn func(i int) bool, students ...string) *model.TeachingClass {
	tc := &model.TeachingClass{
		TeachingClassID:  "tc-1",
		ClassName:        "Cơ sở dữ liệu",
		TeacherID:        "teacher-1",
		TotalSessions:    15,
		MaxAbsentAllowed: 3,
		Students:         model.StringArray(students),
	}
	_ = repo.TeachingClass.Create(context.Background(), tc)

	base := time.Date(2026, time.March, 2, 7, 30, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		sess := &model.AttendanceSession{
			SessionID:       fmt.Sprintf("sess-%d", i+1),
			TeachingClassID: "tc-1",
			SessionNumber:   i + 1,
			Date:            base.AddDate(0, 0, 7*i),
			StartTime:       base.AddDate(0, 0, 7*i),
			EndTime:         base.AddDate(0, 0, 7*i).Add(2 * time.Hour),
			Status:          model.SessionStatusCompleted,
			StudentsPresent: model.StringArray{},
			StudentsAbsent:  model.StringArray{},
		}
		for _, sv := range students {
			if sv == "sv-A" && presentIn(i) {
				sess.StudentsPresent = append(sess.StudentsPresent, sv)
			} else {
				sess.StudentsAbsent = append(sess.StudentsAbsent, sv)
			}
		}
		_ = repo.AttendanceSession.Create(context.Background(), sess)
	}
	return tc
}

// ── Công thức điểm chuyên cần ──

func TestAttendanceService_RecomputeStudentScore_Formula(t *testing.T) {
	cases := []struct {
		absent int
		score  float64
	}{
		{0, 10},
		{1, 8},
		{2, 6},
		{3, 4},
		{4, 2},
		{5, 0},
		{6, 0}, // điểm không âm
	}
	for _, c := range cases {
		repo, svc := setupAttendanceService()
		seedScoredClass(repo, 6, func(i int) bool { return i >= c.absent }, "sv-A")

		resp, err := svc.RecomputeStudentScore(context.Background(), "tc-1", "sv-A")
		if err != nil {
			t.Fatalf("vắng %d buổi: RecomputeStudentScore phải thành công: %v", c.absent, err)
		}
		if resp.AbsentSessions != c.absent {
			t.Errorf("kỳ vọng %d buổi vắng, thực tế %d", c.absent, resp.AbsentSessions)
		}
		if resp.AttendanceScore != c.score {
			t.Errorf("vắng %d buổi phải được %.0f điểm, thực tế %.1f", c.absent, c.score, resp.AttendanceScore)
		}
		if resp.TotalSessions != 6 {
			t.Errorf("total_sessions phải đếm buổi đã hoàn thành (6), thực tế %d", resp.TotalSessions)
		}
	}
}

func TestAttendanceService_RecomputeStudentScore_FailThreshold(t *testing.T) {
	// Vắng đúng ngưỡng cho phép thì chưa rớt, quá ngưỡng mới rớt
	for _, c := range []struct {
		absent int
		failed bool
	}{
		{3, false},
		{4, true},
	} {
		repo, svc := setupAttendanceService()
		seedScoredClass(repo, 6, func(i int) bool { return i >= c.absent }, "sv-A")

		resp, err := svc.RecomputeStudentScore(context.Background(), "tc-1", "sv-A")
		if err != nil {
			t.Fatalf("RecomputeStudentScore phải thành công: %v", err)
		}
		if resp.IsFailedDueToAbsent != c.failed {
			t.Errorf("vắng %d/ngưỡng 3: kỳ vọng failed=%v, thực tế %v", c.absent, c.failed, resp.IsFailedDueToAbsent)
		}
	}
}

func TestAttendanceService_Recompute_LogOverridesSessionList(t *testing.T) {
	repo, svc := setupAttendanceService()
	// Buổi duy nhất ghi sv-A có mặt trong danh sách buổi
	seedScoredClass(repo, 1, func(int) bool { return true }, "sv-A")

	// Nhưng bản ghi điểm danh nói em vắng: bản ghi là nguồn sự thật
	_ = repo.AttendanceLog.Upsert(context.Background(), &model.AttendanceLog{
		SessionID: "sess-1",
		StudentID: "sv-A",
		Status:    model.AttendanceAbsent,
		Timestamp: time.Now(),
	})

	resp, err := svc.RecomputeStudentScore(context.Background(), "tc-1", "sv-A")
	if err != nil {
		t.Fatalf("RecomputeStudentScore phải thành công: %v", err)
	}
	if resp.AbsentSessions != 1 {
		t.Errorf("bản ghi điểm danh phải thắng danh sách buổi, kỳ vọng vắng 1, thực tế %d", resp.AbsentSessions)
	}
}

func TestAttendanceService_Recompute_LateCountsAsAbsentForScore(t *testing.T) {
	repo, svc := setupAttendanceService()
	seedScoredClass(repo, 2, func(int) bool { return true }, "sv-A")

	// Đi muộn: vào danh sách có mặt của buổi nhưng vẫn trừ điểm như vắng
	_ = repo.AttendanceLog.Upsert(context.Background(), &model.AttendanceLog{
		SessionID: "sess-1",
		StudentID: "sv-A",
		Status:    model.AttendanceLate,
		Timestamp: time.Now(),
	})

	resp, err := svc.RecomputeStudentScore(context.Background(), "tc-1", "sv-A")
	if err != nil {
		t.Fatalf("RecomputeStudentScore phải thành công: %v", err)
	}
	if resp.AbsentSessions != 1 {
		t.Errorf("đi muộn phải tính như vắng khi trừ điểm, kỳ vọng vắng 1, thực tế %d", resp.AbsentSessions)
	}
	if resp.AttendanceScore != 8 {
		t.Errorf("kỳ vọng 8 điểm, thực tế %.1f", resp.AttendanceScore)
	}
}

func TestAttendanceService_Recompute_Idempotent(t *testing.T) {
	repo, svc := setupAttendanceService()
	seedScoredClass(repo, 4, func(i int) bool { return i != 0 }, "sv-A")

	first, err := svc.RecomputeStudentScore(context.Background(), "tc-1", "sv-A")
	if err != nil {
		t.Fatalf("lần tính đầu phải thành công: %v", err)
	}
	second, err := svc.RecomputeStudentScore(context.Background(), "tc-1", "sv-A")
	if err != nil {
		t.Fatalf("lần tính hai phải thành công: %v", err)
	}
	if first.AbsentSessions != second.AbsentSessions || first.AttendanceScore != second.AttendanceScore {
		t.Errorf("tính lại nhiều lần phải cho cùng kết quả: (%d, %.1f) vs (%d, %.1f)",
			first.AbsentSessions, first.AttendanceScore, second.AbsentSessions, second.AttendanceScore)
	}
}

// ── RecordAttendance ──

func TestAttendanceService_RecordAttendance_SyncsSessionLists(t *testing.T) {
	repo, svc := setupAttendanceService()
	seedScoredClass(repo, 1, func(int) bool { return false }, "sv-A", "sv-B")

	req := &dto.RecordAttendanceRequest{StudentID: "sv-A", Status: "present"}
	if _, err := svc.RecordAttendance(context.Background(), "sess-1", req, "teacher-1", model.RoleTeacher); err != nil {
		t.Fatalf("RecordAttendance phải thành công: %v", err)
	}

	sess, _ := repo.AttendanceSession.GetByID(context.Background(), "sess-1")
	if !sess.StudentsPresent.Contains("sv-A") {
		t.Error("sv-A phải nằm trong danh sách có mặt sau khi điểm danh present")
	}
	if sess.StudentsAbsent.Contains("sv-A") {
		t.Error("sv-A không được còn trong danh sách vắng")
	}
	if !sess.StudentsAbsent.Contains("sv-B") {
		t.Error("sv-B chưa điểm danh phải vẫn ở danh sách vắng")
	}
}

func TestAttendanceService_RecordAttendance_OverwritesPreviousLog(t *testing.T) {
	repo, svc := setupAttendanceService()
	seedScoredClass(repo, 1, func(int) bool { return false }, "sv-A")

	ctx := context.Background()
	if _, err := svc.RecordAttendance(ctx, "sess-1", &dto.RecordAttendanceRequest{StudentID: "sv-A", Status: "absent"}, "teacher-1", model.RoleTeacher); err != nil {
		t.Fatalf("lượt điểm danh đầu phải thành công: %v", err)
	}
	if _, err := svc.RecordAttendance(ctx, "sess-1", &dto.RecordAttendanceRequest{StudentID: "sv-A", Status: "present", Note: "vào muộn 5 phút vẫn tính có mặt"}, "teacher-1", model.RoleTeacher); err != nil {
		t.Fatalf("lượt điểm danh ghi đè phải thành công: %v", err)
	}

	logs, _ := repo.AttendanceLog.ListBySession(ctx, "sess-1")
	if len(logs) != 1 {
		t.Fatalf("mỗi cặp (buổi, sinh viên) chỉ có một bản ghi, thực tế %d", len(logs))
	}
	if logs[0].Status != model.AttendancePresent {
		t.Errorf("bản ghi phải mang trạng thái mới nhất, thực tế %s", logs[0].Status)
	}

	// Điểm cũng bám theo trạng thái mới nhất
	score, err := repo.StudentScore.GetByClassAndStudent(ctx, "tc-1", "sv-A")
	if err != nil {
		t.Fatalf("điểm phải được tính lại sau điểm danh: %v", err)
	}
	if score.AbsentSessions != 0 {
		t.Errorf("ghi đè thành present thì hết vắng, thực tế %d", score.AbsentSessions)
	}
}

func TestAttendanceService_RecordAttendance_CancelledSession(t *testing.T) {
	repo, svc := setupAttendanceService()
	seedScoredClass(repo, 0, func(int) bool { return false }, "sv-A")
	_ = repo.AttendanceSession.Create(context.Background(), &model.AttendanceSession{
		SessionID:       "sess-huy",
		TeachingClassID: "tc-1",
		SessionNumber:   1,
		Status:          model.SessionStatusCancelled,
	})

	req := &dto.RecordAttendanceRequest{StudentID: "sv-A", Status: "present"}
	_, err := svc.RecordAttendance(context.Background(), "sess-huy", req, "teacher-1", model.RoleTeacher)
	if !errors.Is(err, ErrSessionAlreadyClosed) {
		t.Errorf("kỳ vọng ErrSessionAlreadyClosed, thực tế: %v", err)
	}
}

func TestAttendanceService_RecordAttendance_NotEnrolled(t *testing.T) {
	repo, svc := setupAttendanceService()
	seedScoredClass(repo, 1, func(int) bool { return false }, "sv-A")

	req := &dto.RecordAttendanceRequest{StudentID: "sv-ngoai", Status: "present"}
	_, err := svc.RecordAttendance(context.Background(), "sess-1", req, "teacher-1", model.RoleTeacher)
	if !errors.Is(err, ErrStudentNotEnrolled) {
		t.Errorf("kỳ vọng ErrStudentNotEnrolled, thực tế: %v", err)
	}
}

func TestAttendanceService_RecordAttendance_NotTeacher(t *testing.T) {
	repo, svc := setupAttendanceService()
	seedScoredClass(repo, 1, func(int) bool { return false }, "sv-A")

	req := &dto.RecordAttendanceRequest{StudentID: "sv-A", Status: "present"}
	_, err := svc.RecordAttendance(context.Background(), "sess-1", req, "teacher-khac", model.RoleTeacher)
	if !errors.Is(err, ErrNotClassTeacher) {
		t.Errorf("kỳ vọng ErrNotClassTeacher, thực tế: %v", err)
	}
}

// ── RecomputeClassScores / GetMyScore ──

func TestAttendanceService_RecomputeClassScores_AllStudents(t *testing.T) {
	repo, svc := setupAttendanceService()
	seedScoredClass(repo, 2, func(int) bool { return true }, "sv-A", "sv-B", "sv-C")

	resp, err := svc.RecomputeClassScores(context.Background(), "tc-1")
	if err != nil {
		t.Fatalf("RecomputeClassScores phải thành công: %v", err)
	}
	if resp.Total != 3 || resp.Success != 3 || resp.Failed != 0 {
		t.Errorf("kỳ vọng total=3 success=3 failed=0, thực tế %d/%d/%d", resp.Total, resp.Success, resp.Failed)
	}

	scores, _ := repo.StudentScore.ListByClass(context.Background(), "tc-1")
	if len(scores) != 3 {
		t.Errorf("mỗi sinh viên một bản ghi điểm, thực tế %d", len(scores))
	}
}

func TestAttendanceService_GetMyScore_NotEnrolled(t *testing.T) {
	repo, svc := setupAttendanceService()
	seedScoredClass(repo, 1, func(int) bool { return true }, "sv-A")

	_, err := svc.GetMyScore(context.Background(), "tc-1", "sv-ngoai")
	if !errors.Is(err, ErrStudentNotEnrolled) {
		t.Errorf("kỳ vọng ErrStudentNotEnrolled, thực tế: %v", err)
	}
}

// ── UpdateStudentScore ──

func TestAttendanceService_UpdateStudentScore_PreservesComputedFields(t *testing.T) {
	repo, svc := setupAttendanceService()
	seedScoredClass(repo, 3, func(i int) bool { return i != 0 }, "sv-A")

	ctx := context.Background()
	final := 8.5
	note := "Cộng 0.5 điểm bài tập lớn"
	resp, err := svc.UpdateStudentScore(ctx, "tc-1", "sv-A", &dto.UpdateStudentScoreRequest{
		FinalScore: &final,
		Note:       &note,
	}, "teacher-1", model.RoleTeacher)
	if err != nil {
		t.Fatalf("UpdateStudentScore phải thành công: %v", err)
	}
	if resp.FinalScore == nil || *resp.FinalScore != 8.5 {
		t.Fatal("điểm cuối kỳ do giảng viên nhập phải được lưu")
	}
	if resp.AbsentSessions != 1 {
		t.Errorf("phần chuyên cần vẫn do hệ thống tính, kỳ vọng vắng 1, thực tế %d", resp.AbsentSessions)
	}

	// Tính lại toàn lớp không được ghi đè điểm giảng viên đã nhập
	if _, err := svc.RecomputeClassScores(ctx, "tc-1"); err != nil {
		t.Fatalf("RecomputeClassScores phải thành công: %v", err)
	}
	score, err := repo.StudentScore.GetByClassAndStudent(ctx, "tc-1", "sv-A")
	if err != nil {
		t.Fatalf("truy vấn điểm thất bại: %v", err)
	}
	if score.FinalScore == nil || *score.FinalScore != 8.5 {
		t.Error("final_score phải được giữ nguyên qua các lượt tính lại")
	}
	if score.Note != note {
		t.Error("ghi chú của giảng viên phải được giữ nguyên qua các lượt tính lại")
	}
}

func TestAttendanceService_UpdateStudentScore_NotTeacher(t *testing.T) {
	repo, svc := setupAttendanceService()
	seedScoredClass(repo, 1, func(int) bool { return true }, "sv-A")

	final := 9.0
	_, err := svc.UpdateStudentScore(context.Background(), "tc-1", "sv-A",
		&dto.UpdateStudentScoreRequest{FinalScore: &final}, "teacher-khac", model.RoleTeacher)
	if !errors.Is(err, ErrNotClassTeacher) {
		t.Errorf("kỳ vọng ErrNotClassTeacher, thực tế: %v", err)
	}
}

// ── GetStudentDetail ──

func TestAttendanceService_GetStudentDetail(t *testing.T) {
	repo, svc := setupAttendanceService()
	seedScoredClass(repo, 3, func(i int) bool { return i != 1 }, "sv-A")

	_ = repo.AttendanceLog.Upsert(context.Background(), &model.AttendanceLog{
		SessionID: "sess-2",
		StudentID: "sv-A",
		Status:    model.AttendanceExcused,
		Note:      "Nghỉ ốm có đơn",
		Timestamp: time.Now(),
	})

	detail, err := svc.GetStudentDetail(context.Background(), "tc-1", "sv-A")
	if err != nil {
		t.Fatalf("GetStudentDetail phải thành công: %v", err)
	}
	if len(detail.Sessions) != 3 {
		t.Fatalf("kỳ vọng 3 buổi trong chi tiết, thực tế %d", len(detail.Sessions))
	}
	if detail.Sessions[0].Status != string(model.AttendancePresent) {
		t.Errorf("buổi 1 phải present, thực tế %s", detail.Sessions[0].Status)
	}
	if detail.Sessions[1].Status != string(model.AttendanceExcused) {
		t.Errorf("buổi 2 có bản ghi excused, thực tế %s", detail.Sessions[1].Status)
	}
	if detail.Sessions[1].Note != "Nghỉ ốm có đơn" {
		t.Errorf("ghi chú điểm danh phải trả về client, thực tế %q", detail.Sessions[1].Note)
	}
	// Có phép vẫn trừ điểm như vắng
	if detail.Score.AbsentSessions != 1 {
		t.Errorf("kỳ vọng vắng 1 (buổi có phép), thực tế %d", detail.Score.AbsentSessions)
	}
}
