package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/repository"
)

func setupMainClassService() (*repository.Repository, MainClassService) {
	repo := newTestRepo()
	logger := zap.NewNop()
	notifier := NewNotificationService(repo, logger)
	return repo, NewMainClassService(repo, notifier, logger)
}

func strPtr(v string) *string { return &v }

// seedMainClass lớp CNTT-K66 do advisor-1 cố vấn
func seedMainClass(repo *repository.Repository) {
	_ = repo.MainClass.Create(context.Background(), &model.MainClass{
		MainClassID:     "mc-1",
		Name:            "CNTT-K66",
		ClassCode:       "CNTT66",
		AdvisorID:       strPtr("advisor-1"),
		YearStart:       2024,
		Students:        model.StringArray{},
		PendingStudents: model.StringArray{},
	})
}

func TestMainClassService_RequestJoin(t *testing.T) {
	repo, svc := setupMainClassService()
	seedMainClass(repo)
	seedStudent(repo, "sv-1", "Phạm Văn An")
	ctx := context.Background()

	if err := svc.RequestJoin(ctx, "mc-1", "sv-1"); err != nil {
		t.Fatalf("RequestJoin phải thành công: %v", err)
	}

	mc, _ := repo.MainClass.GetByID(ctx, "mc-1")
	if !mc.PendingStudents.Contains("sv-1") {
		t.Error("sv-1 phải nằm trong danh sách chờ duyệt")
	}
	if mc.Students.Contains("sv-1") {
		t.Error("sv-1 chưa được duyệt thì không được vào danh sách lớp")
	}

	// Cố vấn nhận thông báo có yêu cầu mới
	notifs, _, _ := repo.Notification.ListByReceiver(ctx, "advisor-1", 0, 10)
	if len(notifs) != 1 || notifs[0].Type != model.NotificationClassEnrollment {
		t.Errorf("cố vấn phải nhận thông báo yêu cầu vào lớp, thực tế %+v", notifs)
	}
}

func TestMainClassService_RequestJoin_Duplicate(t *testing.T) {
	repo, svc := setupMainClassService()
	seedMainClass(repo)
	seedStudent(repo, "sv-1", "Phạm Văn An")
	ctx := context.Background()

	if err := svc.RequestJoin(ctx, "mc-1", "sv-1"); err != nil {
		t.Fatalf("RequestJoin lần đầu phải thành công: %v", err)
	}
	if err := svc.RequestJoin(ctx, "mc-1", "sv-1"); !errors.Is(err, ErrStudentAlreadyPending) {
		t.Errorf("kỳ vọng ErrStudentAlreadyPending, thực tế: %v", err)
	}
}

func TestMainClassService_RequestJoin_AlreadyEnrolled(t *testing.T) {
	repo, svc := setupMainClassService()
	_ = repo.MainClass.Create(context.Background(), &model.MainClass{
		MainClassID: "mc-1",
		Name:        "CNTT-K66",
		Students:    model.StringArray{"sv-1"},
	})

	err := svc.RequestJoin(context.Background(), "mc-1", "sv-1")
	if !errors.Is(err, ErrStudentAlreadyInClass) {
		t.Errorf("kỳ vọng ErrStudentAlreadyInClass, thực tế: %v", err)
	}
}

func TestMainClassService_ApproveStudent(t *testing.T) {
	repo, svc := setupMainClassService()
	seedMainClass(repo)
	seedStudent(repo, "sv-1", "Phạm Văn An")
	ctx := context.Background()

	if err := svc.RequestJoin(ctx, "mc-1", "sv-1"); err != nil {
		t.Fatalf("RequestJoin phải thành công: %v", err)
	}
	if err := svc.ApproveStudent(ctx, "mc-1", "sv-1", "advisor-1", model.RoleTeacher); err != nil {
		t.Fatalf("ApproveStudent phải thành công: %v", err)
	}

	mc, _ := repo.MainClass.GetByID(ctx, "mc-1")
	if mc.PendingStudents.Contains("sv-1") {
		t.Error("sv-1 phải rời danh sách chờ sau khi duyệt")
	}
	if !mc.Students.Contains("sv-1") {
		t.Error("sv-1 phải vào danh sách lớp sau khi duyệt")
	}

	notifs, _, _ := repo.Notification.ListByReceiver(ctx, "sv-1", 0, 10)
	if len(notifs) != 1 || notifs[0].Type != model.NotificationEnrollApproved {
		t.Errorf("sinh viên phải nhận thông báo được duyệt, thực tế %+v", notifs)
	}
}

func TestMainClassService_RejectStudent(t *testing.T) {
	repo, svc := setupMainClassService()
	seedMainClass(repo)
	seedStudent(repo, "sv-1", "Phạm Văn An")
	ctx := context.Background()

	if err := svc.RequestJoin(ctx, "mc-1", "sv-1"); err != nil {
		t.Fatalf("RequestJoin phải thành công: %v", err)
	}
	if err := svc.RejectStudent(ctx, "mc-1", "sv-1", "advisor-1", model.RoleTeacher); err != nil {
		t.Fatalf("RejectStudent phải thành công: %v", err)
	}

	mc, _ := repo.MainClass.GetByID(ctx, "mc-1")
	if mc.PendingStudents.Contains("sv-1") || mc.Students.Contains("sv-1") {
		t.Error("sv-1 bị từ chối thì không còn trong lớp lẫn danh sách chờ")
	}

	notifs, _, _ := repo.Notification.ListByReceiver(ctx, "sv-1", 0, 10)
	if len(notifs) != 1 || notifs[0].Type != model.NotificationEnrollRejected {
		t.Errorf("sinh viên phải nhận thông báo bị từ chối, thực tế %+v", notifs)
	}
}

func TestMainClassService_ApproveStudent_NotPending(t *testing.T) {
	repo, svc := setupMainClassService()
	seedMainClass(repo)

	err := svc.ApproveStudent(context.Background(), "mc-1", "sv-la", "advisor-1", model.RoleTeacher)
	if !errors.Is(err, ErrStudentNotPending) {
		t.Errorf("kỳ vọng ErrStudentNotPending, thực tế: %v", err)
	}
}

func TestMainClassService_Approve_OnlyAdvisorOrAdmin(t *testing.T) {
	repo, svc := setupMainClassService()
	seedMainClass(repo)
	seedStudent(repo, "sv-1", "Phạm Văn An")
	ctx := context.Background()

	if err := svc.RequestJoin(ctx, "mc-1", "sv-1"); err != nil {
		t.Fatalf("RequestJoin phải thành công: %v", err)
	}

	// Giảng viên khác không phải cố vấn
	err := svc.ApproveStudent(ctx, "mc-1", "sv-1", "teacher-khac", model.RoleTeacher)
	if !errors.Is(err, ErrNotClassAdvisor) {
		t.Errorf("kỳ vọng ErrNotClassAdvisor, thực tế: %v", err)
	}

	// Admin duyệt được dù không phải cố vấn
	if err := svc.ApproveStudent(ctx, "mc-1", "sv-1", "admin-1", model.RoleAdmin); err != nil {
		t.Errorf("admin phải duyệt được: %v", err)
	}
}

func TestMainClassService_RemoveStudent(t *testing.T) {
	repo, svc := setupMainClassService()
	_ = repo.MainClass.Create(context.Background(), &model.MainClass{
		MainClassID: "mc-1",
		Name:        "CNTT-K66",
		AdvisorID:   strPtr("advisor-1"),
		Students:    model.StringArray{"sv-1", "sv-2"},
	})
	ctx := context.Background()

	if err := svc.RemoveStudent(ctx, "mc-1", "sv-1", "advisor-1", model.RoleTeacher); err != nil {
		t.Fatalf("RemoveStudent phải thành công: %v", err)
	}
	mc, _ := repo.MainClass.GetByID(ctx, "mc-1")
	if mc.Students.Contains("sv-1") {
		t.Error("sv-1 phải bị gỡ khỏi lớp")
	}
	if !mc.Students.Contains("sv-2") {
		t.Error("sv-2 phải được giữ nguyên")
	}

	err := svc.RemoveStudent(ctx, "mc-1", "sv-1", "advisor-1", model.RoleTeacher)
	if !errors.Is(err, ErrStudentNotInClass) {
		t.Errorf("kỳ vọng ErrStudentNotInClass, thực tế: %v", err)
	}
}

func TestMainClassService_RequestJoin_ClassNotFound(t *testing.T) {
	_, svc := setupMainClassService()

	err := svc.RequestJoin(context.Background(), "mc-khong-co", "sv-1")
	if !errors.Is(err, ErrMainClassNotFound) {
		t.Errorf("kỳ vọng ErrMainClassNotFound, thực tế: %v", err)
	}
}
