package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository điểm vào tổng hợp của tất cả Repository
type Repository struct {
	db *gorm.DB

	User              UserRepository
	Semester          SemesterRepository
	Subject           SubjectRepository
	Room              RoomRepository
	MainClass         MainClassRepository
	TeachingClass     TeachingClassRepository
	AttendanceSession AttendanceSessionRepository
	AttendanceLog     AttendanceLogRepository
	StudentScore      StudentScoreRepository
	Notification      NotificationRepository
}

// NewRepository tạo Repository tổng hợp
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:                db,
		User:              NewUserRepo(db),
		Semester:          NewSemesterRepo(db),
		Subject:           NewSubjectRepo(db),
		Room:              NewRoomRepo(db),
		MainClass:         NewMainClassRepo(db),
		TeachingClass:     NewTeachingClassRepo(db),
		AttendanceSession: NewAttendanceSessionRepo(db),
		AttendanceLog:     NewAttendanceLogRepo(db),
		StudentScore:      NewStudentScoreRepo(db),
		Notification:      NewNotificationRepo(db),
	}
}

// Transaction chạy fn trong một transaction; Repository truyền vào fn
// trỏ tới cùng transaction đó. db nil (mock trong test) thì chạy trực tiếp.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
