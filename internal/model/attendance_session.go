package model

import "time"

// Trạng thái buổi điểm danh
const (
	SessionStatusPending    = "pending"
	SessionStatusInProgress = "in_progress"
	SessionStatusCompleted  = "completed"
	SessionStatusCancelled  = "cancelled"
)

// AttendanceSession buổi điểm danh cụ thể của một lớp giảng dạy — bảng attendance_sessions
// students_absent được khởi tạo bằng toàn bộ danh sách sinh viên của lớp tại thời điểm tạo.
type AttendanceSession struct {
	SessionID       string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	TeachingClassID string      `gorm:"type:uuid;not null;index"                       json:"teaching_class_id"`
	SessionNumber   int         `gorm:"not null"                                       json:"session_number"`
	Date            time.Time   `gorm:"type:date;not null"                             json:"date"`
	RoomID          *string     `gorm:"type:uuid"                                      json:"room_id,omitempty"`
	StartTime       time.Time   `gorm:"not null"                                       json:"start_time"`
	EndTime         time.Time   `gorm:"not null"                                       json:"end_time"`
	Status          string      `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	StudentsPresent StringArray `gorm:"type:uuid[];not null;default:'{}'"              json:"students_present"`
	StudentsAbsent  StringArray `gorm:"type:uuid[];not null;default:'{}'"              json:"students_absent"`
	BaseModel

	// Quan hệ
	Room *Room `gorm:"foreignKey:RoomID;references:RoomID" json:"room,omitempty"`
}

// TableName chỉ định tên bảng
func (AttendanceSession) TableName() string { return "attendance_sessions" }

// DisplayStatus trạng thái hiển thị theo giờ hiện tại:
// chưa bắt đầu / đang học / đã kết thúc (chỉ phục vụ hiển thị, không thay status)
func (s *AttendanceSession) DisplayStatus(now time.Time) string {
	switch {
	case now.Before(s.StartTime):
		return "chưa bắt đầu"
	case now.After(s.EndTime):
		return "đã kết thúc"
	default:
		return "đang học"
	}
}
