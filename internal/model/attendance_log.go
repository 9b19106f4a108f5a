package model

import "time"

// AttendanceStatus trạng thái điểm danh của một sinh viên trong một buổi
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

// Valid kiểm tra giá trị trạng thái có được hỗ trợ không
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	default:
		return false
	}
}

// CountsAsPresent present và late được đưa vào danh sách có mặt của buổi học
func (s AttendanceStatus) CountsAsPresent() bool {
	return s == AttendancePresent || s == AttendanceLate
}

// AttendanceLog bản ghi điểm danh của một sinh viên cho một buổi — bảng attendance_logs
// Mỗi cặp (session, student) chỉ có tối đa một bản ghi (upsert).
type AttendanceLog struct {
	LogID     string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"            json:"log_id"`
	SessionID string           `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_logs_session_student" json:"session_id"`
	StudentID string           `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_logs_session_student" json:"student_id"`
	Status    AttendanceStatus `gorm:"type:varchar(20);not null"                                 json:"status"`
	Note      string           `gorm:"type:text"                                                 json:"note"`
	Timestamp time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP"                        json:"timestamp"`
	BaseModel
}

// TableName chỉ định tên bảng
func (AttendanceLog) TableName() string { return "attendance_logs" }
