package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ScheduleEntry một mục lịch học trong tuần của lớp giảng dạy.
// is_recurring=false thì dùng specific_dates thay cho lặp hàng tuần.
type ScheduleEntry struct {
	DayOfWeek     *int     `json:"day_of_week,omitempty"` // 0=Chủ nhật … 6=Thứ bảy
	StartTime     string   `json:"start_time"`            // "HH:MM" 24h
	EndTime       string   `json:"end_time"`              // "HH:MM" 24h
	RoomID        string   `json:"room_id"`
	IsRecurring   bool     `json:"is_recurring"`
	SpecificDates []string `json:"specific_dates,omitempty"` // "2006-01-02"
	ExcludedDates []string `json:"excluded_dates,omitempty"` // "2006-01-02"
}

// IsComplete mục lịch đủ thông tin để xét xung đột chưa
func (e *ScheduleEntry) IsComplete() bool {
	return e.DayOfWeek != nil && e.StartTime != "" && e.EndTime != "" && e.RoomID != ""
}

// IsExcluded kiểm tra ngày có nằm trong excluded_dates không (so theo ngày lịch)
func (e *ScheduleEntry) IsExcluded(date time.Time) bool {
	d := date.Format("2006-01-02")
	for _, ex := range e.ExcludedDates {
		if ex == d {
			return true
		}
	}
	return false
}

// ScheduleEntries danh sách mục lịch, lưu dạng JSONB
type ScheduleEntries []ScheduleEntry

// Scan giải mã JSONB thành danh sách mục lịch
func (s *ScheduleEntries) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("ScheduleEntries.Scan: kiểu không hỗ trợ %T", src)
	}
	return json.Unmarshal(b, s)
}

// Value tuần tự hóa danh sách mục lịch thành JSONB
func (s ScheduleEntries) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// TeachingClass lớp giảng dạy (lớp học phần) — bảng teaching_classes
type TeachingClass struct {
	TeachingClassID      string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"teaching_class_id"`
	ClassName            string          `gorm:"type:varchar(150);not null"                     json:"class_name"`
	ClassCode            string          `gorm:"type:varchar(30);not null"                      json:"class_code"`
	SubjectID            string          `gorm:"type:uuid;not null"                             json:"subject_id"`
	TeacherID            string          `gorm:"type:uuid;not null"                             json:"teacher_id"`
	MainClassID          *string         `gorm:"type:uuid"                                      json:"main_class_id,omitempty"`
	SemesterID           string          `gorm:"type:uuid;not null"                             json:"semester_id"`
	TotalSessions        int             `gorm:"not null;default:15"                            json:"total_sessions"`
	MaxAbsentAllowed     int             `gorm:"not null;default:3"                             json:"max_absent_allowed"`
	Schedule             ScheduleEntries `gorm:"type:jsonb;not null;default:'[]'"               json:"schedule"`
	Students             StringArray     `gorm:"type:uuid[];not null;default:'{}'"              json:"students"`
	CourseStartDate      *time.Time      `gorm:"type:date"                                      json:"course_start_date,omitempty"`
	CourseEndDate        *time.Time      `gorm:"type:date"                                      json:"course_end_date,omitempty"`
	AutoGenerateSessions bool            `gorm:"not null;default:true"                          json:"auto_generate_sessions"`
	BaseModel

	// Quan hệ
	Subject  *Subject  `gorm:"foreignKey:SubjectID;references:SubjectID"    json:"subject,omitempty"`
	Teacher  *User     `gorm:"foreignKey:TeacherID;references:UserID"       json:"teacher,omitempty"`
	Semester *Semester `gorm:"foreignKey:SemesterID;references:SemesterID"  json:"semester,omitempty"`
}

// TableName chỉ định tên bảng
func (TeachingClass) TableName() string { return "teaching_classes" }
