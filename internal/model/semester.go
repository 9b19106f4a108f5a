package model

import "time"

// Semester học kỳ — bảng semesters
type Semester struct {
	SemesterID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"semester_id"`
	Name       string    `gorm:"type:varchar(100);not null"                     json:"name"`
	Year       int       `gorm:"not null"                                       json:"year"`
	StartDate  time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate    time.Time `gorm:"type:date;not null"                             json:"end_date"`
	IsActive   bool      `gorm:"not null;default:false"                         json:"is_active"`
	BaseModel
}

// TableName chỉ định tên bảng
func (Semester) TableName() string { return "semesters" }

// ContainsRange kiểm tra [start, end] có nằm trong khoảng thời gian học kỳ không
func (s *Semester) ContainsRange(start, end time.Time) bool {
	return !start.Before(s.StartDate) && !end.After(s.EndDate)
}
