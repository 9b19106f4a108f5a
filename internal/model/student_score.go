package model

import "time"

// StudentScore điểm chuyên cần dẫn xuất theo (lớp, sinh viên) — bảng student_scores
//
// Đây là bản ghi cache, luôn tính lại được từ AttendanceSession + AttendanceLog;
// không bao giờ dùng nó làm nguồn sự thật cho số buổi vắng.
type StudentScore struct {
	ScoreID             string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                      json:"score_id"`
	TeachingClassID     string    `gorm:"type:uuid;not null;uniqueIndex:uq_student_scores_class_student"     json:"teaching_class_id"`
	StudentID           string    `gorm:"type:uuid;not null;uniqueIndex:uq_student_scores_class_student"     json:"student_id"`
	TotalSessions       int       `gorm:"not null;default:0"                  json:"total_sessions"`  // số buổi đã hoàn thành, không phải chỉ tiêu của lớp
	AbsentSessions      int       `gorm:"not null;default:0"                  json:"absent_sessions"`
	AttendanceScore     float64   `gorm:"type:numeric(4,1);not null;default:10" json:"attendance_score"`
	MaxAbsentAllowed    int       `gorm:"not null;default:3"                  json:"max_absent_allowed"`
	IsFailedDueToAbsent bool      `gorm:"not null;default:false"              json:"is_failed_due_to_absent"`
	FinalScore          *float64  `gorm:"type:numeric(4,1)"                   json:"final_score,omitempty"`
	Note                string    `gorm:"type:text"                           json:"note"`
	LastUpdated         time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"  json:"last_updated"`
	BaseModel
}

// TableName chỉ định tên bảng
func (StudentScore) TableName() string { return "student_scores" }

// AttendanceScoreFor công thức điểm chuyên cần: 10 - 2 điểm mỗi buổi vắng, tối thiểu 0
func AttendanceScoreFor(absentCount int) float64 {
	score := 10 - 2*float64(absentCount)
	if score < 0 {
		return 0
	}
	return score
}
