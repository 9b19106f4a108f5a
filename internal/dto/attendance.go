package dto

// ── Buổi điểm danh ──

// CreateSessionRequest tạo thủ công một buổi điểm danh
type CreateSessionRequest struct {
	Date      string `json:"date"       binding:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" binding:"required"` // định dạng HH:MM
	EndTime   string `json:"end_time"   binding:"required"`
	RoomID    string `json:"room_id"    binding:"omitempty,uuid"`
}

// UpdateSessionStatusRequest chuyển trạng thái buổi điểm danh
type UpdateSessionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress completed cancelled"`
}

// SessionResponse buổi điểm danh trả về client
type SessionResponse struct {
	SessionID       string     `json:"session_id"`
	TeachingClassID string     `json:"teaching_class_id"`
	SessionNumber   int        `json:"session_number"`
	Date            string     `json:"date"`
	StartTime       string     `json:"start_time"`
	EndTime         string     `json:"end_time"`
	Room            *RoomBrief `json:"room,omitempty"`
	Status          string     `json:"status"`
	DisplayStatus   string     `json:"display_status"`
	PresentCount    int        `json:"present_count"`
	AbsentCount     int        `json:"absent_count"`
}

// GenerateSessionsResponse kết quả sinh buổi học tự động
type GenerateSessionsResponse struct {
	Generated int               `json:"generated"`
	Sessions  []SessionResponse `json:"sessions"`
}

// ── Ghi nhận điểm danh ──

// RecordAttendanceRequest ghi nhận điểm danh cho một sinh viên
type RecordAttendanceRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	Status    string `json:"status"     binding:"required,oneof=present absent late excused"`
	Note      string `json:"note"       binding:"omitempty,max=255"`
}

// AttendanceLogResponse bản ghi điểm danh trả về client
type AttendanceLogResponse struct {
	LogID     string     `json:"log_id"`
	SessionID string     `json:"session_id"`
	Student   *UserBrief `json:"student,omitempty"`
	Status    string     `json:"status"`
	Note      string     `json:"note,omitempty"`
	Timestamp string     `json:"timestamp"`
}

// ── Điểm chuyên cần ──

// StudentScoreResponse điểm chuyên cần của một sinh viên
type StudentScoreResponse struct {
	ScoreID             string     `json:"score_id"`
	TeachingClassID     string     `json:"teaching_class_id"`
	Student             *UserBrief `json:"student,omitempty"`
	TotalSessions       int        `json:"total_sessions"`
	AbsentSessions      int        `json:"absent_sessions"`
	AttendanceScore     float64    `json:"attendance_score"`
	MaxAbsentAllowed    int        `json:"max_absent_allowed"`
	IsFailedDueToAbsent bool       `json:"is_failed_due_to_absent"`
	FinalScore          *float64   `json:"final_score,omitempty"`
	Note                string     `json:"note,omitempty"`
	LastUpdated         string     `json:"last_updated"`
}

// UpdateStudentScoreRequest giảng viên cập nhật điểm cuối kỳ / ghi chú
type UpdateStudentScoreRequest struct {
	FinalScore *float64 `json:"final_score" binding:"omitempty,min=0,max=10"`
	Note       *string  `json:"note"        binding:"omitempty,max=255"`
}

// RecomputeResult kết quả tính lại điểm của một sinh viên
type RecomputeResult struct {
	StudentID string `json:"student_id"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
}

// RecomputeAllResponse kết quả tính lại điểm toàn lớp
type RecomputeAllResponse struct {
	Total   int               `json:"total"`
	Success int               `json:"success"`
	Failed  int               `json:"failed"`
	Results []RecomputeResult `json:"results"`
}

// StudentAttendanceDetail chi tiết điểm danh của một sinh viên trong lớp
type StudentAttendanceDetail struct {
	Score    *StudentScoreResponse `json:"score"`
	Sessions []SessionLogEntry     `json:"sessions"`
	Upcoming []SessionResponse     `json:"upcoming,omitempty"`
}

// SessionLogEntry trạng thái của sinh viên trong một buổi đã hoàn thành
type SessionLogEntry struct {
	SessionID     string `json:"session_id"`
	SessionNumber int    `json:"session_number"`
	Date          string `json:"date"`
	Status        string `json:"status"` // present, absent, late, excused
	Note          string `json:"note,omitempty"`
}
