package dto

// ScheduleEntryRequest một khung giờ học trong lịch của lớp
type ScheduleEntryRequest struct {
	DayOfWeek     *int     `json:"day_of_week"    binding:"omitempty,min=0,max=6"`
	StartTime     string   `json:"start_time"     binding:"required"` // định dạng HH:MM
	EndTime       string   `json:"end_time"       binding:"required"`
	RoomID        string   `json:"room_id"        binding:"omitempty,uuid"`
	IsRecurring   *bool    `json:"is_recurring"`
	SpecificDates []string `json:"specific_dates" binding:"omitempty,dive,datetime=2006-01-02"`
	ExcludedDates []string `json:"excluded_dates" binding:"omitempty,dive,datetime=2006-01-02"`
}

// CreateTeachingClassRequest yêu cầu tạo lớp giảng dạy
type CreateTeachingClassRequest struct {
	Name                 string                 `json:"name"                   binding:"required,max=150"`
	ClassCode            string                 `json:"class_code"             binding:"omitempty,max=20"`
	SubjectID            string                 `json:"subject_id"             binding:"required,uuid"`
	TeacherID            string                 `json:"teacher_id"             binding:"required,uuid"`
	SemesterID           string                 `json:"semester_id"            binding:"required,uuid"`
	MainClassID          *string                `json:"main_class_id"          binding:"omitempty,uuid"`
	TotalSessions        int                    `json:"total_sessions"         binding:"omitempty,min=1,max=100"`
	MaxAbsentAllowed     *int                   `json:"max_absent_allowed"     binding:"omitempty,min=0,max=100"`
	Schedule             []ScheduleEntryRequest `json:"schedule"               binding:"omitempty,dive"`
	CourseStartDate      string                 `json:"course_start_date"      binding:"omitempty,datetime=2006-01-02"`
	CourseEndDate        string                 `json:"course_end_date"        binding:"omitempty,datetime=2006-01-02"`
	AutoGenerateSessions *bool                  `json:"auto_generate_sessions"`
}

// UpdateTeachingClassRequest yêu cầu cập nhật lớp giảng dạy
type UpdateTeachingClassRequest struct {
	Name                 *string                `json:"name"                   binding:"omitempty,max=150"`
	ClassCode            *string                `json:"class_code"             binding:"omitempty,max=20"`
	SubjectID            *string                `json:"subject_id"             binding:"omitempty,uuid"`
	TeacherID            *string                `json:"teacher_id"             binding:"omitempty,uuid"`
	SemesterID           *string                `json:"semester_id"            binding:"omitempty,uuid"`
	TotalSessions        *int                   `json:"total_sessions"         binding:"omitempty,min=1,max=100"`
	MaxAbsentAllowed     *int                   `json:"max_absent_allowed"     binding:"omitempty,min=0,max=100"`
	Schedule             []ScheduleEntryRequest `json:"schedule"               binding:"omitempty,dive"`
	CourseStartDate      *string                `json:"course_start_date"      binding:"omitempty,datetime=2006-01-02"`
	CourseEndDate        *string                `json:"course_end_date"        binding:"omitempty,datetime=2006-01-02"`
	AutoGenerateSessions *bool                  `json:"auto_generate_sessions"`
}

// ListTeachingClassesRequest tham số lọc danh sách lớp giảng dạy
type ListTeachingClassesRequest struct {
	PaginationRequest
	TeacherID  string `form:"teacher_id"  binding:"omitempty,uuid"`
	SemesterID string `form:"semester_id" binding:"omitempty,uuid"`
	Search     string `form:"search"      binding:"omitempty,max=100"`
}

// ScheduleEntryResponse khung giờ học trả về client
type ScheduleEntryResponse struct {
	DayOfWeek     *int     `json:"day_of_week"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	RoomID        string   `json:"room_id,omitempty"`
	IsRecurring   bool     `json:"is_recurring"`
	SpecificDates []string `json:"specific_dates,omitempty"`
	ExcludedDates []string `json:"excluded_dates,omitempty"`
}

// TeachingClassResponse lớp giảng dạy trả về client
type TeachingClassResponse struct {
	TeachingClassID      string                  `json:"teaching_class_id"`
	Name                 string                  `json:"name"`
	ClassCode            string                  `json:"class_code,omitempty"`
	Subject              *SubjectBrief           `json:"subject,omitempty"`
	Teacher              *UserBrief              `json:"teacher,omitempty"`
	SemesterID           string                  `json:"semester_id"`
	MainClassID          *string                 `json:"main_class_id,omitempty"`
	TotalSessions        int                     `json:"total_sessions"`
	MaxAbsentAllowed     int                     `json:"max_absent_allowed"`
	Schedule             []ScheduleEntryResponse `json:"schedule"`
	StudentCount         int                     `json:"student_count"`
	CourseStartDate      string                  `json:"course_start_date,omitempty"`
	CourseEndDate        string                  `json:"course_end_date,omitempty"`
	AutoGenerateSessions bool                    `json:"auto_generate_sessions"`
}

// ── Kiểm tra trùng lịch ──

// CheckConflictsRequest yêu cầu kiểm tra trùng lịch trước khi lưu
type CheckConflictsRequest struct {
	TeacherID      string                 `json:"teacher_id"       binding:"required,uuid"`
	ExcludeClassID string                 `json:"exclude_class_id" binding:"omitempty,uuid"`
	Schedule       []ScheduleEntryRequest `json:"schedule"         binding:"required,dive"`
}

// ScheduleConflict một xung đột lịch được phát hiện
type ScheduleConflict struct {
	Type      string     `json:"type"` // teacher hoặc room
	DayOfWeek int        `json:"day_of_week"`
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	RoomID    string     `json:"room_id,omitempty"`
	ClassInfo ClassBrief `json:"class_info"`
	Message   string     `json:"message"`
}

// ClassBrief thông tin rút gọn của lớp gây xung đột
type ClassBrief struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code,omitempty"`
	Subject string `json:"subject"`
	Teacher string `json:"teacher,omitempty"` // chỉ có với xung đột phòng
}

// CheckConflictsResponse kết quả kiểm tra trùng lịch
type CheckConflictsResponse struct {
	HasConflicts bool               `json:"has_conflicts"`
	Conflicts    []ScheduleConflict `json:"conflicts"`
}

// AddStudentRequest thêm một sinh viên vào lớp giảng dạy
type AddStudentRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
}

// BatchAddStudentsRequest thêm nhiều sinh viên vào lớp giảng dạy
type BatchAddStudentsRequest struct {
	StudentIDs []string `json:"student_ids" binding:"required,min=1,dive,uuid"`
}

// BatchAddStudentsResponse kết quả thêm hàng loạt
type BatchAddStudentsResponse struct {
	Added   []string `json:"added"`
	Skipped []string `json:"skipped"`
}
