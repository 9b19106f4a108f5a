package dto

// CreateMainClassRequest yêu cầu tạo lớp chính (lớp hành chính)
type CreateMainClassRequest struct {
	Name      string  `json:"name"       binding:"required,max=150"`
	ClassCode string  `json:"class_code" binding:"required,max=20"`
	AdvisorID *string `json:"advisor_id" binding:"omitempty,uuid"`
	YearStart int     `json:"year_start" binding:"omitempty,min=2000,max=2100"`
}

// UpdateMainClassRequest yêu cầu cập nhật lớp chính
type UpdateMainClassRequest struct {
	Name      *string `json:"name"       binding:"omitempty,max=150"`
	ClassCode *string `json:"class_code" binding:"omitempty,max=20"`
	AdvisorID *string `json:"advisor_id" binding:"omitempty,uuid"`
	YearStart *int    `json:"year_start" binding:"omitempty,min=2000,max=2100"`
}

// ListMainClassesRequest tham số lọc danh sách lớp chính
type ListMainClassesRequest struct {
	PaginationRequest
	Search    string `form:"search"     binding:"omitempty,max=100"`
	AdvisorID string `form:"advisor_id" binding:"omitempty,uuid"`
}

// MainClassResponse lớp chính trả về client
type MainClassResponse struct {
	MainClassID  string     `json:"main_class_id"`
	Name         string     `json:"name"`
	ClassCode    string     `json:"class_code"`
	Advisor      *UserBrief `json:"advisor,omitempty"`
	YearStart    int        `json:"year_start"`
	StudentCount int        `json:"student_count"`
	PendingCount int        `json:"pending_count"`
}

// RequestJoinMainClassRequest sinh viên xin vào lớp chính
type RequestJoinMainClassRequest struct {
	StudentID string `json:"student_id" binding:"omitempty,uuid"`
}

// ApproveStudentRequest duyệt sinh viên vào lớp chính
type ApproveStudentRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
}
