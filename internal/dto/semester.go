package dto

// CreateSemesterRequest yêu cầu tạo học kỳ mới
type CreateSemesterRequest struct {
	Name      string `json:"name"       binding:"required,max=100"`
	Year      int    `json:"year"       binding:"required,min=2000,max=2100"`
	StartDate string `json:"start_date" binding:"required"` // định dạng 2006-01-02
	EndDate   string `json:"end_date"   binding:"required"`
	IsActive  bool   `json:"is_active"`
}

// UpdateSemesterRequest yêu cầu cập nhật học kỳ
type UpdateSemesterRequest struct {
	Name      *string `json:"name"       binding:"omitempty,max=100"`
	Year      *int    `json:"year"       binding:"omitempty,min=2000,max=2100"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	IsActive  *bool   `json:"is_active"`
}

// SemesterResponse học kỳ trả về client
type SemesterResponse struct {
	SemesterID string `json:"semester_id"`
	Name       string `json:"name"`
	Year       int    `json:"year"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	IsActive   bool   `json:"is_active"`
}

// CreateSubjectRequest yêu cầu tạo môn học
type CreateSubjectRequest struct {
	Name    string `json:"name"    binding:"required,max=150"`
	Code    string `json:"code"    binding:"required,max=20"`
	Credits int    `json:"credits" binding:"omitempty,min=1,max=20"`
}

// UpdateSubjectRequest yêu cầu cập nhật môn học
type UpdateSubjectRequest struct {
	Name    *string `json:"name"    binding:"omitempty,max=150"`
	Code    *string `json:"code"    binding:"omitempty,max=20"`
	Credits *int    `json:"credits" binding:"omitempty,min=1,max=20"`
}

// CreateRoomRequest yêu cầu tạo phòng học
type CreateRoomRequest struct {
	Name     string `json:"name"     binding:"required,max=50"`
	Building string `json:"building" binding:"omitempty,max=100"`
	Capacity int    `json:"capacity" binding:"omitempty,min=0"`
}

// UpdateRoomRequest yêu cầu cập nhật phòng học
type UpdateRoomRequest struct {
	Name     *string `json:"name"     binding:"omitempty,max=50"`
	Building *string `json:"building" binding:"omitempty,max=100"`
	Capacity *int    `json:"capacity" binding:"omitempty,min=0"`
}
