package dto

// ── DTO dùng chung ──

// UserBrief thông tin rút gọn của người dùng
type UserBrief struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	StudentCode string `json:"student_code,omitempty"`
	Email       string `json:"email,omitempty"`
}

// SubjectBrief thông tin rút gọn của môn học
type SubjectBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// RoomBrief thông tin rút gọn của phòng học
type RoomBrief struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Building string `json:"building,omitempty"`
}

// ── Phân trang ──

// PaginationRequest tham số phân trang chung
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage trang hiện tại (có giá trị mặc định)
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize số phần tử mỗi trang (có giá trị mặc định)
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset vị trí bắt đầu
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
