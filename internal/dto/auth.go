package dto

// RegisterRequest yêu cầu đăng ký tài khoản
type RegisterRequest struct {
	FullName    string `json:"full_name"    binding:"required,min=2,max=100"`
	Email       string `json:"email"        binding:"required,email"`
	Password    string `json:"password"     binding:"required,min=6,max=72"`
	Role        string `json:"role"         binding:"omitempty,oneof=admin teacher student"`
	StudentCode string `json:"student_code" binding:"omitempty,max=20"`
}

// LoginRequest yêu cầu đăng nhập
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest yêu cầu làm mới access token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse cặp token trả về sau khi xác thực thành công
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

// UserResponse thông tin người dùng trả về client
type UserResponse struct {
	UserID      string `json:"user_id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	StudentCode string `json:"student_code,omitempty"`
}

// ListUsersRequest tham số lọc danh sách người dùng
type ListUsersRequest struct {
	PaginationRequest
	Role   string `form:"role"   binding:"omitempty,oneof=admin teacher student"`
	Search string `form:"search" binding:"omitempty,max=100"`
}
