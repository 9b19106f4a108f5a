package model

// Vai trò người dùng
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// User người dùng — bảng users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	FullName     string `gorm:"type:varchar(100);not null"                     json:"full_name"`
	StudentCode  string `gorm:"type:varchar(20)"                               json:"student_code"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	BaseModel
}

// TableName chỉ định tên bảng
func (User) TableName() string { return "users" }
