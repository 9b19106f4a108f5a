package model

// MainClass lớp chính (lớp sinh hoạt) — bảng main_classes
// Sinh viên đăng ký vào pending_students, cố vấn duyệt mới chuyển sang students.
type MainClass struct {
	MainClassID     string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"main_class_id"`
	Name            string      `gorm:"type:varchar(150);not null"                     json:"name"`
	ClassCode       string      `gorm:"type:varchar(30);not null;uniqueIndex"          json:"class_code"`
	AdvisorID       *string     `gorm:"type:uuid"                                      json:"advisor_id,omitempty"`
	YearStart       int         `json:"year_start"`
	Students        StringArray `gorm:"type:uuid[];not null;default:'{}'"              json:"students"`
	PendingStudents StringArray `gorm:"type:uuid[];not null;default:'{}'"              json:"pending_students"`
	BaseModel

	// Quan hệ
	Advisor *User `gorm:"foreignKey:AdvisorID;references:UserID" json:"advisor,omitempty"`
}

// TableName chỉ định tên bảng
func (MainClass) TableName() string { return "main_classes" }
