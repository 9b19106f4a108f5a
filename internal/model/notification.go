package model

// Loại thông báo
const (
	NotificationScheduleUpdate  = "SCHEDULE_UPDATE"
	NotificationEnrollApproved  = "ENROLL_APPROVED"
	NotificationEnrollRejected  = "ENROLL_REJECTED"
	NotificationClassEnrollment = "CLASS_ENROLLMENT"
)

// Notification thông báo gửi tới người dùng — bảng notifications
type Notification struct {
	NotificationID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	ReceiverID     string  `gorm:"type:uuid;not null;index"                       json:"receiver_id"`
	SenderID       *string `gorm:"type:uuid"                                      json:"sender_id,omitempty"`
	Type           string  `gorm:"type:varchar(50);not null"                      json:"type"`
	Content        string  `gorm:"type:text;not null"                             json:"content"`
	Link           string  `gorm:"type:varchar(255)"                              json:"link"`
	IsRead         bool    `gorm:"not null;default:false"                         json:"is_read"`
	BaseModel
}

// TableName chỉ định tên bảng
func (Notification) TableName() string { return "notifications" }
