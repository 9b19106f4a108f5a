package model

// Subject môn học — bảng subjects
type Subject struct {
	SubjectID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	Name      string `gorm:"type:varchar(150);not null"                     json:"name"`
	Code      string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	Credits   int    `gorm:"not null;default:3"                             json:"credits"`
	BaseModel
}

// TableName chỉ định tên bảng
func (Subject) TableName() string { return "subjects" }
