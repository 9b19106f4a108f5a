package model

// Room phòng học — bảng rooms
type Room struct {
	RoomID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"room_id"`
	Name     string `gorm:"type:varchar(50);not null"                      json:"name"`
	Building string `gorm:"type:varchar(50)"                               json:"building"`
	Capacity int    `gorm:"not null;default:0"                             json:"capacity"`
	BaseModel
}

// TableName chỉ định tên bảng
func (Room) TableName() string { return "rooms" }
