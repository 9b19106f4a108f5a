package dto

// NotificationResponse thông báo trả về client
type NotificationResponse struct {
	NotificationID string `json:"notification_id"`
	Type           string `json:"type"`
	Content        string `json:"content"`
	Link           string `json:"link,omitempty"`
	IsRead         bool   `json:"is_read"`
	CreatedAt      string `json:"created_at"`
}

// MarkNotificationsReadRequest đánh dấu thông báo đã đọc
type MarkNotificationsReadRequest struct {
	NotificationIDs []string `json:"notification_ids" binding:"required,min=1,dive,uuid"`
}
