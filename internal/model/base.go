package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// ── Kiểu UUID[] của PostgreSQL ──

// StringArray tương ứng kiểu UUID[]/TEXT[], cài đặt Scanner/Valuer cho GORM.
type StringArray []string

// Scan phân tích văn bản {a,b,c} từ PostgreSQL thành []string.
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}
	var s string
	switch v := src.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("StringArray.Scan: kiểu không hỗ trợ %T", src)
	}
	s = strings.Trim(s, "{}")
	if s == "" {
		*a = StringArray{}
		return nil
	}
	parts := strings.Split(s, ",")
	arr := make(StringArray, 0, len(parts))
	for _, p := range parts {
		arr = append(arr, strings.Trim(strings.TrimSpace(p), `"`))
	}
	*a = arr
	return nil
}

// Value tuần tự hóa []string thành văn bản {a,b,c}.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	return "{" + strings.Join(a, ",") + "}", nil
}

// Contains kiểm tra phần tử có trong mảng không.
func (a StringArray) Contains(id string) bool {
	for _, v := range a {
		if v == id {
			return true
		}
	}
	return false
}

// Remove trả về mảng mới đã loại bỏ phần tử chỉ định.
func (a StringArray) Remove(id string) StringArray {
	out := make(StringArray, 0, len(a))
	for _, v := range a {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// BaseModel trường audit chung (mọi model nghiệp vụ nhúng vào)
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
