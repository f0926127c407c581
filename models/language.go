package models

import "time"

// Language is a content language. Code is the identifier used in URLs.
type Language struct {
	ID         uint      `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	NativeName string    `json:"native_name"`
	IsRTL      bool      `json:"is_rtl"`
	IsActive   bool      `json:"is_active"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Direction returns the text direction used by templates.
func (l Language) Direction() string {
	if l.IsRTL {
		return "rtl"
	}
	return "ltr"
}
