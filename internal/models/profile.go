package models

import (
	"strings"
	"time"
)

type Profile struct {
	ID          string  `gorm:"primaryKey" json:"id"`
	Email       string  `gorm:"uniqueIndex" json:"email"`
	FullName    string  `json:"full_name"`
	AvatarURL   string  `json:"avatar_url"`
	OneSignalID *string `json:"onesignal_id,omitempty"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DisplayName falls back to the local part of the email when the user
// never filled in a full name.
func (p Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	if at := strings.Index(p.Email, "@"); at > 0 {
		return p.Email[:at]
	}
	return "Algú"
}

// HasPushToken reports whether the user has opted in to push notifications.
func (p Profile) HasPushToken() bool {
	return p.OneSignalID != nil && *p.OneSignalID != ""
}
