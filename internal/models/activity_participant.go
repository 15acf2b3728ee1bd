package models

import "time"

// ActivityParticipant is the join record between an activity and a user.
// The composite key guarantees at most one row per (activity, user);
// joining again only updates AdditionalParticipants.
type ActivityParticipant struct {
	ActivityID             string    `gorm:"primaryKey" json:"activity_id"`
	UserID                 string    `gorm:"primaryKey" json:"user_id"`
	AdditionalParticipants int       `json:"additional_participants"`
	Profile                Profile   `gorm:"foreignKey:UserID;references:ID" json:"profile"`
	CreatedAt              time.Time `json:"created_at"`
}
