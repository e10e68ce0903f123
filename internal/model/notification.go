package model

import "time"

// Notification is a queued message for a user. Rows are written when a task
// is generated and delivered later by the dispatch job; SentAt stays nil
// until delivery succeeds.
type Notification struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index"`
	RuleID    uint `gorm:"index"`
	TaskID    uint
	Message   string
	SendAt    time.Time `gorm:"index"`
	SentAt    *time.Time
	CreatedAt time.Time
}
