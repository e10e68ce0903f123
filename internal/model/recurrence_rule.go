package model

import "time"

// Rule statuses as stored in the database.
const (
	RuleStatusActive    = "active"
	RuleStatusPaused    = "paused"
	RuleStatusCompleted = "completed"
)

// RecurrenceRule describes how often a base task is re-instantiated.
// Cursors (LastGeneratedAt, NextGenerationAt, RotationIndex) are advanced by
// the recurrence engine; Version guards against concurrent ticks.
type RecurrenceRule struct {
	ID         uint `gorm:"primaryKey"`
	BaseTaskID uint `gorm:"index"`
	ProjectID  uint `gorm:"index:idx_rule_project_status"`

	Frequency    string
	DaysOfWeek   []int  `gorm:"serializer:json"`
	DatesOfMonth []int  `gorm:"serializer:json"`
	MonthsOfYear []int  `gorm:"serializer:json"`
	TimeOfDay    string // HH:MM, optional

	StartDate        time.Time
	EndDate          *time.Time
	LastGeneratedAt  *time.Time
	NextGenerationAt time.Time `gorm:"index"`

	Status  string `gorm:"index:idx_rule_project_status;default:active"`
	Version int    `gorm:"default:1"`

	NotifyEnabled      bool
	NotifyRecipients   []uint `gorm:"serializer:json"`
	NotifyAdvanceHours int    `gorm:"default:24"`

	AutoAssignEnabled bool
	RotationIndex     int

	Rotation []RotationMember   `gorm:"foreignKey:RuleID"`
	History  []GenerationRecord `gorm:"foreignKey:RuleID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RotationMember is one slot in a rule's auto-assignment cycle.
type RotationMember struct {
	ID       uint `gorm:"primaryKey"`
	RuleID   uint `gorm:"index"`
	UserID   uint
	Position int
}

// GenerationRecord links a rule to one task it materialized. Append-only;
// the referenced task may be deleted later, readers tolerate the dangling id.
type GenerationRecord struct {
	ID           uint `gorm:"primaryKey"`
	RuleID       uint `gorm:"index"`
	TaskID       uint
	GeneratedFor time.Time `gorm:"index"`
	Status       string
	CreatedAt    time.Time
}
