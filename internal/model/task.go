package model

import "time"

// Task statuses as stored in the database.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

// Task represents a single work item in a project. Generated instances of a
// recurrence rule are ordinary tasks owned by the project.
type Task struct {
	ID          uint   `gorm:"primaryKey"`
	PublicID    string `gorm:"uniqueIndex"`
	ProjectID   uint   `gorm:"index"`
	Title       string
	Description string
	Priority    string
	Status      string `gorm:"default:pending"`
	AssignedTo  *uint  `gorm:"index"`
	Deadline    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
