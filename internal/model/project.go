package model

import "time"

// Project owns tasks and recurrence rules.
type Project struct {
	ID        uint `gorm:"primaryKey"`
	Name      string
	OwnerID   uint `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Tasks     []Task `gorm:"foreignKey:ProjectID"`
}
