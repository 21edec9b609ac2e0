package model

import "time"

// Employee represents a staff member who can record intakes. Rows are
// seeded at startup and treated as read-only by the intake workflow.
type Employee struct {
	ID        int64     `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:128;not null"`
	FullName  string    `gorm:"size:128;not null"`
	Role      string    `gorm:"size:32"`
	CreatedAt time.Time `gorm:"not null"`
}
