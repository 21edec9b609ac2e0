package model

import "time"

// Customer represents the person who dropped off one or more devices.
//
// Email is the only deduplication key. It is stored as NULL when the
// customer gave no email, so the unique index never collapses anonymous
// customers into one row.
type Customer struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"`
	FirstName string    `gorm:"size:64;not null"`
	LastName  string    `gorm:"size:128"`
	Email     *string   `gorm:"uniqueIndex;size:128"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Orders []RecyclingOrder `gorm:"foreignKey:CustomerID"`
}
