package model

import "time"

// RecyclingOrder records one drop-off visit. It is created once per intake
// and never mutated afterwards.
type RecyclingOrder struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false"`
	OrderedAt   time.Time `gorm:"not null"`
	CustomerID  int64     `gorm:"index;not null"`
	EmployeeID  int64     `gorm:"index;not null"`
	DropOffSite string    `gorm:"size:128;not null"`

	// Associations
	Customer Customer
	Employee Employee
	Lines    []OrderLine `gorm:"foreignKey:OrderID"`
}

// OrderLine is one device entry within an order. The current intake
// workflow writes exactly one line per order, numbered 1; the composite
// key leaves room for multi-device orders.
type OrderLine struct {
	OrderID    int64  `gorm:"primaryKey;autoIncrement:false"`
	LineNo     int    `gorm:"primaryKey;autoIncrement:false"`
	DeviceID   int64  `gorm:"index;not null"`
	ActionCode string `gorm:"size:32;not null"`
	Qty        int    `gorm:"not null"`
	Notes      string `gorm:"size:512"`

	// Associations
	Device Device
}
