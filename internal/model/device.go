package model

import "time"

// Device represents a single piece of electronic waste. The MAC address is
// the public lookup key; QRCode holds the filename of the generated
// tracking-code image, never the image itself.
type Device struct {
	ID          int64   `gorm:"primaryKey;autoIncrement:false"`
	DeviceType  string  `gorm:"size:64"`
	Make        string  `gorm:"size:64"`
	Model       string  `gorm:"size:64"`
	SerialNo    string  `gorm:"size:64"`
	HazardClass string  `gorm:"size:32;not null"`
	WeightKg    float64 `gorm:"not null"`
	Status      string  `gorm:"size:32;not null"`
	MACAddr     string  `gorm:"column:mac_addr;uniqueIndex;size:64;not null"`
	QRCode      string  `gorm:"size:64;not null"`
	CustomerID  int64   `gorm:"index;not null"`
	CreatedAt   time.Time

	// Associations
	Customer Customer
}
