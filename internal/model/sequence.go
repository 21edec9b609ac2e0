package model

// Sequence backs the per-entity-class surrogate key allocator. One row per
// entity class, seeded at migration time; Value is the last issued key.
type Sequence struct {
	EntityClass string `gorm:"primaryKey;size:32"`
	Value       int64  `gorm:"not null"`
}
