package store

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ewaste-tracking-backend/internal/model"
)

// Entity classes with their own surrogate key sequence.
const (
	ClassCustomer = "customer"
	ClassOrder    = "order"
	ClassDevice   = "device"
)

var allClasses = []string{ClassCustomer, ClassOrder, ClassDevice}

// SeedSequences creates the allocator rows for every entity class. Running
// it again is a no-op, so it is safe on every startup.
func SeedSequences(db *gorm.DB) error {
	for _, class := range allClasses {
		seq := model.Sequence{EntityClass: class, Value: 0}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error; err != nil {
			return fmt.Errorf("failed to seed sequence %q: %w", class, err)
		}
	}
	return nil
}

// NextID issues the next surrogate key for the given entity class. It must
// be called on the transaction that consumes the key: the UPDATE takes the
// row lock, so concurrent transactions serialize on the sequence row and
// never see the same value. A rolled-back transaction leaves a gap, which
// is acceptable; reuse is not.
func NextID(tx *gorm.DB, entityClass string) (int64, error) {
	res := tx.Model(&model.Sequence{}).
		Where("entity_class = ?", entityClass).
		Update("value", gorm.Expr("value + 1"))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to advance sequence %q: %w", entityClass, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("unknown entity class %q", entityClass)
	}

	var seq model.Sequence
	if err := tx.First(&seq, "entity_class = ?", entityClass).Error; err != nil {
		return 0, fmt.Errorf("failed to read sequence %q: %w", entityClass, err)
	}
	return seq.Value, nil
}
