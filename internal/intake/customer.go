package intake

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ewaste-tracking-backend/internal/model"
	"ewaste-tracking-backend/internal/parse"
	"ewaste-tracking-backend/internal/store"
)

// resolveCustomer finds or creates the customer row for an intake,
// deduplicating by contact email. An empty email never deduplicates: it is
// stored as NULL, so every anonymous intake creates a fresh customer even
// when the name matches an earlier one.
//
// The insert goes through ON CONFLICT (email) DO NOTHING followed by a
// re-read, so two concurrent intakes racing on the same email converge on
// a single row instead of tripping the unique index. The losing call
// wastes its allocated key, which the allocator permits.
func resolveCustomer(tx *gorm.DB, name, email string) (int64, error) {
	if email != "" {
		var existing model.Customer
		err := tx.First(&existing, "email = ?", email).Error
		if err == nil {
			return existing.ID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("failed to look up customer by email: %w", err)
		}
	}

	id, err := store.NextID(tx, store.ClassCustomer)
	if err != nil {
		return 0, err
	}

	first, last := parse.SplitName(name)
	customer := model.Customer{ID: id, FirstName: first, LastName: last}
	if email != "" {
		customer.Email = &email
	}

	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&customer)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to create customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost the race to a concurrent intake with the same email.
		var existing model.Customer
		if err := tx.First(&existing, "email = ?", email).Error; err != nil {
			return 0, fmt.Errorf("failed to re-read customer after conflict: %w", err)
		}
		return existing.ID, nil
	}
	return id, nil
}
