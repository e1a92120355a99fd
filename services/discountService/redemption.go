package discountService

import (
	"elearn/models/discount"

	"gorm.io/gorm"
)

// RedeemedItem is one discounted purchase line inside a redemption.
type RedeemedItem struct {
	ItemID uint
	Amount float64
}

// Redeem consumes one use of a discount for a checkout inside the caller's
// transaction. Usage is counted once per transaction regardless of how many
// line items the discount covered; each covered line gets a history row.
//
// The usage ceiling is enforced with an atomic conditional increment, so
// concurrent checkouts can never push usage_count past usage_limit: the
// losing writer sees zero affected rows and the whole checkout rolls back.
func (s *Service) Redeem(tx *gorm.DB, discountID uint, items []RedeemedItem) error {
	if len(items) == 0 {
		return validationErr("redemption requires at least one discounted item")
	}

	res := tx.Model(&discount.Discount{}).
		Where("id = ? AND is_active = true AND is_deleted = false", discountID).
		Where("usage_limit IS NULL OR usage_count < usage_limit").
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		return dependencyErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return conflictErr(DetailUsageExhausted, "discount usage limit reached")
	}

	now := s.Now()
	history := make([]discount.DiscountHistory, 0, len(items))
	for _, item := range items {
		history = append(history, discount.DiscountHistory{
			DiscountID:        discountID,
			TransactionItemID: item.ItemID,
			Amount:            item.Amount,
			RedeemedAt:        now,
		})
	}
	if err := tx.Create(&history).Error; err != nil {
		return dependencyErr(err)
	}
	return nil
}
