package discountService

import (
	"elearn/models"
	"elearn/models/discount"

	"gorm.io/gorm"
)

// loadOwned fetches a discount and enforces the role's ownership rule.
func (s *Service) loadOwned(id uint, actorID uint, role Role) (*discount.Discount, error) {
	var d discount.Discount
	if err := s.DB.Where("id = ? AND is_deleted = false", id).First(&d).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFoundErr("discount not found")
		}
		return nil, dependencyErr(err)
	}
	if role.RequiresCourseOwnership() && d.CreatorID != actorID {
		return nil, forbiddenErr("", "lecturers may only manage their own discounts")
	}
	return &d, nil
}

// Toggle flips the active flag, or sets it when explicit is non-nil.
func (s *Service) Toggle(id uint, actorID uint, roleStr string, explicit *bool) (*discount.Discount, error) {
	role, err := ParseRole(roleStr)
	if err != nil {
		return nil, err
	}
	d, err := s.loadOwned(id, actorID, role)
	if err != nil {
		return nil, err
	}

	next := !d.IsActive
	if explicit != nil {
		next = *explicit
	}
	if err := s.DB.Model(d).Update("is_active", next).Error; err != nil {
		return nil, dependencyErr(err)
	}
	d.IsActive = next
	return d, nil
}

// Delete removes a never-used discount and its targets. Any redemption
// history or referencing purchase line item blocks deletion.
func (s *Service) Delete(id uint, actorID uint, roleStr string) error {
	role, err := ParseRole(roleStr)
	if err != nil {
		return err
	}
	d, err := s.loadOwned(id, actorID, role)
	if err != nil {
		return err
	}

	var history int64
	if err := s.DB.Model(&discount.DiscountHistory{}).Where("discount_id = ?", d.ID).Count(&history).Error; err != nil {
		return dependencyErr(err)
	}
	var items int64
	if err := s.DB.Model(&models.TransactionItem{}).Where("discount_id = ?", d.ID).Count(&items).Error; err != nil {
		return dependencyErr(err)
	}
	if history > 0 || items > 0 || d.UsageCount > 0 {
		return conflictErr(DetailHasHistory, "discount has been used and cannot be deleted")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("discount_id = ?", d.ID).Delete(&discount.DiscountTarget{}).Error; err != nil {
			return dependencyErr(err)
		}
		// is_deleted is the one soft-delete mechanism; the row stays readable
		if err := tx.Model(d).Update("is_deleted", true).Error; err != nil {
			return dependencyErr(err)
		}
		return nil
	})
}
