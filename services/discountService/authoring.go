package discountService

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"elearn/models/course"
	"elearn/models/discount"

	"gorm.io/gorm"
)

// Spec carries the authoring input for create and edit.
type Spec struct {
	Name            string
	Description     string
	Code            string // generated when empty on create
	Hidden          bool
	ScopeKind       string
	AmountKind      string
	PercentValue    *int
	FixedValue      *float64
	UsageLimit      *int
	PerUserLimit    *int
	StartAt         time.Time
	EndAt           time.Time
	AutoTargetWeak  bool
	CourseTargets   []uint
	CategoryTargets []uint
}

// validateSpec enforces the ordered structural rules: validity window,
// amount-kind consistency, scope kind.
func validateSpec(spec *Spec) *Error {
	if strings.TrimSpace(spec.Name) == "" {
		return validationErr("name is required")
	}
	if !spec.StartAt.Before(spec.EndAt) {
		return validationErr("start date must be before end date")
	}

	switch spec.AmountKind {
	case discount.AmountPercent:
		if spec.PercentValue == nil {
			return validationErr("percent value is required for percent discounts")
		}
		if *spec.PercentValue < 1 || *spec.PercentValue > 100 {
			return validationErr("percent value must be between 1 and 100")
		}
		spec.FixedValue = nil // kinds are mutually exclusive
	case discount.AmountFixed:
		if spec.FixedValue == nil {
			return validationErr("fixed value is required for fixed discounts")
		}
		if *spec.FixedValue <= 0 {
			return validationErr("fixed value must be positive")
		}
		spec.PercentValue = nil
	default:
		return validationErr("amount kind must be PERCENT or FIXED")
	}

	switch spec.ScopeKind {
	case discount.ScopeGlobal, discount.ScopeCourse, discount.ScopeCategory:
	default:
		return validationErr("scope kind must be GLOBAL, COURSE or CATEGORY")
	}

	if spec.UsageLimit != nil && *spec.UsageLimit < 1 {
		return validationErr("usage limit must be positive when set")
	}
	if spec.PerUserLimit != nil && *spec.PerUserLimit < 1 {
		return validationErr("per-user limit must be positive when set")
	}
	return nil
}

// applyRoleConstraints rewrites and checks the authoring input for the acting role:
// lecturers may not use category scope or auto-targeting, must own every
// explicit course target, and have GLOBAL rewritten to a COURSE scope over
// the courses they own.
func (s *Service) applyRoleConstraints(spec *Spec, actorID uint, role Role) error {
	if spec.AutoTargetWeak && !role.CanAutoTargetWeak() {
		return forbiddenErr("", "auto-targeting is limited to administrators")
	}
	if spec.ScopeKind == discount.ScopeCategory && !role.CanUseCategoryScope() {
		return forbiddenErr("", "category-scoped discounts are limited to administrators")
	}

	if !role.RequiresCourseOwnership() {
		if spec.AutoTargetWeak {
			weak, err := s.RankWeakCourses(s.WeakTargetLimit)
			if err != nil {
				return err
			}
			if len(weak) == 0 {
				return &Error{Code: CodeValidation, Detail: DetailNoCourses, Message: "no courses available to target"}
			}
			spec.ScopeKind = discount.ScopeCourse
			spec.CourseTargets = weak
			spec.CategoryTargets = nil
		}
		return nil
	}

	// Lecturer path from here on.
	if spec.ScopeKind == discount.ScopeGlobal {
		var owned []uint
		err := s.DB.Model(&course.Course{}).
			Where("lecturer_id = ? AND is_deleted = false", actorID).
			Pluck("id", &owned).Error
		if err != nil {
			return dependencyErr(err)
		}
		if len(owned) == 0 {
			return &Error{Code: CodeValidation, Detail: DetailNoCourses, Message: "lecturer owns no courses to discount"}
		}
		spec.ScopeKind = discount.ScopeCourse
		spec.CourseTargets = owned
		spec.CategoryTargets = nil
		return nil
	}

	if len(spec.CourseTargets) > 0 {
		var ownedCount int64
		err := s.DB.Model(&course.Course{}).
			Where("id IN ? AND lecturer_id = ? AND is_deleted = false", spec.CourseTargets, actorID).
			Count(&ownedCount).Error
		if err != nil {
			return dependencyErr(err)
		}
		if ownedCount != int64(len(spec.CourseTargets)) {
			return forbiddenErr(DetailNotOwner, "every targeted course must belong to the acting lecturer")
		}
	}
	return nil
}

// checkTargetsExist rejects targets referencing missing courses/categories.
func (s *Service) checkTargetsExist(spec *Spec) error {
	if len(spec.CourseTargets) > 0 {
		var n int64
		err := s.DB.Model(&course.Course{}).
			Where("id IN ? AND is_deleted = false", spec.CourseTargets).
			Count(&n).Error
		if err != nil {
			return dependencyErr(err)
		}
		if n != int64(len(spec.CourseTargets)) {
			return notFoundErr("one or more targeted courses do not exist")
		}
	}
	if len(spec.CategoryTargets) > 0 {
		var n int64
		err := s.DB.Table("categories").
			Where("id IN ? AND is_deleted = false", spec.CategoryTargets).
			Count(&n).Error
		if err != nil {
			return dependencyErr(err)
		}
		if n != int64(len(spec.CategoryTargets)) {
			return notFoundErr("one or more targeted categories do not exist")
		}
	}
	return nil
}

func buildTargets(discountID uint, spec *Spec) []discount.DiscountTarget {
	var targets []discount.DiscountTarget
	for _, id := range spec.CourseTargets {
		cid := id
		targets = append(targets, discount.DiscountTarget{DiscountID: discountID, CourseID: &cid})
	}
	for _, id := range spec.CategoryTargets {
		cid := id
		targets = append(targets, discount.DiscountTarget{DiscountID: discountID, CategoryID: &cid})
	}
	return targets
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateCode() string {
	b := make([]byte, 10)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// codeTaken reports whether another discount already uses the code.
func (s *Service) codeTaken(code string, excludeID uint) (bool, error) {
	var n int64
	q := s.DB.Model(&discount.Discount{}).Where("code = ? AND is_deleted = false", code)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, dependencyErr(err)
	}
	return n > 0, nil
}

// Create validates and persists a new discount with its targets, applying
// the acting role's constraints. Nothing is committed on failure.
func (s *Service) Create(spec Spec, creatorID uint, roleStr string) (*discount.Discount, error) {
	role, err := ParseRole(roleStr)
	if err != nil {
		return nil, err
	}
	if err := validateSpec(&spec); err != nil {
		return nil, err
	}
	if err := s.applyRoleConstraints(&spec, creatorID, role); err != nil {
		return nil, err
	}
	if err := s.checkTargetsExist(&spec); err != nil {
		return nil, err
	}

	spec.Code = strings.ToUpper(strings.TrimSpace(spec.Code))
	if spec.Code == "" {
		spec.Code = generateCode()
	}
	taken, err := s.codeTaken(spec.Code, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, conflictErr(DetailDuplicateCode, fmt.Sprintf("code %s is already in use", spec.Code))
	}

	d := discount.Discount{
		Name:         spec.Name,
		Description:  spec.Description,
		Code:         spec.Code,
		IsHidden:     spec.Hidden,
		CreatorID:    creatorID,
		CreatorRole:  role.String(),
		ScopeKind:    spec.ScopeKind,
		AmountKind:   spec.AmountKind,
		PercentValue: spec.PercentValue,
		FixedValue:   spec.FixedValue,
		UsageLimit:   spec.UsageLimit,
		PerUserLimit: spec.PerUserLimit,
		StartAt:      spec.StartAt,
		EndAt:        spec.EndAt,
		IsActive:     true,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&d).Error; err != nil {
			return dependencyErr(err)
		}
		if targets := buildTargets(d.ID, &spec); len(targets) > 0 {
			if err := tx.Create(&targets).Error; err != nil {
				return dependencyErr(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Edit validates and applies a full update. A discount with any redemption
// is structurally frozen: code and amount kind can no longer change. Targets
// are replaced wholesale inside the same transaction.
func (s *Service) Edit(id uint, spec Spec, actorID uint, roleStr string) (*discount.Discount, error) {
	role, err := ParseRole(roleStr)
	if err != nil {
		return nil, err
	}

	var d discount.Discount
	if err := s.DB.Where("id = ? AND is_deleted = false", id).First(&d).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFoundErr("discount not found")
		}
		return nil, dependencyErr(err)
	}
	if role.RequiresCourseOwnership() && d.CreatorID != actorID {
		return nil, forbiddenErr("", "lecturers may only edit their own discounts")
	}

	if err := validateSpec(&spec); err != nil {
		return nil, err
	}
	if err := s.applyRoleConstraints(&spec, actorID, role); err != nil {
		return nil, err
	}
	if err := s.checkTargetsExist(&spec); err != nil {
		return nil, err
	}

	spec.Code = strings.ToUpper(strings.TrimSpace(spec.Code))
	if spec.Code == "" {
		spec.Code = d.Code
	}

	used := d.UsageCount > 0
	if !used {
		var n int64
		if err := s.DB.Model(&discount.DiscountHistory{}).Where("discount_id = ?", d.ID).Count(&n).Error; err != nil {
			return nil, dependencyErr(err)
		}
		used = n > 0
	}
	if used && (spec.Code != d.Code || spec.AmountKind != d.AmountKind) {
		return nil, conflictErr(DetailFrozenAfterUse, "code and amount kind cannot change after the discount has been used")
	}

	if spec.Code != d.Code {
		taken, err := s.codeTaken(spec.Code, d.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, conflictErr(DetailDuplicateCode, fmt.Sprintf("code %s is already in use", spec.Code))
		}
	}

	d.Name = spec.Name
	d.Description = spec.Description
	d.Code = spec.Code
	d.IsHidden = spec.Hidden
	d.ScopeKind = spec.ScopeKind
	d.AmountKind = spec.AmountKind
	d.PercentValue = spec.PercentValue
	d.FixedValue = spec.FixedValue
	d.UsageLimit = spec.UsageLimit
	d.PerUserLimit = spec.PerUserLimit
	d.StartAt = spec.StartAt
	d.EndAt = spec.EndAt

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&d).Error; err != nil {
			return dependencyErr(err)
		}
		if err := tx.Unscoped().Where("discount_id = ?", d.ID).Delete(&discount.DiscountTarget{}).Error; err != nil {
			return dependencyErr(err)
		}
		if targets := buildTargets(d.ID, &spec); len(targets) > 0 {
			if err := tx.Create(&targets).Error; err != nil {
				return dependencyErr(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}
