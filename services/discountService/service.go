package discountService

import (
	"time"

	"gorm.io/gorm"
)

// Service is the discount rules engine: eligibility resolution, price
// preview, availability ranking, authoring and redemption. Controllers stay
// thin and call into it; all business failures come back as *Error.
type Service struct {
	DB  *gorm.DB
	Now func() time.Time

	// EmptyTargetsApplyAll controls the legacy fallback where a COURSE or
	// CATEGORY scoped discount with zero target rows applies to every
	// course. The default keeps that behavior; set false to treat zero
	// targets as zero eligible courses.
	EmptyTargetsApplyAll bool

	// WeakTargetLimit bounds auto-targeting for admin-created discounts.
	WeakTargetLimit int
}

// New builds a Service with the default policy set.
func New(db *gorm.DB) *Service {
	return &Service{
		DB:                   db,
		Now:                  time.Now,
		EmptyTargetsApplyAll: true,
		WeakTargetLimit:      100,
	}
}
