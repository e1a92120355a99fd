package discountService

import (
	"elearn/models"
	"elearn/models/course"
	"elearn/models/discount"
)

// Eligibility reason codes. These are result data, not errors: a failed
// check is a normal outcome of preview/availability, never an exception.
const (
	ReasonNotStarted       = "NOT_STARTED"
	ReasonExpired          = "EXPIRED"
	ReasonInactive         = "INACTIVE"
	ReasonUsageExhausted   = "USAGE_EXHAUSTED"
	ReasonUserLimitReached = "USER_LIMIT_REACHED"
	ReasonNotApplicable    = "NOT_APPLICABLE"
)

// EligibilityResult is the resolver output: overall pass/fail over the
// discount-level checks, plus a per-course applicability map when passing.
type EligibilityResult struct {
	OK             bool          `json:"ok"`
	Reason         string        `json:"reason,omitempty"`
	CourseEligible map[uint]bool `json:"course_eligible,omitempty"`
}

// AnyEligible reports whether at least one course in the set is in scope.
func (r *EligibilityResult) AnyEligible() bool {
	if !r.OK {
		return false
	}
	for _, ok := range r.CourseEligible {
		if ok {
			return true
		}
	}
	return false
}

// Resolve runs the ordered eligibility checks for one discount against a
// course set. Checks short-circuit on the first failure: temporal window,
// active flag, global usage ceiling, per-user ceiling (counted per distinct
// transaction, not per line item), then per-course applicability.
func (s *Service) Resolve(d *discount.Discount, courseIDs []uint, userID uint) (*EligibilityResult, error) {
	if len(courseIDs) == 0 {
		return nil, validationErr("course set must not be empty")
	}

	now := s.Now()
	if now.Before(d.StartAt) {
		return &EligibilityResult{OK: false, Reason: ReasonNotStarted}, nil
	}
	if now.After(d.EndAt) {
		return &EligibilityResult{OK: false, Reason: ReasonExpired}, nil
	}
	if !d.IsActive {
		return &EligibilityResult{OK: false, Reason: ReasonInactive}, nil
	}
	if d.UsageLimit != nil && d.UsageCount >= *d.UsageLimit {
		return &EligibilityResult{OK: false, Reason: ReasonUsageExhausted}, nil
	}

	if d.PerUserLimit != nil {
		var used int64
		err := s.DB.Model(&models.Transactions{}).
			Where("user_id = ? AND discount_id = ? AND status = ? AND is_deleted = false",
				userID, d.ID, models.TxnStatusCompleted).
			Count(&used).Error
		if err != nil {
			return nil, dependencyErr(err)
		}
		if used >= int64(*d.PerUserLimit) {
			return &EligibilityResult{OK: false, Reason: ReasonUserLimitReached}, nil
		}
	}

	eligible, err := s.courseApplicability(d, courseIDs)
	if err != nil {
		return nil, err
	}
	return &EligibilityResult{OK: true, CourseEligible: eligible}, nil
}

// courseApplicability maps each course id to whether the discount's scope
// covers it. GLOBAL covers everything; otherwise a course is covered when
// its id is a course target or its category is a category target. The
// zero-target fallback is governed by EmptyTargetsApplyAll.
func (s *Service) courseApplicability(d *discount.Discount, courseIDs []uint) (map[uint]bool, error) {
	eligible := make(map[uint]bool, len(courseIDs))

	if d.ScopeKind == discount.ScopeGlobal {
		for _, id := range courseIDs {
			eligible[id] = true
		}
		return eligible, nil
	}

	var targets []discount.DiscountTarget
	if err := s.DB.Where("discount_id = ?", d.ID).Find(&targets).Error; err != nil {
		return nil, dependencyErr(err)
	}

	if len(targets) == 0 {
		for _, id := range courseIDs {
			eligible[id] = s.EmptyTargetsApplyAll
		}
		return eligible, nil
	}

	courseTargets := make(map[uint]bool)
	categoryTargets := make(map[uint]bool)
	for _, t := range targets {
		if t.CourseID != nil {
			courseTargets[*t.CourseID] = true
		}
		if t.CategoryID != nil {
			categoryTargets[*t.CategoryID] = true
		}
	}

	var courses []course.Course
	if err := s.DB.Where("id IN ? AND is_deleted = false", courseIDs).Find(&courses).Error; err != nil {
		return nil, dependencyErr(err)
	}
	if len(courses) != len(courseIDs) {
		return nil, notFoundErr("one or more courses do not exist")
	}

	for _, c := range courses {
		eligible[c.ID] = courseTargets[c.ID] || categoryTargets[c.CategoryID]
	}
	return eligible, nil
}
