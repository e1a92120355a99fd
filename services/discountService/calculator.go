package discountService

import (
	"strconv"
	"strings"

	"elearn/models/course"
	"elearn/models/discount"

	"gorm.io/gorm"
)

// PreviewItem is the per-course line of a preview result.
type PreviewItem struct {
	CourseID       uint    `json:"course_id"`
	BasePrice      float64 `json:"base_price"`
	Applied        bool    `json:"applied"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalPrice     float64 `json:"final_price"`
	Reason         string  `json:"reason,omitempty"` // set when not applied
}

// PreviewResult aggregates the per-line breakdown. Produced by a read-only
// computation; previewing never touches usage counters.
type PreviewResult struct {
	DiscountID      uint          `json:"discount_id"`
	Code            string        `json:"code"`
	Items           []PreviewItem `json:"items"`
	TotalDiscount   float64       `json:"total_discount"`
	TotalPriceAfter float64       `json:"total_price_after"`
}

// discountAmount computes the saving for one line. Percent discounts take a
// share of the price; fixed discounts are capped at the price so the final
// price never goes negative.
func discountAmount(d *discount.Discount, price float64) float64 {
	switch d.AmountKind {
	case discount.AmountPercent:
		if d.PercentValue == nil {
			return 0
		}
		amount := price * float64(*d.PercentValue) / 100
		if amount > price {
			amount = price
		}
		return amount
	case discount.AmountFixed:
		if d.FixedValue == nil {
			return 0
		}
		if *d.FixedValue > price {
			return price
		}
		return *d.FixedValue
	}
	return 0
}

// reasonText renders an eligibility reason for the response body.
func reasonText(reason string) string {
	switch reason {
	case ReasonNotStarted:
		return "code is not active yet"
	case ReasonExpired:
		return "code has expired"
	case ReasonInactive:
		return "code has been deactivated"
	case ReasonUsageExhausted:
		return "code has reached its usage limit"
	case ReasonUserLimitReached:
		return "you have already used this code"
	default:
		return "code does not apply to this course"
	}
}

// findByCodeOrID resolves a user-supplied string to a discount, trying the
// code first (case-insensitive), then a raw numeric id.
func (s *Service) findByCodeOrID(codeOrID string) (*discount.Discount, error) {
	code := strings.ToUpper(strings.TrimSpace(codeOrID))
	if code == "" {
		return nil, validationErr("discount code is required")
	}

	var d discount.Discount
	err := s.DB.Where("code = ? AND is_deleted = false", code).First(&d).Error
	if err == nil {
		return &d, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, dependencyErr(err)
	}

	if id, convErr := strconv.ParseUint(codeOrID, 10, 64); convErr == nil {
		err = s.DB.Where("id = ? AND is_deleted = false", uint(id)).First(&d).Error
		if err == nil {
			return &d, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, dependencyErr(err)
		}
	}
	return nil, notFoundErr("discount not found")
}

// Preview computes the effect of a discount on a cart of courses without
// committing anything. Ineligible lines keep their base price and carry a
// reason string; eligible lines get the per-line discount amount.
func (s *Service) Preview(courseIDs []uint, codeOrID string, userID uint) (*PreviewResult, error) {
	if len(courseIDs) == 0 {
		return nil, validationErr("course set must not be empty")
	}

	d, err := s.findByCodeOrID(codeOrID)
	if err != nil {
		return nil, err
	}

	var courses []course.Course
	if err := s.DB.Where("id IN ? AND is_deleted = false", courseIDs).Find(&courses).Error; err != nil {
		return nil, dependencyErr(err)
	}
	if len(courses) != len(courseIDs) {
		return nil, notFoundErr("one or more courses do not exist")
	}

	res, err := s.Resolve(d, courseIDs, userID)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]course.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	// line order follows the request order
	out := &PreviewResult{DiscountID: d.ID, Code: d.Code}
	for _, id := range courseIDs {
		c := byID[id]
		item := PreviewItem{CourseID: c.ID, BasePrice: c.Price, FinalPrice: c.Price}
		switch {
		case !res.OK:
			item.Reason = reasonText(res.Reason)
		case !res.CourseEligible[c.ID]:
			item.Reason = reasonText(ReasonNotApplicable)
		default:
			item.Applied = true
			item.DiscountAmount = discountAmount(d, c.Price)
			item.FinalPrice = c.Price - item.DiscountAmount
		}
		out.TotalDiscount += item.DiscountAmount
		out.TotalPriceAfter += item.FinalPrice
		out.Items = append(out.Items, item)
	}
	return out, nil
}
