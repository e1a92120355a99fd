package discountService

import (
	"sort"

	"elearn/models/course"
	"elearn/models/discount"
)

// AvailableDiscount is one availability search hit: the discount plus the
// best saving it could produce on the given cart.
type AvailableDiscount struct {
	Discount   discount.Discount `json:"discount"`
	BestSaving float64           `json:"best_saving"`
}

// FindAvailable filters the listed (active, non-hidden) discount catalog to
// those applicable to at least one course in the set, ranked by the maximum
// saving they could produce across the set, descending. Equal savings are
// ordered by ascending discount id so the ranking is deterministic.
func (s *Service) FindAvailable(courseIDs []uint, userID uint) ([]AvailableDiscount, error) {
	if len(courseIDs) == 0 {
		return nil, validationErr("course set must not be empty")
	}

	var courses []course.Course
	if err := s.DB.Where("id IN ? AND is_deleted = false", courseIDs).Find(&courses).Error; err != nil {
		return nil, dependencyErr(err)
	}
	if len(courses) != len(courseIDs) {
		return nil, notFoundErr("one or more courses do not exist")
	}
	priceByID := make(map[uint]float64, len(courses))
	for _, c := range courses {
		priceByID[c.ID] = c.Price
	}

	var catalog []discount.Discount
	err := s.DB.Where("is_active = true AND is_hidden = false AND is_deleted = false").
		Order("id asc").
		Find(&catalog).Error
	if err != nil {
		return nil, dependencyErr(err)
	}

	var available []AvailableDiscount
	for i := range catalog {
		d := catalog[i]
		res, err := s.Resolve(&d, courseIDs, userID)
		if err != nil {
			return nil, err
		}
		if !res.AnyEligible() {
			continue
		}

		best := 0.0
		for id, ok := range res.CourseEligible {
			if !ok {
				continue
			}
			if amount := discountAmount(&d, priceByID[id]); amount > best {
				best = amount
			}
		}
		available = append(available, AvailableDiscount{Discount: d, BestSaving: best})
	}

	sort.SliceStable(available, func(i, j int) bool {
		return available[i].BestSaving > available[j].BestSaving
	})
	return available, nil
}
