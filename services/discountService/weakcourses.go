package discountService

import (
	"sort"

	"elearn/models/course"
)

// Composite weakness weights. Higher score = weaker course.
const (
	weightRating     = 0.4
	weightEnrollment = 0.3
	weightViews      = 0.2
	weightRevenue    = 0.1
)

type weakCourse struct {
	id    uint
	score float64
}

// safeInverse returns 1/v, or zero when v is zero so an unsold or unseen
// course contributes nothing for that signal rather than blowing up.
func safeInverse(v float64) float64 {
	if v == 0 {
		return 0
	}
	return 1 / v
}

// RankWeakCourses scores every non-deleted course on a composite of rating,
// enrollments, views and recorded revenue and returns the weakest first.
// Used by admin auto-targeting to pick promotion candidates.
func (s *Service) RankWeakCourses(limit int) ([]uint, error) {
	if limit <= 0 {
		limit = 100
	}

	var courses []course.Course
	if err := s.DB.Where("is_deleted = false").Find(&courses).Error; err != nil {
		return nil, dependencyErr(err)
	}

	// Revenue is the sum of discounted sale prices per course.
	type revenueRow struct {
		CourseID uint
		Revenue  float64
	}
	var rows []revenueRow
	err := s.DB.Table("transaction_items").
		Select("course_id, SUM(final_price) AS revenue").
		Where("is_deleted = false").
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, dependencyErr(err)
	}
	revenue := make(map[uint]float64, len(rows))
	for _, r := range rows {
		revenue[r.CourseID] = r.Revenue
	}

	scored := make([]weakCourse, 0, len(courses))
	for _, c := range courses {
		score := (5-c.RatingAvg)*weightRating +
			safeInverse(float64(c.EnrollmentCount))*weightEnrollment +
			safeInverse(float64(c.ViewCount))*weightViews +
			safeInverse(revenue[c.ID])*weightRevenue
		scored = append(scored, weakCourse{id: c.ID, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].id < scored[j].id
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	ids := make([]uint, len(scored))
	for i, c := range scored {
		ids[i] = c.id
	}
	return ids, nil
}
