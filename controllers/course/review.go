package courseController

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	"elearn/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateReview records a rating for an enrolled course. A second review by
// the same user replaces the first. The course's rating aggregates feed the
// weak-course ranking, so they are recomputed in the same transaction.
func CreateReview(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseId, err := c.ParamsInt("id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	reqData, ok := c.Locals("validatedReview").(*struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var crs course.Course
	if err := db.Where("id = ? AND is_published = true AND is_deleted = false", courseId).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrolled int64
	db.Model(&course.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = false", userId, crs.ID).
		Count(&enrolled)
	if enrolled == 0 {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only enrolled users can review a course!", nil)
	}

	var review models.Review
	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND course_id = ? AND is_deleted = false", userId, crs.ID).First(&review)
		if res.Error == nil {
			review.Rating = reqData.Rating
			review.Comment = reqData.Comment
			if err := tx.Save(&review).Error; err != nil {
				return err
			}
		} else {
			review = models.Review{UserID: userId, CourseID: crs.ID, Rating: reqData.Rating, Comment: reqData.Comment}
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
		}

		// Recompute the aggregates from the surviving reviews
		type agg struct {
			Avg   float64
			Count int64
		}
		var a agg
		err := tx.Model(&models.Review{}).
			Select("AVG(rating) AS avg, COUNT(*) AS count").
			Where("course_id = ? AND is_deleted = false", crs.ID).
			Scan(&a).Error
		if err != nil {
			return err
		}
		return tx.Model(&course.Course{}).Where("id = ?", crs.ID).
			Updates(map[string]interface{}{"rating_avg": a.Avg, "rating_count": a.Count}).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review saved successfully!", review)
}

// GetCourseReviews lists a course's reviews, newest first
func GetCourseReviews(c *fiber.Ctx) error {
	courseId, err := c.ParamsInt("id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	db := database.Database.Db.Model(&models.Review{}).
		Where("course_id = ? AND is_deleted = false", courseId)

	var total int64
	db.Count(&total)

	var reviews []models.Review
	if err := db.Offset((page - 1) * limit).Limit(limit).Order("created_at desc").Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully!", fiber.Map{
		"reviews": reviews,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
