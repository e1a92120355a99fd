package courseController

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetAllCourses lists published courses with optional category filter
func GetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourseList").(*struct {
		Page       *int    `query:"page"`
		Limit      *int    `query:"limit"`
		CategoryID *uint   `query:"categoryId"`
		Search     *string `query:"search"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := 1
	limit := 10
	if reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&course.Course{}).
		Where("is_published = true AND is_deleted = false")

	if reqData.CategoryID != nil {
		db = db.Where("category_id = ?", *reqData.CategoryID)
	}
	if reqData.Search != nil && *reqData.Search != "" {
		db = db.Where("LOWER(title) LIKE ?", "%"+*reqData.Search+"%")
	}

	var total int64
	db.Count(&total)

	var courses []course.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails returns one published course and bumps its view counter
func GetCourseDetails(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var crs course.Course
	if err := db.Where("id = ? AND is_published = true AND is_deleted = false", id).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Popularity signal for weak-course ranking
	db.Model(&course.Course{}).Where("id = ?", crs.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	crs.ViewCount++

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", crs)
}

// GetUserEnrollments lists the authenticated user's enrollments
func GetUserEnrollments(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []course.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = false", userId).
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
	})
}
