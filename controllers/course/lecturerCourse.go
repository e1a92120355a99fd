package courseController

import (
	"elearn/config"
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	"elearn/models/course"
	"elearn/utils"

	"github.com/gofiber/fiber/v2"
)

// lecturerFromContext loads the acting lecturer or writes the error response
func lecturerFromContext(c *fiber.Ctx) (*models.User, error) {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false AND role IN ?", userId, []string{"LECTURER", "ADMIN"}).
		First(&user).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Lecturer role required!", nil)
	}
	return &user, nil
}

// CreateCourse creates a draft course owned by the acting lecturer
func CreateCourse(c *fiber.Ctx) error {
	user, err := lecturerFromContext(c)
	if user == nil {
		return err
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		CategoryID  uint    `json:"categoryId"`
		Price       float64 `json:"price"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("id = ? AND is_deleted = false", reqData.CategoryID).First(&models.Category{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	crs := course.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		LecturerID:  user.ID,
		CategoryID:  reqData.CategoryID,
		Price:       reqData.Price,
		Status:      "DRAFT",
	}

	if err := db.Create(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", crs)
}

// UpdateCourse updates a course the lecturer owns
func UpdateCourse(c *fiber.Ctx) error {
	user, err := lecturerFromContext(c)
	if user == nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		CategoryID  *uint    `json:"categoryId"`
		Price       *float64 `json:"price"`
		IsPublished *bool    `json:"isPublished"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var crs course.Course
	query := db.Where("id = ? AND is_deleted = false", id)
	if user.Role == "LECTURER" {
		query = query.Where("lecturer_id = ?", user.ID)
	}
	if err := query.First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if reqData.Title != nil {
		crs.Title = *reqData.Title
	}
	if reqData.Description != nil {
		crs.Description = *reqData.Description
	}
	if reqData.CategoryID != nil {
		if err := db.Where("id = ? AND is_deleted = false", *reqData.CategoryID).First(&models.Category{}).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
		}
		crs.CategoryID = *reqData.CategoryID
	}
	if reqData.Price != nil {
		crs.Price = *reqData.Price
	}
	if reqData.IsPublished != nil {
		crs.IsPublished = *reqData.IsPublished
		if *reqData.IsPublished {
			crs.Status = "ACTIVE"
		}
	}

	if err := db.Save(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", crs)
}

// UploadThumbnail stores a course thumbnail and saves its public URL
func UploadThumbnail(c *fiber.Ctx) error {
	user, err := lecturerFromContext(c)
	if user == nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var crs course.Course
	query := db.Where("id = ? AND is_deleted = false", id)
	if user.Role == "LECTURER" {
		query = query.Where("lecturer_id = ?", user.ID)
	}
	if err := query.First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	file, err := c.FormFile("thumbnail")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Thumbnail file is required!", nil)
	}

	filePath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save thumbnail!", nil)
	}

	crs.ThumbnailURL = utils.GetFileURL(filePath)
	if err := db.Save(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Thumbnail uploaded successfully!", fiber.Map{
		"thumbnail_url": crs.ThumbnailURL,
	})
}

// GetLecturerCourses lists courses owned by the acting lecturer
func GetLecturerCourses(c *fiber.Ctx) error {
	user, err := lecturerFromContext(c)
	if user == nil {
		return err
	}

	var courses []course.Course
	if err := database.Database.Db.
		Where("lecturer_id = ? AND is_deleted = false", user.ID).
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}
