package categoryController

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"

	"github.com/gofiber/fiber/v2"
)

// GetAllCategories lists active categories for browsing
func GetAllCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.Database.Db.
		Where("is_active = true AND is_deleted = false").
		Order("name asc").
		Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", fiber.Map{
		"categories": categories,
	})
}

// CreateCategory adds a category (admin only, gated by router)
func CreateCategory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCategory").(*struct {
		Name     string `json:"name"`
		Slug     string `json:"slug"`
		ParentID *uint  `json:"parentId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("slug = ? AND is_deleted = false", reqData.Slug).First(&models.Category{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category slug already exists!", nil)
	}

	if reqData.ParentID != nil {
		if err := db.Where("id = ? AND is_deleted = false", *reqData.ParentID).First(&models.Category{}).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent category not found!", nil)
		}
	}

	category := models.Category{
		Name:     reqData.Name,
		Slug:     reqData.Slug,
		ParentID: reqData.ParentID,
		IsActive: true,
	}

	if err := db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

// UpdateCategory renames or re-parents a category (admin only)
func UpdateCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
	}

	reqData, ok := c.Locals("validatedCategoryUpdate").(*struct {
		Name     *string `json:"name"`
		IsActive *bool   `json:"isActive"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var category models.Category
	if err := db.Where("id = ? AND is_deleted = false", id).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	if reqData.Name != nil {
		category.Name = *reqData.Name
	}
	if reqData.IsActive != nil {
		category.IsActive = *reqData.IsActive
	}

	if err := db.Save(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully!", category)
}
