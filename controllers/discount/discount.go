package discountController

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	discountSvc "elearn/services/discountService"

	"github.com/gofiber/fiber/v2"
)

func svc() *discountSvc.Service {
	return discountSvc.New(database.Database.Db)
}

// serviceError maps the engine's typed errors onto HTTP responses
func serviceError(c *fiber.Ctx, err error) error {
	code := discountSvc.ErrCode(err)
	detail := discountSvc.ErrDetail(err)

	status := fiber.StatusInternalServerError
	switch code {
	case discountSvc.CodeValidation:
		status = fiber.StatusBadRequest
	case discountSvc.CodeNotFound:
		status = fiber.StatusNotFound
	case discountSvc.CodeForbidden:
		status = fiber.StatusForbidden
	case discountSvc.CodeConflict:
		status = fiber.StatusConflict
	}

	var data interface{}
	if code != "" {
		data = fiber.Map{"code": code, "detail": detail}
	}
	return middleware.JsonResponse(c, status, false, err.Error(), data)
}

// actingUser loads the authenticated user row; discounts are authored under
// the persisted role, never the token claim.
func actingUser(c *fiber.Ctx) (*models.User, error) {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}
	return &user, nil
}

// CreateDiscount creates a discount under the acting user's role
func CreateDiscount(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if user == nil {
		return err
	}

	spec, ok := c.Locals("validatedDiscount").(*discountSvc.Spec)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	d, err := svc().Create(*spec, user.ID, user.Role)
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Discount created successfully!", d)
}

// ListDiscounts returns the catalog visible to the acting role with filters
func ListDiscounts(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if user == nil {
		return err
	}

	filter, ok := c.Locals("validatedDiscountList").(*discountSvc.ListFilter)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := svc().List(*filter, user.ID, user.Role)
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discounts fetched successfully!", fiber.Map{
		"discounts": result.Discounts,
		"pagination": fiber.Map{
			"total": result.Total,
			"page":  result.Page,
			"limit": result.Limit,
		},
	})
}

// GetDiscount returns one discount with its targets
func GetDiscount(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if user == nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid discount id!", nil)
	}

	d, targets, err := svc().Get(uint(id), user.ID, user.Role)
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discount fetched successfully!", fiber.Map{
		"discount": d,
		"targets":  targets,
	})
}

// PreviewDiscount computes the effect of a code on a cart without committing
func PreviewDiscount(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if user == nil {
		return err
	}

	reqData, ok := c.Locals("validatedPreview").(*struct {
		CourseIDs []uint `json:"courseIds"`
		Code      string `json:"code"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	preview, err := svc().Preview(reqData.CourseIDs, reqData.Code, user.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discount preview computed!", preview)
}

// AvailableDiscounts lists eligible discounts for a cart, best saving first
func AvailableDiscounts(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if user == nil {
		return err
	}

	reqData, ok := c.Locals("validatedAvailable").(*struct {
		CourseIDs []uint `json:"courseIds"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	available, err := svc().FindAvailable(reqData.CourseIDs, user.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Available discounts fetched!", fiber.Map{
		"discounts": available,
	})
}

// EditDiscount applies a full update, replacing targets wholesale
func EditDiscount(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if user == nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid discount id!", nil)
	}

	spec, ok := c.Locals("validatedDiscount").(*discountSvc.Spec)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	d, err := svc().Edit(uint(id), *spec, user.ID, user.Role)
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discount updated successfully!", d)
}

// ToggleDiscount flips or sets the active flag
func ToggleDiscount(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if user == nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid discount id!", nil)
	}

	reqData := new(struct {
		Active *bool `json:"active"`
	})
	// Body is optional: no body means flip
	_ = c.BodyParser(reqData)

	d, err := svc().Toggle(uint(id), user.ID, user.Role, reqData.Active)
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discount toggled successfully!", d)
}

// DeleteDiscount removes a never-used discount
func DeleteDiscount(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if user == nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid discount id!", nil)
	}

	if err := svc().Delete(uint(id), user.ID, user.Role); err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discount deleted successfully!", nil)
}
