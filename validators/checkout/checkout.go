package checkoutValidator

import (
	"elearn/middleware"

	"github.com/gofiber/fiber/v2"
)

func Purchase() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseIDs    []uint `json:"courseIds"`
			DiscountCode string `json:"discountCode"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.CourseIDs) == 0 {
			errors["courseIds"] = "At least one course is required!"
		}
		seen := make(map[uint]bool)
		for _, id := range reqData.CourseIDs {
			if seen[id] {
				errors["courseIds"] = "Duplicate course in cart!"
				break
			}
			seen[id] = true
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPurchase", reqData)
		return c.Next()
	}
}
