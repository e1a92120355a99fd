package userValidator

import (
	"elearn/middleware"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var mobileRegex = regexp.MustCompile(`^[0-9]{10,15}$`)

func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     *string `json:"name"`
			Mobile   *string `json:"mobile"`
			Bio      *string `json:"bio"`
			Headline *string `json:"headline"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name != nil && strings.TrimSpace(*reqData.Name) == "" {
			errors["name"] = "Name must not be empty!"
		}
		if reqData.Mobile != nil && !mobileRegex.MatchString(*reqData.Mobile) {
			errors["mobile"] = "Mobile number is not valid!"
		}
		if reqData.Headline != nil && len(*reqData.Headline) > 120 {
			errors["headline"] = "Headline must be at most 120 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}
