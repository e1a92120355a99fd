package categoryValidator

import (
	"elearn/middleware"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name"`
			Slug     string `json:"slug"`
			ParentID *uint  `json:"parentId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}

		if strings.TrimSpace(reqData.Slug) == "" {
			errors["slug"] = "Slug is required!"
		} else if !slugRegex.MatchString(reqData.Slug) {
			errors["slug"] = "Slug must be lowercase letters, digits and dashes!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}

func UpdateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     *string `json:"name"`
			IsActive *bool   `json:"isActive"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Name != nil && strings.TrimSpace(*reqData.Name) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"name": "Name must not be empty!",
			})
		}

		c.Locals("validatedCategoryUpdate", reqData)
		return c.Next()
	}
}
