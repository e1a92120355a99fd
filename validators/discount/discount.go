package discountValidator

import (
	"elearn/middleware"
	"elearn/models/discount"
	discountSvc "elearn/services/discountService"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// discountBody is the create/edit request shape
type discountBody struct {
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Code            string     `json:"code"`
	Hidden          bool       `json:"hidden"`
	ScopeKind       string     `json:"scopeKind"`
	AmountKind      string     `json:"amountKind"`
	PercentValue    *int       `json:"percentValue"`
	FixedValue      *float64   `json:"fixedValue"`
	UsageLimit      *int       `json:"usageLimit"`
	PerUserLimit    *int       `json:"perUserLimit"`
	StartAt         *time.Time `json:"startAt"`
	EndAt           *time.Time `json:"endAt"`
	AutoTargetWeak  bool       `json:"autoTargetWeak"`
	CourseTargets   []uint     `json:"courseTargets"`
	CategoryTargets []uint     `json:"categoryTargets"`
}

// DiscountBody validates the create/edit payload and stashes a service Spec
func DiscountBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(discountBody)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		} else if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}

		scope := strings.ToUpper(strings.TrimSpace(reqData.ScopeKind))
		switch scope {
		case discount.ScopeGlobal, discount.ScopeCourse, discount.ScopeCategory:
		case "":
			errors["scopeKind"] = "Scope kind is required!"
		default:
			errors["scopeKind"] = "Scope kind must be GLOBAL, COURSE or CATEGORY!"
		}

		kind := strings.ToUpper(strings.TrimSpace(reqData.AmountKind))
		switch kind {
		case discount.AmountPercent:
			if reqData.PercentValue == nil {
				errors["percentValue"] = "Percent value is required for percent discounts!"
			}
		case discount.AmountFixed:
			if reqData.FixedValue == nil {
				errors["fixedValue"] = "Fixed value is required for fixed discounts!"
			}
		case "":
			errors["amountKind"] = "Amount kind is required!"
		default:
			errors["amountKind"] = "Amount kind must be PERCENT or FIXED!"
		}

		if reqData.StartAt == nil {
			errors["startAt"] = "Start date is required!"
		}
		if reqData.EndAt == nil {
			errors["endAt"] = "End date is required!"
		}
		if reqData.StartAt != nil && reqData.EndAt != nil && !reqData.StartAt.Before(*reqData.EndAt) {
			errors["endAt"] = "End date must be after start date!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		spec := &discountSvc.Spec{
			Name:            strings.TrimSpace(reqData.Name),
			Description:     reqData.Description,
			Code:            reqData.Code,
			Hidden:          reqData.Hidden,
			ScopeKind:       scope,
			AmountKind:      kind,
			PercentValue:    reqData.PercentValue,
			FixedValue:      reqData.FixedValue,
			UsageLimit:      reqData.UsageLimit,
			PerUserLimit:    reqData.PerUserLimit,
			StartAt:         *reqData.StartAt,
			EndAt:           *reqData.EndAt,
			AutoTargetWeak:  reqData.AutoTargetWeak,
			CourseTargets:   reqData.CourseTargets,
			CategoryTargets: reqData.CategoryTargets,
		}

		c.Locals("validatedDiscount", spec)
		return c.Next()
	}
}

// DiscountList validates the list query parameters
func DiscountList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Search     string `query:"search"`
			ScopeKind  string `query:"scopeKind"`
			AmountKind string `query:"amountKind"`
			Active     *bool  `query:"active"`
			Validity   string `query:"validity"`
			CreatedOn  string `query:"createdOn"`
			SortBy     string `query:"sortBy"`
			SortDir    string `query:"sortDir"`
			Page       int    `query:"page"`
			Limit      int    `query:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		validity := strings.ToLower(strings.TrimSpace(reqData.Validity))
		switch validity {
		case "", discountSvc.ValidityExpired, discountSvc.ValidityRunning, discountSvc.ValidityUpcoming:
		default:
			errors["validity"] = "Validity must be expired, running or upcoming!"
		}

		var createdOn *time.Time
		if reqData.CreatedOn != "" {
			parsed, err := time.Parse("2006-01-02", reqData.CreatedOn)
			if err != nil {
				errors["createdOn"] = "CreatedOn must be a YYYY-MM-DD date!"
			} else {
				createdOn = &parsed
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		filter := &discountSvc.ListFilter{
			Search:     reqData.Search,
			ScopeKind:  strings.ToUpper(strings.TrimSpace(reqData.ScopeKind)),
			AmountKind: strings.ToUpper(strings.TrimSpace(reqData.AmountKind)),
			Active:     reqData.Active,
			Validity:   validity,
			CreatedOn:  createdOn,
			SortBy:     reqData.SortBy,
			SortDir:    reqData.SortDir,
			Page:       reqData.Page,
			Limit:      reqData.Limit,
		}

		c.Locals("validatedDiscountList", filter)
		return c.Next()
	}
}

// PreviewDiscount validates the preview payload
func PreviewDiscount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseIDs []uint `json:"courseIds"`
			Code      string `json:"code"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.CourseIDs) == 0 {
			errors["courseIds"] = "At least one course is required!"
		}
		if strings.TrimSpace(reqData.Code) == "" {
			errors["code"] = "Discount code is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPreview", reqData)
		return c.Next()
	}
}

// AvailableDiscounts validates the availability payload
func AvailableDiscounts() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseIDs []uint `json:"courseIds"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.CourseIDs) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"courseIds": "At least one course is required!",
			})
		}

		c.Locals("validatedAvailable", reqData)
		return c.Next()
	}
}
