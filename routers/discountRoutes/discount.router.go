package discountRoutes

import (
	controllers "elearn/controllers/discount"
	"elearn/middleware"
	validators "elearn/validators/discount"

	"github.com/gofiber/fiber/v2"
)

// SetupDiscountRoutes sets up the discount engine endpoints. Authoring and
// listing are for admins and lecturers; preview and availability serve any
// authenticated user building a cart.
func SetupDiscountRoutes(app *fiber.App) {
	discountGroup := app.Group("/discount", middleware.JWTMiddleware)

	// Cart-facing operations
	discountGroup.Post("/preview", validators.PreviewDiscount(), controllers.PreviewDiscount)
	discountGroup.Post("/available", validators.AvailableDiscounts(), controllers.AvailableDiscounts)

	// Authoring, role-gated
	manageGroup := app.Group("/manage/discount", middleware.JWTMiddleware, middleware.RequireRoles("ADMIN", "LECTURER"))
	manageGroup.Post("/", validators.DiscountBody(), controllers.CreateDiscount)
	manageGroup.Get("/list", validators.DiscountList(), controllers.ListDiscounts)
	manageGroup.Get("/:id", controllers.GetDiscount)
	manageGroup.Put("/:id", validators.DiscountBody(), controllers.EditDiscount)
	manageGroup.Patch("/:id/toggle", controllers.ToggleDiscount)
	manageGroup.Delete("/:id", controllers.DeleteDiscount)
}
