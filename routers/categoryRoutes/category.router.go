package categoryRoutes

import (
	controllers "elearn/controllers/category"
	"elearn/middleware"
	validators "elearn/validators/category"

	"github.com/gofiber/fiber/v2"
)

// SetupCategoryRoutes sets up public listing and admin category management
func SetupCategoryRoutes(app *fiber.App) {
	categoryGroup := app.Group("/category")

	categoryGroup.Get("/list", controllers.GetAllCategories)

	adminGroup := app.Group("/admin/category", middleware.JWTMiddleware, middleware.RequireRoles("ADMIN"))
	adminGroup.Post("/", validators.CreateCategory(), controllers.CreateCategory)
	adminGroup.Put("/:id", validators.UpdateCategory(), controllers.UpdateCategory)
}
