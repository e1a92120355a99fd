package checkoutRoutes

import (
	controllers "elearn/controllers/checkout"
	"elearn/middleware"
	validators "elearn/validators/checkout"

	"github.com/gofiber/fiber/v2"
)

// SetupCheckoutRoutes sets up purchase and history routes
func SetupCheckoutRoutes(app *fiber.App) {
	checkoutGroup := app.Group("/checkout", middleware.JWTMiddleware)

	checkoutGroup.Post("/purchase", validators.Purchase(), controllers.PurchaseCourses)
	checkoutGroup.Get("/history", controllers.GetPurchaseHistory)
}
