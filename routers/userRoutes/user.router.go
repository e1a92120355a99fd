package userRoutes

import (
	courseControllers "elearn/controllers/course"
	controllers "elearn/controllers/userControllers"
	"elearn/middleware"
	validators "elearn/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up profile and enrollment routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, controllers.GetProfile)
	userGroup.Put("/profile", middleware.JWTMiddleware, validators.UpdateProfile(), controllers.UpdateProfile)
	userGroup.Post("/profile/image", middleware.JWTMiddleware, controllers.UploadProfileImage)

	userGroup.Get("/enrollments", middleware.JWTMiddleware, courseControllers.GetUserEnrollments)
}
