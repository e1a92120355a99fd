package authRoutes

import (
	controllers "elearn/controllers/auth"
	validators "elearn/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up signup, login and OTP verification
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", validators.Signup(), controllers.Signup)
	authGroup.Post("/login", validators.Login(), controllers.Login)
	authGroup.Post("/verify-otp", validators.VerifyOTP(), controllers.VerifyOTP)
}
