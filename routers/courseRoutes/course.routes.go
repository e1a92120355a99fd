package courseRoutes

import (
	controllers "elearn/controllers/course"
	"elearn/middleware"
	validators "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up catalog browsing and lecturer course management
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog (published courses)
	courseGroup.Get("/list", validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:id", controllers.GetCourseDetails)
	courseGroup.Get("/:id/reviews", controllers.GetCourseReviews)
	courseGroup.Post("/:id/review", middleware.JWTMiddleware, validators.Review(), controllers.CreateReview)

	// Lecturer course management
	lecturerGroup := app.Group("/lecturer/course", middleware.JWTMiddleware, middleware.RequireRoles("LECTURER", "ADMIN"))
	lecturerGroup.Get("/list", controllers.GetLecturerCourses)
	lecturerGroup.Post("/", validators.CreateCourse(), controllers.CreateCourse)
	lecturerGroup.Put("/:id", validators.UpdateCourse(), controllers.UpdateCourse)
	lecturerGroup.Post("/:id/thumbnail", controllers.UploadThumbnail)
}
