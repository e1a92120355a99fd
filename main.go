package main

import (
	"elearn/config"
	"elearn/database"
	"elearn/middleware"
	authRoutes "elearn/routers/authRoutes"
	categoryRoutes "elearn/routers/categoryRoutes"
	checkoutRoutes "elearn/routers/checkoutRoutes"
	courseRoutes "elearn/routers/courseRoutes"
	discountRoutes "elearn/routers/discountRoutes"
	userRoutes "elearn/routers/userRoutes"
	"elearn/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Platform settings served through a TTL cache
	settings := config.NewSettingsCache(database.Database.Db)
	app.Use(middleware.MaintenanceGate(settings))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	categoryRoutes.SetupCategoryRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	discountRoutes.SetupDiscountRoutes(app)
	checkoutRoutes.SetupCheckoutRoutes(app)

	utils.StartDiscountScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
