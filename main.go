package main

import (
	"cyberacademy/config"
	"cyberacademy/database"
	adminRoutes "cyberacademy/routers/adminRoutes"
	authRoutes "cyberacademy/routers/authRoutes"
	courseRoutes "cyberacademy/routers/courseRoutes"
	escudosRoutes "cyberacademy/routers/escudosRoutes"
	instructorRoutes "cyberacademy/routers/instructorRoutes"
	notificationRoutes "cyberacademy/routers/notificationRoutes"
	purchaseRoutes "cyberacademy/routers/purchaseRoutes"
	"cyberacademy/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	utils.InitPaymentGateway()
	utils.InitializeScheduler()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files (course thumbnails) from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	purchaseRoutes.SetupPurchaseRoutes(app)
	escudosRoutes.SetupEscudosRoutes(app)
	instructorRoutes.SetupInstructorRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
