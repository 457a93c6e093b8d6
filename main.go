package main

import (
	"goldloan/config"
	"goldloan/database"
	adminRoutes "goldloan/routers/adminRoutes"
	bankRoutes "goldloan/routers/bankRoutes"
	branchRoutes "goldloan/routers/branchRoutes"
	faceRoutes "goldloan/routers/faceRoutes"
	sessionRoutes "goldloan/routers/sessionRoutes"
	tenantRoutes "goldloan/routers/tenantRoutes"
	"goldloan/utils"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // capture images are base64 payloads
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	bankRoutes.SetupBankRoutes(app)
	branchRoutes.SetupBranchRoutes(app)
	tenantRoutes.SetupTenantRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	faceRoutes.SetupFaceRoutes(app)
	sessionRoutes.SetupSessionRoutes(app)

	utils.StartSessionJanitor()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
