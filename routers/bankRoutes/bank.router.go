package bankRoutes

import (
	bankControllers "goldloan/controllers/bank"
	"goldloan/middleware"
	"goldloan/models"
	bankValidators "goldloan/validators/bank"

	"github.com/gofiber/fiber/v2"
)

func SetupBankRoutes(app *fiber.App) {
	bankGroup := app.Group("/api/bank")

	bankGroup.Get("/", bankControllers.ListBanks)
	bankGroup.Get("/:id", bankControllers.GetBank)
	bankGroup.Post("/", bankValidators.CreateBank(), middleware.JWTMiddleware,
		middleware.RequireCapability(func(p models.Permissions) bool { return p.CanManageSettings }),
		bankControllers.CreateBank)
	bankGroup.Put("/:id", middleware.JWTMiddleware,
		middleware.RequireCapability(func(p models.Permissions) bool { return p.CanManageSettings }),
		bankControllers.UpdateBank)
	bankGroup.Delete("/:id", middleware.JWTMiddleware,
		middleware.RequireCapability(func(p models.Permissions) bool { return p.CanManageSettings }),
		bankControllers.DeleteBank)
}
