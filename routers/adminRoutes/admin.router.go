package adminRoutes

import (
	adminControllers "goldloan/controllers/admin"
	"goldloan/middleware"
	"goldloan/models"
	adminValidators "goldloan/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/api/admin")

	adminGroup.Post("/login", adminValidators.Login(), adminControllers.Login)

	manageUsers := middleware.RequireCapability(func(p models.Permissions) bool { return p.CanManageUsers })

	adminGroup.Post("/bank-admin", adminValidators.CreateBankAdmin(), middleware.JWTMiddleware, manageUsers,
		adminControllers.CreateBankAdmin)
	adminGroup.Get("/bank-admins/:bankId", middleware.JWTMiddleware, adminControllers.ListBankAdmins)
	adminGroup.Delete("/bank-admin/:id", middleware.JWTMiddleware, manageUsers, adminControllers.DeleteBankAdmin)

	adminGroup.Post("/branch-admin", adminValidators.CreateBranchAdmin(), middleware.JWTMiddleware, manageUsers,
		adminControllers.CreateBranchAdmin)
	adminGroup.Get("/branch-admins/:bankId", middleware.JWTMiddleware, adminControllers.ListBranchAdmins)
	adminGroup.Get("/all-branch-admins", middleware.JWTMiddleware, adminControllers.ListAllBranchAdmins)
	adminGroup.Delete("/branch-admin/:id", middleware.JWTMiddleware, manageUsers, adminControllers.DeleteBranchAdmin)

	adminGroup.Get("/statistics", middleware.JWTMiddleware, adminControllers.Statistics)

	resetGroup := app.Group("/api/password-reset")
	resetGroup.Post("/forgot-password", adminControllers.ForgotPassword)
	resetGroup.Post("/validate-token", adminControllers.ValidateResetToken)
	resetGroup.Post("/reset-password", adminControllers.ResetPassword)
}
