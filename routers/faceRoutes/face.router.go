package faceRoutes

import (
	faceControllers "goldloan/controllers/face"

	"github.com/gofiber/fiber/v2"
)

func SetupFaceRoutes(app *fiber.App) {
	faceGroup := app.Group("/api/face")

	faceGroup.Post("/recognize", faceControllers.Recognize)
	faceGroup.Post("/register", faceControllers.Register)
	faceGroup.Get("/status", faceControllers.Status)
	faceGroup.Get("/appraisers", faceControllers.ListAppraisers)

	// New-appraiser registration handoff
	app.Post("/api/appraiser", faceControllers.RegisterAppraiser)
}
