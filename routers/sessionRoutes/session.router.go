package sessionRoutes

import (
	sessionControllers "goldloan/controllers/session"
	sessionValidators "goldloan/validators/session"

	"github.com/gofiber/fiber/v2"
)

func SetupSessionRoutes(app *fiber.App) {
	sessionGroup := app.Group("/api/session")

	sessionGroup.Post("/create", sessionControllers.Create)
	sessionGroup.Post("/:sessionId/appraiser", sessionValidators.SaveAppraiser(), sessionControllers.SaveAppraiser)
	sessionGroup.Post("/:sessionId/customer", sessionControllers.SaveCustomer)
	sessionGroup.Post("/:sessionId/rbi-compliance", sessionControllers.SaveRBICompliance)
	sessionGroup.Post("/:sessionId/purity-test", sessionControllers.SavePurity)
	sessionGroup.Post("/:sessionId/gps", sessionControllers.SaveGPS)
	sessionGroup.Post("/:sessionId/finalize", sessionControllers.Finalize)
	sessionGroup.Get("/:sessionId", sessionControllers.Get)
	sessionGroup.Get("/:sessionId/jewellery-items", sessionControllers.GetJewelleryItems)
	sessionGroup.Delete("/:sessionId", sessionControllers.Delete)

	// Stored appraisal records, addressed by numeric record id
	app.Get("/api/appraisals", sessionControllers.ListAppraisals)
	app.Get("/api/appraisal/:id", sessionControllers.GetAppraisal)
	app.Delete("/api/appraisal/:id", sessionControllers.DeleteAppraisal)
}
