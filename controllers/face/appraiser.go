package faceController

import (
	"goldloan/database"
	"goldloan/middleware"
	"goldloan/models"
	"goldloan/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// upsertAppraiser writes the directory record for an appraiser, replacing an
// existing record with the same code
func upsertAppraiser(appraiser models.Appraiser) {
	db := database.Database.Db

	var existing models.Appraiser
	if err := db.Where("appraiser_code = ?", appraiser.AppraiserCode).First(&existing).Error; err == nil {
		appraiser.ID = existing.ID
		appraiser.AppraisalsCompleted = existing.AppraisalsCompleted
		if err := db.Save(&appraiser).Error; err != nil {
			log.Printf("Error updating appraiser %s: %v", appraiser.AppraiserCode, err)
		}
		return
	}

	if err := db.Create(&appraiser).Error; err != nil {
		log.Printf("Error creating appraiser %s: %v", appraiser.AppraiserCode, err)
	}
}

// RegisterAppraiser is the new-appraiser registration handoff: it stores the
// directory record and enrolls the face with the recognition sidecar. Sidecar
// unavailability does not fail the registration; the face can be re-enrolled
// later.
func RegisterAppraiser(c *fiber.Ctx) error {
	reqData := new(struct {
		Name      string `json:"name"`
		ID        string `json:"id"`
		Image     string `json:"image"`
		Timestamp string `json:"timestamp"`
		Bank      string `json:"bank"`
		Branch    string `json:"branch"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Name == "" || reqData.ID == "" || reqData.Image == "" {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "name, id and image are required!", nil)
	}

	upsertAppraiser(models.Appraiser{
		Name:          reqData.Name,
		AppraiserCode: reqData.ID,
		Email:         reqData.Email,
		Phone:         reqData.Phone,
		Bank:          reqData.Bank,
		Branch:        reqData.Branch,
		ImageData:     reqData.Image,
		RegisteredAt:  reqData.Timestamp,
	})

	if result, err := utils.RegisterFace(reqData.Name, reqData.ID, utils.NormalizeImage(reqData.Image)); err != nil {
		log.Printf("Face enrollment deferred for %s: sidecar unreachable: %v", reqData.ID, err)
	} else if !result.Success {
		log.Printf("Face enrollment deferred for %s: %s", reqData.ID, result.Message)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Appraiser registered successfully.", fiber.Map{
		"appraiser_id": reqData.ID,
		"name":         reqData.Name,
	})
}
