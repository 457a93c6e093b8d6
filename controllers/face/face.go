package faceController

import (
	"goldloan/database"
	"goldloan/models"
	"goldloan/utils"
	"io"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// imagePayload reads the image from either a multipart file part or a plain
// form value. Kiosk clients send multipart, older ones form-encode the
// base64 string.
func imagePayload(c *fiber.Ctx) string {
	if file, err := c.FormFile("image"); err == nil {
		src, err := file.Open()
		if err != nil {
			return ""
		}
		defer src.Close()
		data, err := io.ReadAll(src)
		if err != nil {
			return ""
		}
		return string(data)
	}
	return c.FormValue("image")
}

// Recognize resolves a captured face image to a registered appraiser.
//
// The response contract is fixed: a match yields {recognized:true, appraiser},
// no match (including sidecar offline) yields {recognized:false}, and input
// rejections yield {error, message} so the client can route the user back to
// capture instead of registering a duplicate.
func Recognize(c *fiber.Ctx) error {
	image := imagePayload(c)
	if image == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "missing_image",
			"message": "Image payload is required",
		})
	}

	result := utils.RecognizeFace(utils.NormalizeImage(image))

	if result.Error != "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   result.Error,
			"message": result.Message,
		})
	}

	if !result.Recognized || result.Appraiser == nil {
		resp := fiber.Map{
			"recognized": false,
			"message":    result.Message,
		}
		if result.ServiceStatus != "" {
			resp["service_status"] = result.ServiceStatus
		}
		return c.JSON(resp)
	}

	// Enrich the sidecar match with the directory record
	profile := fiber.Map{
		"appraiser_id":         result.Appraiser.AppraiserID,
		"name":                 result.Appraiser.Name,
		"image_data":           result.Appraiser.ImageData,
		"similarity":           result.Appraiser.Similarity,
		"email":                "",
		"phone":                "",
		"bank":                 "",
		"branch":               "",
		"appraisals_completed": 0,
	}

	var appraiser models.Appraiser
	if err := database.Database.Db.Where("appraiser_code = ?", result.Appraiser.AppraiserID).
		First(&appraiser).Error; err == nil {
		profile["email"] = appraiser.Email
		profile["phone"] = appraiser.Phone
		profile["bank"] = appraiser.Bank
		profile["branch"] = appraiser.Branch
		profile["appraisals_completed"] = appraiser.AppraisalsCompleted
		if appraiser.ImageData != "" {
			profile["image_data"] = appraiser.ImageData
		}
	}

	return c.JSON(fiber.Map{
		"recognized": true,
		"appraiser":  profile,
	})
}

// Register registers a face with the recognition sidecar and upserts the
// directory record
func Register(c *fiber.Ctx) error {
	name := c.FormValue("name")
	appraiserID := c.FormValue("appraiser_id")
	image := imagePayload(c)

	if name == "" || appraiserID == "" || image == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"message": "name, appraiser_id and image are required",
		})
	}

	result, err := utils.RegisterFace(name, appraiserID, utils.NormalizeImage(image))
	if err != nil {
		log.Printf("Face registration failed for %s: %v", appraiserID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"message": "Face registration service is currently unavailable",
		})
	}
	if !result.Success {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(result)
	}

	upsertAppraiser(models.Appraiser{
		Name:          name,
		AppraiserCode: appraiserID,
		Email:         c.FormValue("email"),
		Phone:         c.FormValue("phone"),
		Bank:          c.FormValue("bank"),
		Branch:        c.FormValue("branch"),
		ImageData:     image,
		RegisteredAt:  time.Now().Format(time.RFC3339),
	})

	return c.JSON(result)
}

// Status reports recognition sidecar availability
func Status(c *fiber.Ctx) error {
	status := utils.RecognitionStatus()
	return c.JSON(fiber.Map{
		"available": status.Available,
		"threshold": status.Threshold,
		"service":   "FacialRecognitionService",
	})
}

// ListAppraisers returns the registered appraiser directory
func ListAppraisers(c *fiber.Ctx) error {
	var appraisers []models.Appraiser
	if err := database.Database.Db.Order("name").Find(&appraisers).Error; err != nil {
		log.Printf("Error fetching appraisers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"appraisers": nil,
			"message":    "Failed to fetch appraisers",
		})
	}

	return c.JSON(fiber.Map{"appraisers": appraisers})
}
