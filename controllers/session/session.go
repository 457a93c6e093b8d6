package sessionController

import (
	"encoding/json"
	"fmt"
	"goldloan/database"
	"goldloan/models"
	"goldloan/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func sessionResponse(c *fiber.Ctx, sessionID, message string) error {
	return c.JSON(fiber.Map{
		"session_id": sessionID,
		"success":    true,
		"message":    message,
	})
}

func sessionNotFound(c *fiber.Ctx, sessionID string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": fmt.Sprintf("Session %s not found", sessionID),
	})
}

func loadSession(c *fiber.Ctx) (*models.AppraisalSession, error) {
	sessionID := c.Params("sessionId")

	var session models.AppraisalSession
	err := database.Database.Db.Where("session_id = ?", sessionID).First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, sessionNotFound(c, sessionID)
		}
		log.Printf("Error loading session %s: %v", sessionID, err)
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load session",
		})
	}
	return &session, nil
}

// Create opens a new appraisal session and returns its opaque id. The id is
// the key every later stage writes under.
func Create(c *fiber.Ctx) error {
	session := models.AppraisalSession{
		SessionID: utils.NewSessionID(),
		Status:    models.SessionStatusInProgress,
	}

	if err := database.Database.Db.Create(&session).Error; err != nil {
		log.Printf("Error creating session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create session",
		})
	}

	return sessionResponse(c, session.SessionID, "Session created successfully")
}

// SaveAppraiser binds appraiser identity and capture data to a session
func SaveAppraiser(c *fiber.Ctx) error {
	reqData := new(struct {
		Name      string `json:"name"`
		ID        string `json:"id"`
		Image     string `json:"image"`
		Timestamp string `json:"timestamp"`
		Photo     string `json:"photo"`
		Bank      string `json:"bank"`
		Branch    string `json:"branch"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	session, err := loadSession(c)
	if session == nil {
		return err
	}

	payload, err := json.Marshal(reqData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to encode appraiser data",
		})
	}

	session.AppraiserData = payload
	if err := database.Database.Db.Save(session).Error; err != nil {
		log.Printf("Error saving appraiser data for session %s: %v", session.SessionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to save appraiser data",
		})
	}

	return sessionResponse(c, session.SessionID, "Appraiser data saved")
}

// SaveCustomer stores customer front/side capture images on a session
func SaveCustomer(c *fiber.Ctx) error {
	reqData := new(struct {
		FrontImage string `json:"front_image"`
		SideImage  string `json:"side_image"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	session, err := loadSession(c)
	if session == nil {
		return err
	}

	session.CustomerFrontImage = reqData.FrontImage
	if reqData.SideImage != "" {
		session.CustomerSideImage = reqData.SideImage
	}

	if err := database.Database.Db.Save(session).Error; err != nil {
		log.Printf("Error saving customer images for session %s: %v", session.SessionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to save customer images",
		})
	}

	return sessionResponse(c, session.SessionID, "Customer images saved")
}

type jewelleryItem struct {
	ItemNumber     int                    `json:"itemNumber"`
	Image          string                 `json:"image"`
	Description    string                 `json:"description,omitempty"`
	Classification map[string]interface{} `json:"classification,omitempty"`
}

type overallImage struct {
	ID        int    `json:"id"`
	Image     string `json:"image"`
	Timestamp string `json:"timestamp"`
}

// SaveRBICompliance stores the RBI photo-audit capture set and derives the
// per-item jewellery list used by purity testing. When individual item
// captures are missing, items are distributed across the overall images.
func SaveRBICompliance(c *fiber.Ctx) error {
	reqData := new(struct {
		OverallImages []overallImage  `json:"overall_images"`
		CapturedItems []jewelleryItem `json:"captured_items"`
		TotalItems    int             `json:"total_items"`
		CaptureMethod string          `json:"capture_method"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	session, err := loadSession(c)
	if session == nil {
		return err
	}

	items := []jewelleryItem{}
	if len(reqData.CapturedItems) > 0 && len(reqData.CapturedItems) == reqData.TotalItems {
		items = reqData.CapturedItems
	} else if len(reqData.OverallImages) > 0 {
		for i := 0; i < reqData.TotalItems; i++ {
			src := reqData.OverallImages[i%len(reqData.OverallImages)]
			items = append(items, jewelleryItem{
				ItemNumber:  i + 1,
				Image:       src.Image,
				Description: fmt.Sprintf("Item %d (from overall image %d)", i+1, (i%len(reqData.OverallImages))+1),
			})
		}
	}

	compliance, err := json.Marshal(reqData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to encode compliance data",
		})
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to encode jewellery items",
		})
	}

	session.RBICompliance = compliance
	session.JewelleryItems = itemsJSON
	session.TotalItems = reqData.TotalItems

	if err := database.Database.Db.Save(session).Error; err != nil {
		log.Printf("Error saving RBI compliance for session %s: %v", session.SessionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to save RBI compliance",
		})
	}

	return sessionResponse(c, session.SessionID, fmt.Sprintf("RBI compliance saved with %d items", reqData.TotalItems))
}

// SavePurity stores per-item purity test results and advances the session
// status
func SavePurity(c *fiber.Ctx) error {
	reqData := new(struct {
		Items []struct {
			ItemNumber       int    `json:"itemNumber"`
			RubbingCompleted bool   `json:"rubbingCompleted"`
			AcidCompleted    bool   `json:"acidCompleted"`
			Timestamp        string `json:"timestamp"`
		} `json:"items"`
		TotalItems  int    `json:"total_items"`
		CompletedAt string `json:"completed_at"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	session, err := loadSession(c)
	if session == nil {
		return err
	}

	payload, err := json.Marshal(reqData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to encode purity results",
		})
	}

	session.PurityResults = payload
	session.Status = models.SessionStatusPurityCompleted

	if err := database.Database.Db.Save(session).Error; err != nil {
		log.Printf("Error saving purity results for session %s: %v", session.SessionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to save purity results",
		})
	}

	return sessionResponse(c, session.SessionID, "Purity test results saved")
}

// SaveGPS stores location data on a session
func SaveGPS(c *fiber.Ctx) error {
	session, err := loadSession(c)
	if session == nil {
		return err
	}

	body := c.Body()
	if !json.Valid(body) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	session.GPSData = append([]byte(nil), body...)
	if err := database.Database.Db.Save(session).Error; err != nil {
		log.Printf("Error saving GPS data for session %s: %v", session.SessionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to save GPS data",
		})
	}

	return sessionResponse(c, session.SessionID, "GPS data saved")
}

// Finalize marks a session completed
func Finalize(c *fiber.Ctx) error {
	session, err := loadSession(c)
	if session == nil {
		return err
	}

	session.Status = models.SessionStatusCompleted
	if err := database.Database.Db.Save(session).Error; err != nil {
		log.Printf("Error finalizing session %s: %v", session.SessionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to finalize session",
		})
	}

	return sessionResponse(c, session.SessionID, "Session finalized successfully")
}

// Get returns all session data
func Get(c *fiber.Ctx) error {
	session, err := loadSession(c)
	if session == nil {
		return err
	}
	return c.JSON(session)
}

// GetJewelleryItems returns the per-item capture list for purity testing
func GetJewelleryItems(c *fiber.Ctx) error {
	session, err := loadSession(c)
	if session == nil {
		return err
	}

	items := json.RawMessage(session.JewelleryItems)
	if len(items) == 0 {
		items = json.RawMessage("[]")
	}

	return c.JSON(fiber.Map{
		"session_id":      session.SessionID,
		"jewellery_items": items,
		"total_items":     session.TotalItems,
	})
}

// Delete removes a session
func Delete(c *fiber.Ctx) error {
	session, err := loadSession(c)
	if session == nil {
		return err
	}

	if err := database.Database.Db.Delete(session).Error; err != nil {
		log.Printf("Error deleting session %s: %v", session.SessionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete session",
		})
	}

	return sessionResponse(c, session.SessionID, "Session deleted")
}
