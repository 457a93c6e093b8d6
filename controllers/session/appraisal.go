package sessionController

import (
	"fmt"
	"goldloan/database"
	"goldloan/models"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListAppraisals returns stored appraisal sessions with skip/limit
// pagination, newest first
func ListAppraisals(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)
	if limit > 1000 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Limit cannot exceed 1000",
		})
	}
	if skip < 0 {
		skip = 0
	}

	var sessions []models.AppraisalSession
	if err := database.Database.Db.Order("created_at DESC").
		Offset(skip).Limit(limit).Find(&sessions).Error; err != nil {
		log.Printf("Error fetching appraisals: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch appraisals",
		})
	}

	return c.JSON(fiber.Map{
		"total":      len(sessions),
		"appraisals": sessions,
	})
}

func loadAppraisal(c *fiber.Ctx) (*models.AppraisalSession, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid appraisal id",
		})
	}

	var session models.AppraisalSession
	if err := database.Database.Db.First(&session, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": fmt.Sprintf("Appraisal with ID %d not found", id),
			})
		}
		log.Printf("Error fetching appraisal %d: %v", id, err)
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch appraisal",
		})
	}
	return &session, nil
}

// GetAppraisal returns one appraisal by its numeric record id
func GetAppraisal(c *fiber.Ctx) error {
	session, err := loadAppraisal(c)
	if session == nil {
		return err
	}
	return c.JSON(session)
}

// DeleteAppraisal removes one appraisal by its numeric record id
func DeleteAppraisal(c *fiber.Ctx) error {
	session, err := loadAppraisal(c)
	if session == nil {
		return err
	}

	if err := database.Database.Db.Delete(session).Error; err != nil {
		log.Printf("Error deleting appraisal %d: %v", session.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete appraisal",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Appraisal %d deleted successfully", session.ID),
	})
}
