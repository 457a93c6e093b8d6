package sessionValidator

import (
	"goldloan/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SaveAppraiser validator middleware
func SaveAppraiser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name      string `json:"name"`
			ID        string `json:"id"`
			Image     string `json:"image"`
			Timestamp string `json:"timestamp"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Appraiser name is required!"
		}
		if strings.TrimSpace(reqData.ID) == "" {
			errors["id"] = "Appraiser id is required!"
		}
		if reqData.Image == "" {
			errors["image"] = "Captured image is required!"
		}
		if reqData.Timestamp == "" {
			errors["timestamp"] = "Timestamp is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
