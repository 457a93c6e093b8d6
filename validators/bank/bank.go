package bankValidator

import (
	"goldloan/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateBank validator middleware
func CreateBank() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			BankCode     string `json:"bank_code" validate:"required,alphanum,min=2,max=20"`
			BankName     string `json:"bank_name" validate:"required,min=1,max=255"`
			ContactEmail string `json:"contact_email" validate:"omitempty,email"`
			ContactPhone string `json:"contact_phone" validate:"omitempty,max=20"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "BankCode":
					errors["bank_code"] = "Bank code must be alphanumeric, 2-20 characters!"
				case "BankName":
					errors["bank_name"] = "Bank name is required!"
				case "ContactEmail":
					errors["contact_email"] = "Invalid email!"
				case "ContactPhone":
					errors["contact_phone"] = "Invalid phone number!"
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
