package tenantValidator

import (
	"goldloan/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateUser validator middleware
func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserCode string `json:"user_id" validate:"required,min=1,max=50"`
			FullName string `json:"full_name" validate:"required,min=1,max=255"`
			Email    string `json:"email" validate:"omitempty,email"`
			BankID   uint   `json:"bank_id" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "UserCode":
					errors["user_id"] = "User ID is required!"
				case "FullName":
					errors["full_name"] = "Full name is required!"
				case "Email":
					errors["email"] = "Invalid email!"
				case "BankID":
					errors["bank_id"] = "Bank is required!"
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
