package adminValidator

import (
	"goldloan/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required,min=8"`
			Role     string `json:"role" validate:"required,oneof=super_admin bank_admin branch_admin"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Email":
					errors["email"] = "Invalid email!"
				case "Password":
					errors["password"] = "Password must be at least 8 characters long!"
				case "Role":
					errors["role"] = "Role must be super_admin, bank_admin or branch_admin!"
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// CreateBankAdmin validator middleware
func CreateBankAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FullName string `json:"full_name" validate:"required,min=3,max=255"`
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required,min=8"`
			BankID   uint   `json:"bank_id" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "FullName":
					errors["full_name"] = "Name must be at least 3 characters long!"
				case "Email":
					errors["email"] = "Invalid email!"
				case "Password":
					errors["password"] = "Password must be at least 8 characters long!"
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

// CreateBranchAdmin validator middleware
func CreateBranchAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FullName string `json:"full_name" validate:"required,min=3,max=255"`
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required,min=8"`
			BankID   uint   `json:"bank_id" validate:"required"`
			BranchID uint   `json:"branch_id" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "FullName":
					errors["full_name"] = "Name must be at least 3 characters long!"
				case "Email":
					errors["email"] = "Invalid email!"
				case "Password":
					errors["password"] = "Password must be at least 8 characters long!"
				case "BankID":
					errors["bank_id"] = "Bank is required!"
				case "BranchID":
					errors["branch_id"] = "Branch is required!"
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
