package branchValidator

import (
	"goldloan/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateBranch validator middleware
func CreateBranch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			BankID        uint   `json:"bank_id" validate:"required"`
			BranchCode    string `json:"branch_code" validate:"required,min=1,max=20"`
			BranchName    string `json:"branch_name" validate:"required,min=1,max=255"`
			ContactEmail  string `json:"contact_email" validate:"omitempty,email"`
			BranchPincode string `json:"branch_pincode" validate:"omitempty,max=10"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "BankID":
					// A branch is never created without a resolved bank context
					errors["bank_id"] = "Bank is required!"
				case "BranchCode":
					errors["branch_code"] = "Branch code must be 1-20 characters!"
				case "BranchName":
					errors["branch_name"] = "Branch name is required!"
				case "ContactEmail":
					errors["contact_email"] = "Invalid email!"
				case "BranchPincode":
					errors["branch_pincode"] = "Invalid pincode!"
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
