package adminController

import (
	"crypto/subtle"
	"goldloan/config"
	"goldloan/database"
	"goldloan/middleware"
	"goldloan/models"
	"goldloan/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginRequest is the admin login payload. Role selects which admin table is
// consulted; branch admins must name both bank and branch.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	BankID   uint   `json:"bank_id"`
	BranchID *uint  `json:"branch_id"`
	Role     string `json:"role"`
}

type loginUser struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	BankID     uint   `json:"bank_id"`
	BranchID   *uint  `json:"branch_id"`
	BankName   string `json:"bank_name"`
	BranchName string `json:"branch_name,omitempty"`
	Token      string `json:"token"`
}

func loginFailed(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// Login authenticates a bank or branch admin and mints a JWT
func Login(c *fiber.Ctx) error {
	reqData := new(LoginRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	db := database.Database.Db

	switch reqData.Role {
	case "super_admin":
		// Env-credential login used to bootstrap a fresh deployment (create
		// the first bank and bank admin). Disabled until credentials are set.
		if config.AppConfig.SuperAdminPassword == "" {
			return loginFailed(c, "Super admin login is disabled")
		}
		if subtle.ConstantTimeCompare([]byte(reqData.Email), []byte(config.AppConfig.SuperAdminEmail)) != 1 ||
			subtle.ConstantTimeCompare([]byte(reqData.Password), []byte(config.AppConfig.SuperAdminPassword)) != 1 {
			return loginFailed(c, "Invalid credentials or access denied")
		}

		token, err := middleware.GenerateJWT(0, "Super Admin", "super_admin", reqData.Email, 0, nil)
		if err != nil {
			log.Printf("Error generating token: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process login!", nil)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Super admin login successful",
			"user": loginUser{
				Name:  "Super Admin",
				Email: reqData.Email,
				Role:  "super_admin",
				Token: token,
			},
		})

	case "branch_admin":
		if reqData.BankID == 0 || reqData.BranchID == nil {
			return loginFailed(c, "Please select both bank and branch for branch admin login")
		}

		var admin models.BranchAdmin
		err := db.Where("email = ? AND bank_id = ? AND branch_id = ? AND is_active = true",
			reqData.Email, reqData.BankID, *reqData.BranchID).First(&admin).Error
		if err != nil {
			return loginFailed(c, "Invalid credentials or you don't have access to the selected branch")
		}

		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(reqData.Password)) != nil {
			return loginFailed(c, "Invalid credentials or you don't have access to the selected branch")
		}

		now := time.Now()
		admin.LastLogin = &now
		db.Save(&admin)

		token, err := middleware.GenerateJWT(admin.ID, admin.FullName, "branch_admin", admin.Email, admin.BankID, &admin.BranchID)
		if err != nil {
			log.Printf("Error generating token: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process login!", nil)
		}

		var bank models.Bank
		db.First(&bank, admin.BankID)
		var branch models.Branch
		db.First(&branch, admin.BranchID)

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Branch admin login successful",
			"user": loginUser{
				ID:         admin.ID,
				Name:       admin.FullName,
				Email:      admin.Email,
				Role:       "branch_admin",
				BankID:     admin.BankID,
				BranchID:   &admin.BranchID,
				BankName:   bank.BankName,
				BranchName: branch.BranchName,
				Token:      token,
			},
		})

	case "bank_admin":
		if reqData.BankID == 0 {
			return loginFailed(c, "Please select a bank for bank admin login")
		}

		var admin models.BankAdmin
		err := db.Where("email = ? AND bank_id = ? AND is_active = true",
			reqData.Email, reqData.BankID).First(&admin).Error
		if err != nil {
			return loginFailed(c, "Invalid credentials or access denied")
		}

		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(reqData.Password)) != nil {
			return loginFailed(c, "Invalid credentials or access denied")
		}

		now := time.Now()
		admin.LastLogin = &now
		db.Save(&admin)

		token, err := middleware.GenerateJWT(admin.ID, admin.FullName, "bank_admin", admin.Email, admin.BankID, nil)
		if err != nil {
			log.Printf("Error generating token: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process login!", nil)
		}

		var bank models.Bank
		db.First(&bank, admin.BankID)

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Bank admin login successful",
			"user": loginUser{
				ID:       admin.ID,
				Name:     admin.FullName,
				Email:    admin.Email,
				Role:     "bank_admin",
				BankID:   admin.BankID,
				BankName: bank.BankName,
				Token:    token,
			},
		})
	}

	return loginFailed(c, "Invalid credentials or access denied")
}

// CreateBankAdmin creates a bank admin and mails the credentials
func CreateBankAdmin(c *fiber.Ctx) error {
	reqData := new(struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
		BankID   uint   `json:"bank_id"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var bank models.Bank
	if err := db.First(&bank, reqData.BankID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Bank not found!", nil)
	}

	if err := db.Where("email = ?", reqData.Email).First(&models.BankAdmin{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	admin := models.BankAdmin{
		FullName:     reqData.FullName,
		Email:        reqData.Email,
		Phone:        reqData.Phone,
		PasswordHash: string(hashedPassword),
		BankID:       reqData.BankID,
		IsActive:     true,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Error creating bank admin: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create bank admin!", nil)
	}

	go utils.SendBankAdminWelcomeEmail(admin.Email, admin.FullName, bank.BankName, reqData.Password)

	admin.BankName = bank.BankName
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Bank admin created successfully.", admin)
}

// ListBankAdmins returns the bank admins of a bank
func ListBankAdmins(c *fiber.Ctx) error {
	bankID, err := c.ParamsInt("bankId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid bank id!", nil)
	}

	db := database.Database.Db

	var admins []models.BankAdmin
	if err := db.Where("bank_id = ?", bankID).Order("full_name").Find(&admins).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch bank admins!", nil)
	}

	var bank models.Bank
	if err := db.First(&bank, bankID).Error; err == nil {
		for i := range admins {
			admins[i].BankName = bank.BankName
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bank admins fetched successfully.", admins)
}

// DeleteBankAdmin removes a bank admin
func DeleteBankAdmin(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid admin id!", nil)
	}

	db := database.Database.Db

	var admin models.BankAdmin
	if err := db.First(&admin, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Bank admin not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch bank admin!", nil)
	}

	if err := db.Delete(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete bank admin!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bank admin deleted successfully.", nil)
}

// Statistics returns headline counts for the admin dashboard
func Statistics(c *fiber.Ctx) error {
	db := database.Database.Db

	var bankCount, branchCount, userCount, sessionCount, completedCount int64
	db.Model(&models.Bank{}).Count(&bankCount)
	db.Model(&models.Branch{}).Count(&branchCount)
	db.Model(&models.TenantUser{}).Count(&userCount)
	db.Model(&models.AppraisalSession{}).Count(&sessionCount)
	db.Model(&models.AppraisalSession{}).Where("status = ?", models.SessionStatusCompleted).Count(&completedCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Statistics fetched successfully.", fiber.Map{
		"total_banks":        bankCount,
		"total_branches":     branchCount,
		"total_users":        userCount,
		"total_sessions":     sessionCount,
		"completed_sessions": completedCount,
	})
}
