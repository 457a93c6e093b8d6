package adminController

import (
	"goldloan/config"
	"goldloan/database"
	"goldloan/middleware"
	"goldloan/models"
	"goldloan/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateBranchAdmin creates a branch admin under a bank/branch pair and
// mails the credentials
func CreateBranchAdmin(c *fiber.Ctx) error {
	reqData := new(struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
		BankID   uint   `json:"bank_id"`
		BranchID uint   `json:"branch_id"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var bank models.Bank
	if err := db.First(&bank, reqData.BankID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Bank not found!", nil)
	}

	var branch models.Branch
	if err := db.First(&branch, reqData.BranchID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Branch not found!", nil)
	}
	if branch.BankID != reqData.BankID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Branch does not belong to the given bank!", nil)
	}

	if err := db.Where("email = ?", reqData.Email).First(&models.BranchAdmin{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	admin := models.BranchAdmin{
		FullName:     reqData.FullName,
		Email:        reqData.Email,
		Phone:        reqData.Phone,
		PasswordHash: string(hashedPassword),
		BankID:       reqData.BankID,
		BranchID:     reqData.BranchID,
		IsActive:     true,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Error creating branch admin: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create branch admin!", nil)
	}

	go utils.SendBranchAdminWelcomeEmail(admin.Email, admin.FullName, bank.BankName, branch.BranchName, reqData.Password)

	admin.BankName = bank.BankName
	admin.BranchName = branch.BranchName
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Branch admin created successfully.", admin)
}

// attachAdminNames fills display-only bank/branch names on branch admins
func attachAdminNames(db *gorm.DB, admins []models.BranchAdmin) {
	for i := range admins {
		var bank models.Bank
		if err := db.First(&bank, admins[i].BankID).Error; err == nil {
			admins[i].BankName = bank.BankName
		}
		var branch models.Branch
		if err := db.First(&branch, admins[i].BranchID).Error; err == nil {
			admins[i].BranchName = branch.BranchName
		}
	}
}

// ListBranchAdmins returns the branch admins of a bank
func ListBranchAdmins(c *fiber.Ctx) error {
	bankID, err := c.ParamsInt("bankId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid bank id!", nil)
	}

	db := database.Database.Db

	var admins []models.BranchAdmin
	if err := db.Where("bank_id = ?", bankID).Order("full_name").Find(&admins).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch branch admins!", nil)
	}

	attachAdminNames(db, admins)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Branch admins fetched successfully.", admins)
}

// ListAllBranchAdmins returns every branch admin across banks
func ListAllBranchAdmins(c *fiber.Ctx) error {
	db := database.Database.Db

	var admins []models.BranchAdmin
	if err := db.Order("full_name").Find(&admins).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch branch admins!", nil)
	}

	attachAdminNames(db, admins)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Branch admins fetched successfully.", admins)
}

// DeleteBranchAdmin removes a branch admin
func DeleteBranchAdmin(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid admin id!", nil)
	}

	db := database.Database.Db

	var admin models.BranchAdmin
	if err := db.First(&admin, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Branch admin not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch branch admin!", nil)
	}

	if err := db.Delete(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete branch admin!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Branch admin deleted successfully.", nil)
}
