package bankController

import (
	"goldloan/database"
	"goldloan/middleware"
	"goldloan/models"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ListBanks returns all banks ordered by name
func ListBanks(c *fiber.Ctx) error {
	db := database.Database.Db

	var banks []models.Bank
	if err := db.Order("bank_name").Find(&banks).Error; err != nil {
		log.Printf("Error fetching banks: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch banks!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Banks fetched successfully.", banks)
}

// GetBank returns a single bank by id
func GetBank(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid bank id!", nil)
	}

	db := database.Database.Db

	var bank models.Bank
	if err := db.First(&bank, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Bank not found!", nil)
		}
		log.Printf("Error fetching bank %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch bank!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bank fetched successfully.", bank)
}

// CreateBank creates a new bank. Bank codes are unique.
func CreateBank(c *fiber.Ctx) error {
	var reqData models.Bank
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Check if bank code already exists
	if err := db.Where("bank_code = ?", reqData.BankCode).First(&models.Bank{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Bank code already exists!", nil)
	}

	newBank := models.Bank{
		BankCode:            reqData.BankCode,
		BankName:            reqData.BankName,
		BankShortName:       reqData.BankShortName,
		HeadquartersAddress: reqData.HeadquartersAddress,
		ContactEmail:        reqData.ContactEmail,
		ContactPhone:        reqData.ContactPhone,
		RBILicenseNumber:    reqData.RBILicenseNumber,
		IsActive:            true,
		SystemConfiguration: reqData.SystemConfiguration,
		TenantSettings:      reqData.TenantSettings,
	}

	if err := db.Create(&newBank).Error; err != nil {
		log.Printf("Error creating bank: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create bank!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Bank created successfully.", newBank)
}

// UpdateBank applies a partial update to a bank
func UpdateBank(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid bank id!", nil)
	}

	reqData := new(struct {
		BankName            *string                     `json:"bank_name"`
		BankShortName       *string                     `json:"bank_short_name"`
		HeadquartersAddress *string                     `json:"headquarters_address"`
		ContactEmail        *string                     `json:"contact_email"`
		ContactPhone        *string                     `json:"contact_phone"`
		RBILicenseNumber    *string                     `json:"rbi_license_number"`
		IsActive            *bool                       `json:"is_active"`
		SystemConfiguration *models.SystemConfiguration `json:"system_configuration"`
		TenantSettings      *models.TenantSettings      `json:"tenant_settings"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var bank models.Bank
	if err := db.First(&bank, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Bank not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch bank!", nil)
	}

	if reqData.BankName != nil {
		bank.BankName = *reqData.BankName
	}
	if reqData.BankShortName != nil {
		bank.BankShortName = *reqData.BankShortName
	}
	if reqData.HeadquartersAddress != nil {
		bank.HeadquartersAddress = *reqData.HeadquartersAddress
	}
	if reqData.ContactEmail != nil {
		bank.ContactEmail = *reqData.ContactEmail
	}
	if reqData.ContactPhone != nil {
		bank.ContactPhone = *reqData.ContactPhone
	}
	if reqData.RBILicenseNumber != nil {
		bank.RBILicenseNumber = *reqData.RBILicenseNumber
	}
	if reqData.IsActive != nil {
		bank.IsActive = *reqData.IsActive
	}
	if reqData.SystemConfiguration != nil {
		bank.SystemConfiguration = datatypes.NewJSONType(*reqData.SystemConfiguration)
	}
	if reqData.TenantSettings != nil {
		bank.TenantSettings = datatypes.NewJSONType(*reqData.TenantSettings)
	}

	if err := db.Save(&bank).Error; err != nil {
		log.Printf("Error updating bank %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update bank!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bank updated successfully.", bank)
}

// DeleteBank removes a bank. Banks with branches cannot be deleted.
func DeleteBank(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid bank id!", nil)
	}

	db := database.Database.Db

	var bank models.Bank
	if err := db.First(&bank, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Bank not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch bank!", nil)
	}

	var branchCount int64
	if err := db.Model(&models.Branch{}).Where("bank_id = ?", id).Count(&branchCount).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check branches!", nil)
	}
	if branchCount > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot delete bank with existing branches!", nil)
	}

	if err := db.Delete(&bank).Error; err != nil {
		log.Printf("Error deleting bank %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete bank!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bank deleted successfully.", nil)
}
