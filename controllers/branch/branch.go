package branchController

import (
	"goldloan/database"
	"goldloan/middleware"
	"goldloan/models"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// attachBankNames fills the display-only BankName field from the owning bank
func attachBankNames(db *gorm.DB, branches []models.Branch) {
	if len(branches) == 0 {
		return
	}

	ids := make([]uint, 0, len(branches))
	for _, b := range branches {
		ids = append(ids, b.BankID)
	}

	var banks []models.Bank
	if err := db.Where("id IN ?", ids).Find(&banks).Error; err != nil {
		log.Printf("Error resolving bank names: %v", err)
		return
	}

	names := make(map[uint]string, len(banks))
	for _, bank := range banks {
		names[bank.ID] = bank.BankName
	}
	for i := range branches {
		branches[i].BankName = names[branches[i].BankID]
	}
}

// ListBranches returns all branches across all banks
func ListBranches(c *fiber.Ctx) error {
	db := database.Database.Db

	var branches []models.Branch
	if err := db.Order("branch_name").Find(&branches).Error; err != nil {
		log.Printf("Error fetching branches: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch branches!", nil)
	}

	attachBankNames(db, branches)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Branches fetched successfully.", branches)
}

// ListBranchesByBank returns all branches owned by one bank
func ListBranchesByBank(c *fiber.Ctx) error {
	bankID, err := c.ParamsInt("bankId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid bank id!", nil)
	}

	db := database.Database.Db

	var branches []models.Branch
	if err := db.Where("bank_id = ?", bankID).Order("branch_name").Find(&branches).Error; err != nil {
		log.Printf("Error fetching branches for bank %d: %v", bankID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch branches!", nil)
	}

	attachBankNames(db, branches)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Branches fetched successfully.", branches)
}

// GetBranch returns a single branch by id
func GetBranch(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid branch id!", nil)
	}

	db := database.Database.Db

	var branch models.Branch
	if err := db.First(&branch, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Branch not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch branch!", nil)
	}

	single := []models.Branch{branch}
	attachBankNames(db, single)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Branch fetched successfully.", single[0])
}

// CreateBranch creates a new branch under an existing bank. Branch codes are
// unique within a bank.
func CreateBranch(c *fiber.Ctx) error {
	var reqData models.Branch
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// A branch must always resolve to an existing bank
	if err := db.First(&models.Bank{}, reqData.BankID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Bank not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify bank!", nil)
	}

	if err := db.Where("bank_id = ? AND branch_code = ?", reqData.BankID, reqData.BranchCode).
		First(&models.Branch{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Branch code already exists for this bank!", nil)
	}

	newBranch := models.Branch{
		BankID:           reqData.BankID,
		BranchCode:       reqData.BranchCode,
		BranchName:       reqData.BranchName,
		BranchAddress:    reqData.BranchAddress,
		BranchCity:       reqData.BranchCity,
		BranchState:      reqData.BranchState,
		BranchPincode:    reqData.BranchPincode,
		ContactEmail:     reqData.ContactEmail,
		ContactPhone:     reqData.ContactPhone,
		ManagerName:      reqData.ManagerName,
		Latitude:         reqData.Latitude,
		Longitude:        reqData.Longitude,
		OperationalHours: reqData.OperationalHours,
		IsActive:         true,
	}

	if err := db.Create(&newBranch).Error; err != nil {
		log.Printf("Error creating branch: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create branch!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Branch created successfully.", newBranch)
}

// UpdateBranch applies a partial update to a branch
func UpdateBranch(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid branch id!", nil)
	}

	reqData := new(struct {
		BranchName       *string                  `json:"branch_name"`
		BranchAddress    *string                  `json:"branch_address"`
		BranchCity       *string                  `json:"branch_city"`
		BranchState      *string                  `json:"branch_state"`
		BranchPincode    *string                  `json:"branch_pincode"`
		ContactEmail     *string                  `json:"contact_email"`
		ContactPhone     *string                  `json:"contact_phone"`
		ManagerName      *string                  `json:"manager_name"`
		Latitude         *float64                 `json:"latitude"`
		Longitude        *float64                 `json:"longitude"`
		OperationalHours *models.OperationalHours `json:"operational_hours"`
		IsActive         *bool                    `json:"is_active"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var branch models.Branch
	if err := db.First(&branch, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Branch not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch branch!", nil)
	}

	if reqData.BranchName != nil {
		branch.BranchName = *reqData.BranchName
	}
	if reqData.BranchAddress != nil {
		branch.BranchAddress = *reqData.BranchAddress
	}
	if reqData.BranchCity != nil {
		branch.BranchCity = *reqData.BranchCity
	}
	if reqData.BranchState != nil {
		branch.BranchState = *reqData.BranchState
	}
	if reqData.BranchPincode != nil {
		branch.BranchPincode = *reqData.BranchPincode
	}
	if reqData.ContactEmail != nil {
		branch.ContactEmail = *reqData.ContactEmail
	}
	if reqData.ContactPhone != nil {
		branch.ContactPhone = *reqData.ContactPhone
	}
	if reqData.ManagerName != nil {
		branch.ManagerName = *reqData.ManagerName
	}
	if reqData.Latitude != nil {
		branch.Latitude = *reqData.Latitude
	}
	if reqData.Longitude != nil {
		branch.Longitude = *reqData.Longitude
	}
	if reqData.OperationalHours != nil {
		branch.OperationalHours = datatypes.NewJSONType(*reqData.OperationalHours)
	}
	if reqData.IsActive != nil {
		branch.IsActive = *reqData.IsActive
	}

	if err := db.Save(&branch).Error; err != nil {
		log.Printf("Error updating branch %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update branch!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Branch updated successfully.", branch)
}

// DeleteBranch removes a branch. Branches with users cannot be deleted.
func DeleteBranch(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid branch id!", nil)
	}

	db := database.Database.Db

	var branch models.Branch
	if err := db.First(&branch, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Branch not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch branch!", nil)
	}

	var userCount int64
	if err := db.Model(&models.TenantUser{}).Where("branch_id = ?", id).Count(&userCount).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check users!", nil)
	}
	if userCount > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot delete branch with existing users!", nil)
	}

	if err := db.Delete(&branch).Error; err != nil {
		log.Printf("Error deleting branch %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete branch!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Branch deleted successfully.", nil)
}
