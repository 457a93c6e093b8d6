package tenantController

import (
	"goldloan/database"
	"goldloan/middleware"
	"goldloan/models"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// attachTenantNames fills display-only bank/branch names on user records
func attachTenantNames(db *gorm.DB, users []models.TenantUser) {
	for i := range users {
		var bank models.Bank
		if err := db.First(&bank, users[i].BankID).Error; err == nil {
			users[i].BankName = bank.BankName
		}
		if users[i].BranchID != nil {
			var branch models.Branch
			if err := db.First(&branch, *users[i].BranchID).Error; err == nil {
				users[i].BranchName = branch.BranchName
			}
		}
	}
}

// ListUsersByBank returns all tenant users of a bank
func ListUsersByBank(c *fiber.Ctx) error {
	bankID, err := c.ParamsInt("bankId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid bank id!", nil)
	}

	db := database.Database.Db

	var users []models.TenantUser
	if err := db.Where("bank_id = ?", bankID).Order("full_name").Find(&users).Error; err != nil {
		log.Printf("Error fetching users for bank %d: %v", bankID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	attachTenantNames(db, users)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully.", users)
}

// ListUsersByBranch returns all tenant users of a branch
func ListUsersByBranch(c *fiber.Ctx) error {
	branchID, err := c.ParamsInt("branchId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid branch id!", nil)
	}

	db := database.Database.Db

	var users []models.TenantUser
	if err := db.Where("branch_id = ?", branchID).Order("full_name").Find(&users).Error; err != nil {
		log.Printf("Error fetching users for branch %d: %v", branchID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	attachTenantNames(db, users)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully.", users)
}

// CreateUser creates a tenant user under an existing bank (and optionally a
// branch of that bank)
func CreateUser(c *fiber.Ctx) error {
	var reqData models.TenantUser
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.Bank{}, reqData.BankID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Bank not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify bank!", nil)
	}

	if reqData.BranchID != nil {
		var branch models.Branch
		if err := db.First(&branch, *reqData.BranchID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Branch not found!", nil)
		}
		if branch.BankID != reqData.BankID {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Branch does not belong to the given bank!", nil)
		}
	}

	if err := db.Where("bank_id = ? AND user_code = ?", reqData.BankID, reqData.UserCode).
		First(&models.TenantUser{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User ID already exists for this bank!", nil)
	}

	if reqData.Role == "" {
		reqData.Role = models.RoleGoldAppraiser
	}
	if !reqData.Role.Valid() {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user role!", nil)
	}
	if reqData.Status == "" {
		reqData.Status = models.UserStatusActive
	}
	reqData.IsActive = true

	if err := db.Create(&reqData).Error; err != nil {
		log.Printf("Error creating tenant user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User created successfully.", reqData)
}

// TenantContext is the fully resolved scope for a selected bank/branch/user
type TenantContext struct {
	BankID       *uint                       `json:"bank_id"`
	BranchID     *uint                       `json:"branch_id"`
	TenantUserID *uint                       `json:"tenant_user_id"`
	BankCode     string                      `json:"bank_code,omitempty"`
	BranchCode   string                      `json:"branch_code,omitempty"`
	UserCode     string                      `json:"user_id,omitempty"`
	BankName     string                      `json:"bank_name,omitempty"`
	BranchName   string                      `json:"branch_name,omitempty"`
	UserFullName string                      `json:"user_full_name,omitempty"`
	UserRole     models.Role                 `json:"user_role,omitempty"`
	Permissions  *models.Permissions         `json:"permissions,omitempty"`
	Settings     *models.TenantSettings      `json:"tenant_settings,omitempty"`
	Config       *models.SystemConfiguration `json:"system_configuration,omitempty"`
}

// ResolveContext resolves a bank/branch/user selection into the scoped
// context (names, effective permissions, bank settings) the client carries
// through the workflow
func ResolveContext(c *fiber.Ctx) error {
	db := database.Database.Db
	ctx := TenantContext{}

	if bankID := c.QueryInt("bank_id"); bankID > 0 {
		var bank models.Bank
		if err := db.First(&bank, bankID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Bank not found!", nil)
		}
		ctx.BankID = &bank.ID
		ctx.BankCode = bank.BankCode
		ctx.BankName = bank.BankName
		settings := bank.TenantSettings.Data()
		ctx.Settings = &settings
		cfg := bank.SystemConfiguration.Data()
		ctx.Config = &cfg
	}

	if branchID := c.QueryInt("branch_id"); branchID > 0 {
		var branch models.Branch
		if err := db.First(&branch, branchID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Branch not found!", nil)
		}
		if ctx.BankID != nil && branch.BankID != *ctx.BankID {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Branch does not belong to the given bank!", nil)
		}
		ctx.BranchID = &branch.ID
		ctx.BranchCode = branch.BranchCode
		ctx.BranchName = branch.BranchName
	}

	if userID := c.QueryInt("user_id"); userID > 0 {
		var user models.TenantUser
		if err := db.First(&user, userID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}
		if ctx.BankID != nil && user.BankID != *ctx.BankID {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User does not belong to the given bank!", nil)
		}
		ctx.TenantUserID = &user.ID
		ctx.UserCode = user.UserCode
		ctx.UserFullName = user.FullName
		ctx.UserRole = user.Role
		overrides := user.Permissions.Data()
		perms := models.DerivePermissions(user.Role, &overrides)
		ctx.Permissions = &perms
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Context resolved successfully.", ctx)
}

// HierarchyBranch is one branch node of the tenant hierarchy
type HierarchyBranch struct {
	BranchID   uint                `json:"branch_id"`
	BranchCode string              `json:"branch_code"`
	BranchName string              `json:"branch_name"`
	BranchCity string              `json:"branch_city,omitempty"`
	UserCount  int                 `json:"user_count"`
	Users      []models.TenantUser `json:"users"`
}

// HierarchyBank is one bank node of the tenant hierarchy
type HierarchyBank struct {
	BankID      uint              `json:"bank_id"`
	BankCode    string            `json:"bank_code"`
	BankName    string            `json:"bank_name"`
	BranchCount int               `json:"branch_count"`
	Branches    []HierarchyBranch `json:"branches"`
}

// Hierarchy returns the full bank → branch → user tree
func Hierarchy(c *fiber.Ctx) error {
	db := database.Database.Db

	var banks []models.Bank
	if err := db.Order("bank_name").Find(&banks).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch banks!", nil)
	}

	hierarchy := make([]HierarchyBank, 0, len(banks))
	for _, bank := range banks {
		var branches []models.Branch
		if err := db.Where("bank_id = ?", bank.ID).Order("branch_name").Find(&branches).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch branches!", nil)
		}

		node := HierarchyBank{
			BankID:      bank.ID,
			BankCode:    bank.BankCode,
			BankName:    bank.BankName,
			BranchCount: len(branches),
			Branches:    make([]HierarchyBranch, 0, len(branches)),
		}

		for _, branch := range branches {
			var users []models.TenantUser
			if err := db.Where("branch_id = ?", branch.ID).Order("full_name").Find(&users).Error; err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
			}
			node.Branches = append(node.Branches, HierarchyBranch{
				BranchID:   branch.ID,
				BranchCode: branch.BranchCode,
				BranchName: branch.BranchName,
				BranchCity: branch.BranchCity,
				UserCount:  len(users),
				Users:      users,
			})
		}

		hierarchy = append(hierarchy, node)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Hierarchy fetched successfully.", fiber.Map{
		"total_banks": len(banks),
		"hierarchy":   hierarchy,
	})
}
