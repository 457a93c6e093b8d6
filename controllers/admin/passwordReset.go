package adminController

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
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

const resetTokenTTL = 10 * time.Minute

// newResetToken returns a raw reset token and the hash stored for it
func newResetToken() (string, string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw := hex.EncodeToString(buf)
	return raw, hashResetToken(raw), nil
}

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// adminEmailExists reports whether an active admin of the given type has the
// email
func adminEmailExists(db *gorm.DB, email, userType string) bool {
	switch userType {
	case "bank_admin":
		return db.Where("email = ? AND is_active = true", email).
			First(&models.BankAdmin{}).Error == nil
	case "branch_admin":
		return db.Where("email = ? AND is_active = true", email).
			First(&models.BranchAdmin{}).Error == nil
	}
	return false
}

// ForgotPassword issues a single-use reset token and emails the reset link.
// The response never reveals whether the email is registered.
func ForgotPassword(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		UserType string `json:"user_type"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Email == "" || (reqData.UserType != "bank_admin" && reqData.UserType != "branch_admin") {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Email and a valid user type are required!", nil)
	}

	db := database.Database.Db
	genericResponse := func() error {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "If the email is registered, a reset link has been sent",
		})
	}

	if !adminEmailExists(db, reqData.Email, reqData.UserType) {
		return genericResponse()
	}

	raw, hash, err := newResetToken()
	if err != nil {
		log.Printf("Error generating reset token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	// One live token per account: retire older ones first
	db.Model(&models.PasswordResetToken{}).
		Where("email = ? AND user_type = ? AND used = false", reqData.Email, reqData.UserType).
		Update("used", true)

	token := models.PasswordResetToken{
		Email:     reqData.Email,
		UserType:  reqData.UserType,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := db.Create(&token).Error; err != nil {
		log.Printf("Error storing reset token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s&email=%s&type=%s",
		config.AppConfig.FrontendURL, raw, reqData.Email, reqData.UserType)
	go utils.SendPasswordResetEmail(reqData.Email, resetLink, reqData.UserType)

	return genericResponse()
}

// liveResetToken returns the unused, unexpired token row matching the raw
// token, or nil
func liveResetToken(db *gorm.DB, email, userType, raw string) *models.PasswordResetToken {
	var token models.PasswordResetToken
	err := db.Where("email = ? AND user_type = ? AND used = false", email, userType).
		Order("created_at DESC").First(&token).Error
	if err != nil {
		return nil
	}
	if time.Now().After(token.ExpiresAt) {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(token.TokenHash), []byte(hashResetToken(raw))) != 1 {
		return nil
	}
	return &token
}

// ValidateResetToken reports whether a reset token is still usable
func ValidateResetToken(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		UserType string `json:"user_type"`
		Token    string `json:"token"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	valid := liveResetToken(database.Database.Db, reqData.Email, reqData.UserType, reqData.Token) != nil
	return c.JSON(fiber.Map{"valid": valid})
}

// ResetPassword consumes a reset token and sets the new admin password
func ResetPassword(c *fiber.Ctx) error {
	reqData := new(struct {
		Email       string `json:"email"`
		UserType    string `json:"user_type"`
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if len(reqData.NewPassword) < 8 {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Password must be at least 8 characters long!", nil)
	}

	db := database.Database.Db

	token := liveResetToken(db, reqData.Email, reqData.UserType, reqData.Token)
	if token == nil {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Invalid or expired reset token!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	var updateErr error
	switch reqData.UserType {
	case "bank_admin":
		updateErr = db.Model(&models.BankAdmin{}).Where("email = ?", reqData.Email).
			Update("password_hash", string(hashedPassword)).Error
	case "branch_admin":
		updateErr = db.Model(&models.BranchAdmin{}).Where("email = ?", reqData.Email).
			Update("password_hash", string(hashedPassword)).Error
	default:
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Invalid user type!", nil)
	}
	if updateErr != nil {
		log.Printf("Error updating password for %s: %v", reqData.Email, updateErr)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update password!", nil)
	}

	token.Used = true
	if err := db.Save(token).Error; err != nil {
		log.Printf("Error consuming reset token for %s: %v", reqData.Email, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password has been reset successfully",
	})
}
