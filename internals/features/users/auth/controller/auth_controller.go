package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authModel "campussphere_backend/internals/features/users/auth/model"
	userModel "campussphere_backend/internals/features/users/user/model"
	helper "campussphere_backend/internals/helpers"
	"campussphere_backend/internals/helpers/mailer"
)

var validate = validator.New()

const tokenTTLMinutes = 15

type AuthController struct {
	DB     *gorm.DB
	Mailer mailer.Mailer
}

func NewAuthController(db *gorm.DB, m mailer.Mailer) *AuthController {
	return &AuthController{DB: db, Mailer: m}
}

/* ==========================
   SIGNUP + VERIFY EMAIL
========================== */

// Signup menaruh pendaftar di temp_users sampai email terverifikasi.
// Temp record yang sudah expired tidak memblokir signup ulang: dihapus lazy
// di sini.
func (ctrl *AuthController) Signup(c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name" validate:"required,min=3,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var count int64
	if err := ctrl.DB.Model(&userModel.UserModel{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Signup failed")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
	}

	var stale authModel.TempUserModel
	err := ctrl.DB.Where("email = ?", input.Email).First(&stale).Error
	switch {
	case err == nil:
		if !helper.IsTokenExpired(stale.ExpiresAt) {
			return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		if derr := ctrl.DB.Delete(&stale).Error; derr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Signup failed")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fresh signup
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Signup failed")
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	temp := authModel.TempUserModel{
		Name:              input.Name,
		Email:             input.Email,
		PasswordHash:      hash,
		VerificationToken: helper.GenerateToken(),
		ExpiresAt:         helper.GetExpiryTime(tokenTTLMinutes),
	}
	if err := ctrl.DB.Create(&temp).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Signup failed")
	}

	if err := ctrl.Mailer.Send(temp.Email, mailer.TemplateVerifyEmail, temp.VerificationToken, temp.Name); err != nil {
		log.Printf("[WARN] verification mail to %s failed: %v", temp.Email, err)
	}

	return helper.JsonCreated(c, "Verification email sent! Please check your inbox.", nil)
}

// VerifyEmail mempromosikan temp user jadi user. Token single-use:
// row staging dihapus di transaksi yang sama, atau dihapus saat ketahuan
// expired.
func (ctrl *AuthController) VerifyEmail(c *fiber.Ctx) error {
	token := c.Params("token")

	var temp authModel.TempUserModel
	if err := ctrl.DB.Where("verification_token = ?", token).First(&temp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Invalid verification link")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Verification failed")
	}

	if helper.IsTokenExpired(temp.ExpiresAt) {
		_ = ctrl.DB.Delete(&temp).Error
		return helper.JsonError(c, fiber.StatusBadRequest, "Verification link expired. Please register again.")
	}

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		user := userModel.UserModel{
			Name:         temp.Name,
			Email:        temp.Email,
			PasswordHash: temp.PasswordHash,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Delete(&temp).Error
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Verification failed")
	}

	return helper.JsonOK(c, "Email verified successfully! Please login.", nil)
}

/* ==========================
   FORGOT / RESET PASSWORD
========================== */

// ForgotPassword: respons seragam apa pun hasil lookup, biar email tidak
// bisa dienumerasi.
func (ctrl *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var user userModel.UserModel
	err := ctrl.DB.Where("email = ?", input.Email).First(&user).Error
	if err == nil {
		reset := authModel.PasswordResetTokenModel{
			Email:     user.Email,
			Token:     helper.GenerateToken(),
			ExpiresAt: helper.GetExpiryTime(tokenTTLMinutes),
		}
		if cerr := ctrl.DB.Create(&reset).Error; cerr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Reset request failed")
		}
		if merr := ctrl.Mailer.Send(user.Email, mailer.TemplatePasswordReset, reset.Token, user.Name); merr != nil {
			log.Printf("[WARN] reset mail to %s failed: %v", user.Email, merr)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Reset request failed")
	}

	return helper.JsonOK(c, "If this email exists, a reset link has been sent", nil)
}

func (ctrl *AuthController) ResetPassword(c *fiber.Ctx) error {
	token := c.Params("token")

	var input struct {
		Password        string `json:"password" validate:"required,min=8"`
		ConfirmPassword string `json:"confirm_password" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if input.Password != input.ConfirmPassword {
		return helper.JsonError(c, fiber.StatusBadRequest, "Passwords do not match")
	}

	var reset authModel.PasswordResetTokenModel
	if err := ctrl.DB.Where("token = ?", token).First(&reset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Invalid reset link")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Reset failed")
	}
	if helper.IsTokenExpired(reset.ExpiresAt) {
		_ = ctrl.DB.Delete(&reset).Error
		return helper.JsonError(c, fiber.StatusBadRequest, "Reset link expired. Please request a new one")
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&userModel.UserModel{}).
			Where("email = ?", reset.Email).
			Update("password_hash", hash)
		if res.Error != nil {
			return res.Error
		}
		return tx.Delete(&reset).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Reset failed")
	}

	return helper.JsonUpdated(c, "Password reset successful! Please login", nil)
}
