package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	clubModel "campussphere_backend/internals/features/clubs/model"
	userModel "campussphere_backend/internals/features/users/user/model"
	helper "campussphere_backend/internals/helpers"
	"campussphere_backend/internals/middlewares/auth"
)

var validate = validator.New()

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

func (ctrl *UserController) GetProfile(c *fiber.Ctx) error {
	userID := auth.PrincipalID(c, constants.RoleUser)

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load profile")
	}

	// Profil menampilkan club yang diikuti beserta status verifikasinya.
	type membershipRow struct {
		ClubID     uint   `json:"club_id"`
		ClubName   string `json:"club_name"`
		IsVerified bool   `json:"is_verified"`
	}
	var memberships []membershipRow
	if err := ctrl.DB.Model(&clubModel.ClubMembershipModel{}).
		Select("club_memberships.club_id, clubs.name AS club_name, club_memberships.is_verified").
		Joins("JOIN clubs ON clubs.id = club_memberships.club_id").
		Where("club_memberships.user_id = ?", userID).
		Scan(&memberships).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load profile")
	}

	return helper.JsonOK(c, "Profile fetched successfully", fiber.Map{
		"user":        user,
		"memberships": memberships,
	})
}

func (ctrl *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID := auth.PrincipalID(c, constants.RoleUser)

	var input struct {
		Name         *string `json:"name" validate:"omitempty,min=3,max=100"`
		ProfileImage *string `json:"profile_image" validate:"omitempty,max=255"`
		Course       *string `json:"course" validate:"omitempty,max=50"`
		Branch       *string `json:"branch" validate:"omitempty,max=50"`
		Batch        *string `json:"batch" validate:"omitempty,max=20"`
		Year         *int    `json:"year" validate:"omitempty,min=1,max=6"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.ProfileImage != nil {
		updates["profile_image"] = *input.ProfileImage
	}
	if input.Course != nil {
		updates["course"] = *input.Course
	}
	if input.Branch != nil {
		updates["branch"] = *input.Branch
	}
	if input.Batch != nil {
		updates["batch"] = *input.Batch
	}
	if input.Year != nil {
		updates["year"] = *input.Year
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	res := ctrl.DB.Model(&userModel.UserModel{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	return helper.JsonUpdated(c, "Profile updated successfully", updates)
}

func (ctrl *UserController) ChangePassword(c *fiber.Ctx) error {
	userID := auth.PrincipalID(c, constants.RoleUser)

	var input struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	if !helper.CheckPasswordHash(input.CurrentPassword, user.PasswordHash) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password is incorrect")
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}
	if err := ctrl.DB.Model(&user).Update("password_hash", hash).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to change password")
	}

	return helper.JsonUpdated(c, "Password changed successfully", nil)
}
