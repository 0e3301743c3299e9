package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	clubModel "campussphere_backend/internals/features/clubs/model"
	helper "campussphere_backend/internals/helpers"
	"campussphere_backend/internals/helpers/workflow"
	"campussphere_backend/internals/middlewares/auth"
)

var validate = validator.New()

type ClubController struct {
	DB *gorm.DB
}

func NewClubController(db *gorm.DB) *ClubController {
	return &ClubController{DB: db}
}

/* ==========================
   BROWSE
========================== */

func (ctrl *ClubController) GetAll(c *fiber.Ctx) error {
	var clubs []clubModel.ClubModel
	if err := ctrl.DB.Order("name asc").Find(&clubs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch clubs")
	}
	return helper.JsonOK(c, "Clubs fetched successfully", clubs)
}

func (ctrl *ClubController) GetByID(c *fiber.Ctx) error {
	clubID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid club ID")
	}

	var club clubModel.ClubModel
	if err := ctrl.DB.First(&club, clubID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Club not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch club")
	}

	type memberRow struct {
		UserID     uint   `json:"user_id"`
		Name       string `json:"name"`
		IsVerified bool   `json:"is_verified"`
	}
	var members []memberRow
	if err := ctrl.DB.Model(&clubModel.ClubMembershipModel{}).
		Select("club_memberships.user_id, users.name, club_memberships.is_verified").
		Joins("JOIN users ON users.id = club_memberships.user_id").
		Where("club_memberships.club_id = ?", clubID).
		Scan(&members).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch club")
	}

	return helper.JsonOK(c, "Club fetched successfully", fiber.Map{
		"club":    club,
		"members": members,
	})
}

/* ==========================
   MEMBERSHIP LEDGER
========================== */

// Join idempoten: duplikat ditangkap constraint unik (user_id, club_id),
// bukan cek-lalu-insert.
func (ctrl *ClubController) Join(c *fiber.Ctx) error {
	userID := auth.PrincipalID(c, constants.RoleUser)
	clubID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid club ID")
	}

	var count int64
	if err := ctrl.DB.Model(&clubModel.ClubModel{}).Where("id = ?", clubID).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to join club")
	}
	if count == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Club not found")
	}

	membership := clubModel.ClubMembershipModel{
		UserID: userID,
		ClubID: uint(clubID),
	}
	if err := ctrl.DB.Create(&membership).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return c.JSON(fiber.Map{"message": "Already a member of this club"})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to join club")
	}

	return c.JSON(fiber.Map{"message": "Joined club successfully"})
}

func (ctrl *ClubController) Leave(c *fiber.Ctx) error {
	userID := auth.PrincipalID(c, constants.RoleUser)
	clubID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid club ID")
	}

	res := ctrl.DB.Where("user_id = ? AND club_id = ?", userID, clubID).
		Delete(&clubModel.ClubMembershipModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to leave club")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "You are not a member of this club")
	}

	return c.JSON(fiber.Map{"message": "Left club successfully"})
}

/* ==========================
   TAG REQUEST WORKFLOW
========================== */

func (ctrl *ClubController) RequestTag(c *fiber.Ctx) error {
	userID := auth.PrincipalID(c, constants.RoleUser)
	clubID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid club ID")
	}

	var count int64
	if err := ctrl.DB.Model(&clubModel.ClubModel{}).Where("id = ?", clubID).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to submit request")
	}
	if count == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Club not found")
	}

	req := clubModel.ClubTagRequestModel{
		UserID: userID,
		ClubID: uint(clubID),
	}
	if err := workflow.CreatePending(ctrl.DB, &req); err != nil {
		if errors.Is(err, workflow.ErrDuplicatePending) {
			return helper.JsonError(c, fiber.StatusConflict, "You already have a pending request for this club")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to submit request")
	}

	return helper.JsonCreated(c, "Tag request submitted", fiber.Map{"request_id": req.ID})
}

func (ctrl *ClubController) MyTagRequests(c *fiber.Ctx) error {
	userID := auth.PrincipalID(c, constants.RoleUser)

	var requests []clubModel.ClubTagRequestModel
	if err := ctrl.DB.Where("user_id = ?", userID).
		Order("requested_at desc").Find(&requests).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch requests")
	}
	return helper.JsonOK(c, "Tag requests fetched successfully", requests)
}
