package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	clubModel "campussphere_backend/internals/features/clubs/model"
	helper "campussphere_backend/internals/helpers"
	"campussphere_backend/internals/helpers/workflow"
	"campussphere_backend/internals/middlewares/auth"
)

type ClubLeaderController struct {
	DB *gorm.DB
}

func NewClubLeaderController(db *gorm.DB) *ClubLeaderController {
	return &ClubLeaderController{DB: db}
}

func (ctrl *ClubLeaderController) ledClubIDs(leaderID uint) ([]uint, error) {
	var ids []uint
	err := ctrl.DB.Model(&clubModel.ClubModel{}).
		Where("secretary_id = ?", leaderID).
		Pluck("id", &ids).Error
	return ids, err
}

func (ctrl *ClubLeaderController) MyClubs(c *fiber.Ctx) error {
	leaderID := auth.PrincipalID(c, constants.RoleUser)

	var clubs []clubModel.ClubModel
	if err := ctrl.DB.Where("secretary_id = ?", leaderID).Find(&clubs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch clubs")
	}
	return helper.JsonOK(c, "Clubs fetched successfully", clubs)
}

func (ctrl *ClubLeaderController) PendingTagRequests(c *fiber.Ctx) error {
	leaderID := auth.PrincipalID(c, constants.RoleUser)

	ids, err := ctrl.ledClubIDs(leaderID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch requests")
	}

	type requestRow struct {
		RequestID   uint      `json:"request_id"`
		UserID      uint      `json:"user_id"`
		UserName    string    `json:"user_name"`
		ClubID      uint      `json:"club_id"`
		ClubName    string    `json:"club_name"`
		RequestedAt time.Time `json:"requested_at"`
	}
	var requests []requestRow
	if len(ids) > 0 {
		if err := ctrl.DB.Model(&clubModel.ClubTagRequestModel{}).
			Select("club_tag_requests.id AS request_id, club_tag_requests.user_id, users.name AS user_name, club_tag_requests.club_id, clubs.name AS club_name, club_tag_requests.requested_at").
			Joins("JOIN users ON users.id = club_tag_requests.user_id").
			Joins("JOIN clubs ON clubs.id = club_tag_requests.club_id").
			Where("club_tag_requests.club_id IN ? AND club_tag_requests.status = ?", ids, workflow.StatusPending).
			Order("club_tag_requests.requested_at asc").
			Scan(&requests).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch requests")
		}
	}

	return helper.JsonOK(c, "Pending tag requests fetched successfully", requests)
}

// ReviewTagRequest: approve bukan sekadar flip status. Approval juga
// meng-upsert membership terverifikasi untuk pasangan (user, club) itu,
// dalam transaksi yang sama.
func (ctrl *ClubLeaderController) ReviewTagRequest(c *fiber.Ctx) error {
	leaderID := auth.PrincipalID(c, constants.RoleUser)

	var input struct {
		RequestID uint   `json:"request_id" validate:"required"`
		Status    string `json:"status" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var req clubModel.ClubTagRequestModel
	if err := ctrl.DB.First(&req, input.RequestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to review request")
	}

	var club clubModel.ClubModel
	if err := ctrl.DB.First(&club, req.ClubID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to review request")
	}
	authorized := club.SecretaryID != nil && *club.SecretaryID == leaderID

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		return workflow.Review(tx, req.Status, input.Status,
			[]string{workflow.StatusApproved, workflow.StatusRejected},
			authorized,
			func(tx *gorm.DB) error {
				now := time.Now().UTC()
				res := tx.Model(&clubModel.ClubTagRequestModel{}).
					Where("id = ? AND status = ?", req.ID, workflow.StatusPending).
					Updates(map[string]any{
						"status":      input.Status,
						"reviewed_at": now,
						"reviewed_by": leaderID,
					})
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return workflow.ErrTerminalState
				}
				if input.Status != workflow.StatusApproved {
					return nil
				}

				membership := clubModel.ClubMembershipModel{
					UserID:     req.UserID,
					ClubID:     req.ClubID,
					IsVerified: true,
					VerifiedBy: &leaderID,
				}
				if err := tx.Create(&membership).Error; err != nil {
					if helper.IsUniqueViolation(err) {
						// Sudah member lewat jalur join langsung: naikkan jadi verified.
						return tx.Model(&clubModel.ClubMembershipModel{}).
							Where("user_id = ? AND club_id = ?", req.UserID, req.ClubID).
							Updates(map[string]any{"is_verified": true, "verified_by": leaderID}).Error
					}
					return err
				}
				return nil
			})
	})
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrUnauthorized):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
		case errors.Is(err, workflow.ErrInvalidDecision):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid status"})
		case errors.Is(err, workflow.ErrTerminalState):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": "Request already reviewed"})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to review request")
	}

	return c.JSON(fiber.Map{"success": true})
}

// VerifyMember menaikkan membership yang ada jadi verified tanpa lewat
// tag request.
func (ctrl *ClubLeaderController) VerifyMember(c *fiber.Ctx) error {
	leaderID := auth.PrincipalID(c, constants.RoleUser)

	var input struct {
		UserID uint `json:"user_id" validate:"required"`
		ClubID uint `json:"club_id" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var club clubModel.ClubModel
	if err := ctrl.DB.First(&club, input.ClubID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Club not found")
	}
	if club.SecretaryID == nil || *club.SecretaryID != leaderID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	res := ctrl.DB.Model(&clubModel.ClubMembershipModel{}).
		Where("user_id = ? AND club_id = ?", input.UserID, input.ClubID).
		Updates(map[string]any{"is_verified": true, "verified_by": leaderID})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to verify member")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Membership not found")
	}

	return c.JSON(fiber.Map{"success": true})
}
