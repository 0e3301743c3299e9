package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	alumniModel "campussphere_backend/internals/features/alumni/model"
	helper "campussphere_backend/internals/helpers"
	"campussphere_backend/internals/helpers/workflow"
	"campussphere_backend/internals/middlewares/auth"
)

var validate = validator.New()

type AlumniController struct {
	DB *gorm.DB
}

func NewAlumniController(db *gorm.DB) *AlumniController {
	return &AlumniController{DB: db}
}

/* ==========================
   DIRECTORY (student side)
========================== */

func (ctrl *AlumniController) GetAll(c *fiber.Ctx) error {
	var alumni []alumniModel.AlumniModel
	if err := ctrl.DB.Order("name asc").Find(&alumni).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch alumni")
	}
	return helper.JsonOK(c, "Alumni fetched successfully", alumni)
}

func (ctrl *AlumniController) GetByID(c *fiber.Ctx) error {
	alumniID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid alumni ID")
	}

	var alum alumniModel.AlumniModel
	if err := ctrl.DB.First(&alum, alumniID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Alumni not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch alumni")
	}
	return helper.JsonOK(c, "Alumni fetched successfully", alum)
}

/* ==========================
   CONTACT REQUEST WORKFLOW
========================== */

func (ctrl *AlumniController) RequestContact(c *fiber.Ctx) error {
	studentID := auth.PrincipalID(c, constants.RoleUser)
	alumniID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid alumni ID")
	}

	// Body opsional: request tanpa pesan tetap sah.
	var input struct {
		Message *string `json:"message" validate:"omitempty,max=500"`
	}
	_ = c.BodyParser(&input)
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var alum alumniModel.AlumniModel
	if err := ctrl.DB.First(&alum, alumniID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Alumni not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to submit request")
	}
	if !alum.AcceptsContactRequests {
		return helper.JsonError(c, fiber.StatusForbidden, "This alumni is not accepting contact requests")
	}

	req := alumniModel.AlumniContactRequestModel{
		StudentID: studentID,
		AlumniID:  uint(alumniID),
		Message:   input.Message,
	}
	if err := workflow.CreatePending(ctrl.DB, &req); err != nil {
		if errors.Is(err, workflow.ErrDuplicatePending) {
			return helper.JsonError(c, fiber.StatusConflict, "You already have a pending request for this alumni")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to submit request")
	}

	return helper.JsonCreated(c, "Contact request sent", fiber.Map{"request_id": req.ID})
}

func (ctrl *AlumniController) PendingContactRequests(c *fiber.Ctx) error {
	alumniID := auth.PrincipalID(c, constants.RoleAlumni)

	type requestRow struct {
		RequestID   uint      `json:"request_id"`
		StudentID   uint      `json:"student_id"`
		StudentName string    `json:"student_name"`
		Message     *string   `json:"message,omitempty"`
		RequestedAt time.Time `json:"requested_at"`
	}
	var requests []requestRow
	if err := ctrl.DB.Model(&alumniModel.AlumniContactRequestModel{}).
		Select("alumni_contact_requests.id AS request_id, alumni_contact_requests.student_id, users.name AS student_name, alumni_contact_requests.message, alumni_contact_requests.requested_at").
		Joins("JOIN users ON users.id = alumni_contact_requests.student_id").
		Where("alumni_contact_requests.alumni_id = ? AND alumni_contact_requests.status = ?", alumniID, workflow.StatusPending).
		Order("alumni_contact_requests.requested_at asc").
		Scan(&requests).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch requests")
	}

	return helper.JsonOK(c, "Pending contact requests fetched successfully", requests)
}

// RespondContact: reviewer sah satu-satunya adalah alumnus yang dituju
// request itu sendiri.
func (ctrl *AlumniController) RespondContact(c *fiber.Ctx) error {
	alumniID := auth.PrincipalID(c, constants.RoleAlumni)

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

	var req alumniModel.AlumniContactRequestModel
	if err := ctrl.DB.First(&req, input.RequestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to respond")
	}

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		return workflow.Review(tx, req.Status, input.Status,
			[]string{workflow.StatusAccepted, workflow.StatusRejected},
			req.AlumniID == alumniID,
			func(tx *gorm.DB) error {
				now := time.Now().UTC()
				res := tx.Model(&alumniModel.AlumniContactRequestModel{}).
					Where("id = ? AND status = ?", req.ID, workflow.StatusPending).
					Updates(map[string]any{
						"status":       input.Status,
						"responded_at": now,
					})
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return workflow.ErrTerminalState
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
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to respond")
	}

	return c.JSON(fiber.Map{"success": true})
}

/* ==========================
   ALUMNI PROFILE
========================== */

func (ctrl *AlumniController) UpdateProfile(c *fiber.Ctx) error {
	alumniID := auth.PrincipalID(c, constants.RoleAlumni)

	var input struct {
		CurrentDesignation     *string `json:"current_designation"`
		Company                *string `json:"company"`
		LinkedinProfile        *string `json:"linkedin_profile"`
		About                  *string `json:"about"`
		WorkExperience         *string `json:"work_experience"`
		Education              *string `json:"education"`
		Projects               *string `json:"projects"`
		Achievements           *string `json:"achievements"`
		AcceptsContactRequests *bool   `json:"accepts_contact_requests"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	updates := map[string]any{}
	if input.CurrentDesignation != nil {
		updates["current_designation"] = *input.CurrentDesignation
	}
	if input.Company != nil {
		updates["company"] = *input.Company
	}
	if input.LinkedinProfile != nil {
		updates["linkedin_profile"] = *input.LinkedinProfile
	}
	if input.About != nil {
		updates["about"] = *input.About
	}
	if input.WorkExperience != nil {
		updates["work_experience"] = *input.WorkExperience
	}
	if input.Education != nil {
		updates["education"] = *input.Education
	}
	if input.Projects != nil {
		updates["projects"] = *input.Projects
	}
	if input.Achievements != nil {
		updates["achievements"] = *input.Achievements
	}
	if input.AcceptsContactRequests != nil {
		updates["accepts_contact_requests"] = *input.AcceptsContactRequests
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctrl.DB.Model(&alumniModel.AlumniModel{}).
		Where("id = ?", alumniID).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	return helper.JsonUpdated(c, "Profile updated successfully", updates)
}
