package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	alumniModel "campussphere_backend/internals/features/alumni/model"
	helper "campussphere_backend/internals/helpers"
	"campussphere_backend/internals/helpers/workflow"
	"campussphere_backend/internals/middlewares/auth"
)

type AlumniChatController struct {
	DB *gorm.DB
}

func NewAlumniChatController(db *gorm.DB) *AlumniChatController {
	return &AlumniChatController{DB: db}
}

// contactAccepted: chat hanya terbuka untuk pasangan dengan contact
// request berstatus accepted.
func (ctrl *AlumniChatController) contactAccepted(studentID, alumniID uint) (bool, error) {
	var count int64
	err := ctrl.DB.Model(&alumniModel.AlumniContactRequestModel{}).
		Where("student_id = ? AND alumni_id = ? AND status = ?", studentID, alumniID, workflow.StatusAccepted).
		Count(&count).Error
	return count > 0, err
}

func (ctrl *AlumniChatController) send(c *fiber.Ctx, studentID, alumniID uint, senderType string) error {
	var input struct {
		Message string `json:"message" validate:"required,max=2000"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	ok, err := ctrl.contactAccepted(studentID, alumniID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to send message")
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "Contact request not accepted")
	}

	msg := alumniModel.AlumniChatModel{
		AlumniID:   alumniID,
		StudentID:  studentID,
		SenderType: senderType,
		Message:    input.Message,
	}
	if err := ctrl.DB.Create(&msg).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to send message")
	}

	return helper.JsonCreated(c, "Message sent", msg)
}

func (ctrl *AlumniChatController) history(c *fiber.Ctx, studentID, alumniID uint, readerType string) error {
	ok, err := ctrl.contactAccepted(studentID, alumniID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch messages")
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "Contact request not accepted")
	}

	var messages []alumniModel.AlumniChatModel
	if err := ctrl.DB.
		Where("student_id = ? AND alumni_id = ?", studentID, alumniID).
		Order("timestamp asc").
		Find(&messages).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch messages")
	}

	// Pesan dari lawan bicara ditandai terbaca saat history dibuka.
	senderOther := "student"
	if readerType == "student" {
		senderOther = "alumni"
	}
	if err := ctrl.DB.Model(&alumniModel.AlumniChatModel{}).
		Where("student_id = ? AND alumni_id = ? AND sender_type = ? AND is_read = ?", studentID, alumniID, senderOther, false).
		Update("is_read", true).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch messages")
	}

	return helper.JsonOK(c, "Messages fetched successfully", messages)
}

/* ==========================
   STUDENT SIDE
========================== */

func (ctrl *AlumniChatController) StudentSend(c *fiber.Ctx) error {
	studentID := auth.PrincipalID(c, constants.RoleUser)
	alumniID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid alumni ID")
	}
	return ctrl.send(c, studentID, uint(alumniID), "student")
}

func (ctrl *AlumniChatController) StudentHistory(c *fiber.Ctx) error {
	studentID := auth.PrincipalID(c, constants.RoleUser)
	alumniID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid alumni ID")
	}
	return ctrl.history(c, studentID, uint(alumniID), "student")
}

/* ==========================
   ALUMNI SIDE
========================== */

func (ctrl *AlumniChatController) AlumniSend(c *fiber.Ctx) error {
	alumniID := auth.PrincipalID(c, constants.RoleAlumni)
	studentID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student ID")
	}
	return ctrl.send(c, uint(studentID), alumniID, "alumni")
}

func (ctrl *AlumniChatController) AlumniHistory(c *fiber.Ctx) error {
	alumniID := auth.PrincipalID(c, constants.RoleAlumni)
	studentID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student ID")
	}
	return ctrl.history(c, uint(studentID), alumniID, "alumni")
}
