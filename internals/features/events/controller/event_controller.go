package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	clubModel "campussphere_backend/internals/features/clubs/model"
	eventModel "campussphere_backend/internals/features/events/model"
	helper "campussphere_backend/internals/helpers"
	"campussphere_backend/internals/helpers/workflow"
	"campussphere_backend/internals/middlewares/auth"
)

var validate = validator.New()

type EventController struct {
	DB *gorm.DB
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{DB: db}
}

/* ==========================
   BROWSE + ENROLL (student)
========================== */

func (ctrl *EventController) GetAll(c *fiber.Ctx) error {
	var events []eventModel.EventModel
	q := ctrl.DB.Order("event_date asc")
	if c.Query("upcoming") == "true" {
		q = q.Where("event_date >= ?", time.Now().UTC())
	}
	if err := q.Find(&events).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch events")
	}
	return helper.JsonOK(c, "Events fetched successfully", events)
}

func (ctrl *EventController) GetByID(c *fiber.Ctx) error {
	eventID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var event eventModel.EventModel
	if err := ctrl.DB.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch event")
	}
	return helper.JsonOK(c, "Event fetched successfully", event)
}

// Enroll: status awal approved, kecuali event selective -> pending dan
// menunggu review pembuat event. Double-enroll ditutup constraint unik.
func (ctrl *EventController) Enroll(c *fiber.Ctx) error {
	userID := auth.PrincipalID(c, constants.RoleUser)

	var input struct {
		EventID  uint           `json:"event_id" validate:"required"`
		FormData datatypes.JSON `json:"form_data"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var event eventModel.EventModel
	if err := ctrl.DB.First(&event, input.EventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to enroll")
	}
	if event.ParticipationFormRequired && len(input.FormData) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "This event requires a participation form")
	}

	status := workflow.StatusApproved
	if event.IsSelective {
		status = workflow.StatusPending
	}

	participation := eventModel.EventParticipationModel{
		EventID:  event.ID,
		UserID:   userID,
		FormData: input.FormData,
		Status:   status,
	}
	if err := ctrl.DB.Create(&participation).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": "Already enrolled"})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to enroll")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":          true,
		"participation_id": participation.ID,
		"status":           participation.Status,
	})
}

func (ctrl *EventController) MyEnrollments(c *fiber.Ctx) error {
	userID := auth.PrincipalID(c, constants.RoleUser)

	var rows []eventModel.EventParticipationModel
	if err := ctrl.DB.Where("user_id = ?", userID).
		Order("enrolled_at desc").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch enrollments")
	}
	return helper.JsonOK(c, "Enrollments fetched successfully", rows)
}

/* ==========================
   EVENT MANAGEMENT (club leader)
========================== */

func (ctrl *EventController) Create(c *fiber.Ctx) error {
	leaderID := auth.PrincipalID(c, constants.RoleUser)

	var input struct {
		Title                     string         `json:"title" validate:"required,max=200"`
		Description               *string        `json:"description"`
		EventDate                 time.Time      `json:"event_date" validate:"required"`
		Venue                     *string        `json:"venue" validate:"omitempty,max=100"`
		RegistrationLink          *string        `json:"registration_link" validate:"omitempty,max=255"`
		EventType                 *string        `json:"event_type" validate:"omitempty,max=50"`
		ClubID                    uint           `json:"club_id" validate:"required"`
		ParticipationFormRequired bool           `json:"participation_form_required"`
		IsSelective               bool           `json:"is_selective"`
		FormFields                datatypes.JSON `json:"form_fields"`
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

	event := eventModel.EventModel{
		Title:                     input.Title,
		Description:               input.Description,
		EventDate:                 input.EventDate,
		Venue:                     input.Venue,
		RegistrationLink:          input.RegistrationLink,
		EventType:                 input.EventType,
		ClubID:                    &input.ClubID,
		CreatedBy:                 &leaderID,
		ParticipationFormRequired: input.ParticipationFormRequired,
		IsSelective:               input.IsSelective,
		FormFields:                input.FormFields,
	}
	if err := ctrl.DB.Create(&event).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create event")
	}

	return helper.JsonCreated(c, "Event created successfully", event)
}

func (ctrl *EventController) Participants(c *fiber.Ctx) error {
	leaderID := auth.PrincipalID(c, constants.RoleUser)
	eventID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var event eventModel.EventModel
	if err := ctrl.DB.First(&event, eventID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}
	if event.CreatedBy == nil || *event.CreatedBy != leaderID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	type participantRow struct {
		ParticipationID uint           `json:"participation_id"`
		UserID          uint           `json:"user_id"`
		Name            string         `json:"name"`
		Status          string         `json:"status"`
		FormData        datatypes.JSON `json:"form_data,omitempty"`
		EnrolledAt      time.Time      `json:"enrolled_at"`
	}
	var participants []participantRow
	if err := ctrl.DB.Model(&eventModel.EventParticipationModel{}).
		Select("event_participations.id AS participation_id, event_participations.user_id, users.name, event_participations.status, event_participations.form_data, event_participations.enrolled_at").
		Joins("JOIN users ON users.id = event_participations.user_id").
		Where("event_participations.event_id = ?", eventID).
		Order("event_participations.enrolled_at asc").
		Scan(&participants).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch participants")
	}

	return helper.JsonOK(c, "Participants fetched successfully", participants)
}

// ReviewParticipation: hanya pembuat event yang boleh memutuskan
// pendaftaran selective.
func (ctrl *EventController) ReviewParticipation(c *fiber.Ctx) error {
	leaderID := auth.PrincipalID(c, constants.RoleUser)

	var input struct {
		ParticipationID uint   `json:"participation_id" validate:"required"`
		Status          string `json:"status" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var participation eventModel.EventParticipationModel
	if err := ctrl.DB.First(&participation, input.ParticipationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Participation not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to review participation")
	}

	var event eventModel.EventModel
	if err := ctrl.DB.First(&event, participation.EventID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to review participation")
	}
	authorized := event.CreatedBy != nil && *event.CreatedBy == leaderID

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		return workflow.Review(tx, participation.Status, input.Status,
			[]string{workflow.StatusApproved, workflow.StatusRejected},
			authorized,
			func(tx *gorm.DB) error {
				res := tx.Model(&eventModel.EventParticipationModel{}).
					Where("id = ? AND status = ?", participation.ID, workflow.StatusPending).
					Updates(map[string]any{
						"status":      input.Status,
						"reviewed_by": leaderID,
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
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": "Participation already reviewed"})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to review participation")
	}

	return c.JSON(fiber.Map{"success": true})
}
