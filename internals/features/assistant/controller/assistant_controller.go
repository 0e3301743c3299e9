package controller

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	assistantModel "campussphere_backend/internals/features/assistant/model"
	assistantService "campussphere_backend/internals/features/assistant/service"
	userModel "campussphere_backend/internals/features/users/user/model"
	helper "campussphere_backend/internals/helpers"
	"campussphere_backend/internals/middlewares/auth"
)

var validate = validator.New()

type AssistantController struct {
	DB        *gorm.DB
	Generator assistantService.TextGenerator
}

func NewAssistantController(db *gorm.DB, gen assistantService.TextGenerator) *AssistantController {
	return &AssistantController{DB: db, Generator: gen}
}

// Chat: error dari layanan AI ditangkap di sini dan diubah jadi respons
// JSON, tidak pernah menjatuhkan handler.
func (ctrl *AssistantController) Chat(c *fiber.Ctx) error {
	userID := auth.PrincipalID(c, constants.RoleUser)

	var input struct {
		Question string `json:"question" validate:"required,max=4000"`
		Mode     string `json:"mode" validate:"omitempty,oneof=normal tutor exam"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if input.Mode == "" {
		input.Mode = "normal"
	}

	var user userModel.UserModel
	userContext := ""
	if err := ctrl.DB.First(&user, userID).Error; err == nil {
		parts := []string{}
		if user.Course != nil {
			parts = append(parts, *user.Course)
		}
		if user.Branch != nil {
			parts = append(parts, *user.Branch)
		}
		if user.Year != nil {
			parts = append(parts, fmt.Sprintf("year %d", *user.Year))
		}
		userContext = strings.Join(parts, ", ")
	}

	answer, err := ctrl.Generator.Generate(c.Context(), input.Question, input.Mode, userContext)
	if err != nil {
		log.Printf("[WARN] assistant generate failed for user %d: %v", userID, err)
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Assistant is unavailable right now. Please try again later")
	}

	history := assistantModel.ChatHistoryModel{
		UserID:   userID,
		Mode:     input.Mode,
		Question: input.Question,
		Answer:   answer,
	}
	if err := ctrl.DB.Create(&history).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save chat")
	}

	// Mode terakhir diingat per user.
	pref := assistantModel.UserPreferencesModel{UserID: userID, LastMode: input.Mode}
	if err := ctrl.DB.Where("user_id = ?", userID).First(&assistantModel.UserPreferencesModel{}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = ctrl.DB.Create(&pref).Error
		}
	} else {
		_ = ctrl.DB.Model(&assistantModel.UserPreferencesModel{}).
			Where("user_id = ?", userID).
			Update("last_mode", input.Mode).Error
	}

	return helper.JsonOK(c, "Answer generated", fiber.Map{
		"answer": answer,
		"mode":   input.Mode,
	})
}

func (ctrl *AssistantController) History(c *fiber.Ctx) error {
	userID := auth.PrincipalID(c, constants.RoleUser)

	var history []assistantModel.ChatHistoryModel
	if err := ctrl.DB.Where("user_id = ?", userID).
		Order("timestamp desc").Limit(50).Find(&history).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch history")
	}
	return helper.JsonOK(c, "History fetched successfully", history)
}

/* ==========================
   PRACTICE QUESTIONS
========================== */

func (ctrl *AssistantController) PracticeQuestions(c *fiber.Ctx) error {
	q := ctrl.DB.Order("id desc").Limit(20)
	if subject := c.Query("subject"); subject != "" {
		q = q.Where("subject = ?", subject)
	}
	if difficulty := c.Query("difficulty"); difficulty != "" {
		q = q.Where("difficulty = ?", difficulty)
	}

	var questions []assistantModel.PracticeQuestionModel
	if err := q.Find(&questions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch questions")
	}
	return helper.JsonOK(c, "Practice questions fetched successfully", questions)
}

// SubmitAnswer hanya membandingkan string jawaban, case-insensitive.
func (ctrl *AssistantController) SubmitAnswer(c *fiber.Ctx) error {
	questionID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid question ID")
	}

	var input struct {
		Answer string `json:"answer" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var question assistantModel.PracticeQuestionModel
	if err := ctrl.DB.First(&question, questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Question not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check answer")
	}

	correct := strings.EqualFold(strings.TrimSpace(input.Answer), strings.TrimSpace(question.CorrectAnswer))
	return c.JSON(fiber.Map{
		"success": true,
		"correct": correct,
	})
}
