package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/configs"
	"campussphere_backend/internals/constants"
	assistantController "campussphere_backend/internals/features/assistant/controller"
	assistantService "campussphere_backend/internals/features/assistant/service"
	"campussphere_backend/internals/middlewares/auth"
)

func AssistantRoutes(app *fiber.App, db *gorm.DB) {
	var gen assistantService.TextGenerator
	if key := configs.GetEnv("GEMINI_API_KEY", ""); key != "" {
		gen = assistantService.NewGeminiClient(key)
	} else {
		gen = assistantService.StaticResponder{}
	}
	ctrl := assistantController.NewAssistantController(db, gen)

	assistant := app.Group("/assistant", auth.RequireSession(db, constants.RoleUser))
	assistant.Post("/chat", ctrl.Chat)
	assistant.Get("/history", ctrl.History)
	assistant.Get("/practice", ctrl.PracticeQuestions)
	assistant.Post("/practice/:id/answer", ctrl.SubmitAnswer)
}
