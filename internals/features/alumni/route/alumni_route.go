package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	alumniController "campussphere_backend/internals/features/alumni/controller"
	"campussphere_backend/internals/middlewares/auth"
)

func AlumniRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := alumniController.NewAlumniController(db)
	chatCtrl := alumniController.NewAlumniChatController(db)

	// Sisi student
	dir := app.Group("/alumni-directory", auth.RequireSession(db, constants.RoleUser))
	dir.Get("/", ctrl.GetAll)
	dir.Get("/:id", ctrl.GetByID)
	dir.Post("/:id/contact-request", ctrl.RequestContact)
	dir.Post("/:id/chat", chatCtrl.StudentSend)
	dir.Get("/:id/chat", chatCtrl.StudentHistory)

	// Sisi alumni
	alumni := app.Group("/alumni", auth.RequireSession(db, constants.RoleAlumni))
	alumni.Get("/contact-requests", ctrl.PendingContactRequests)
	alumni.Post("/respond-contact", ctrl.RespondContact)
	alumni.Put("/profile", ctrl.UpdateProfile)
	alumni.Post("/chat/:id", chatCtrl.AlumniSend)
	alumni.Get("/chat/:id", chatCtrl.AlumniHistory)
}
