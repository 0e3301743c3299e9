package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	eventController "campussphere_backend/internals/features/events/controller"
	"campussphere_backend/internals/middlewares/auth"
)

func EventRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := eventController.NewEventController(db)

	events := app.Group("/events", auth.RequireSession(db, constants.RoleUser))
	events.Get("/", ctrl.GetAll)
	events.Get("/:id", ctrl.GetByID)

	student := app.Group("/student", auth.RequireSession(db, constants.RoleUser))
	student.Post("/enroll-event", ctrl.Enroll)
	student.Get("/enrollments", ctrl.MyEnrollments)

	leader := app.Group("/club-leader",
		auth.RequireSession(db, constants.RoleUser),
		auth.ClubLeaderGate(db),
	)
	leader.Post("/events", ctrl.Create)
	leader.Get("/events/:id/participants", ctrl.Participants)
	leader.Post("/review-participation", ctrl.ReviewParticipation)
}
