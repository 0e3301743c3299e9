package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	adminController "campussphere_backend/internals/features/admin/controller"
	"campussphere_backend/internals/middlewares/auth"
)

func AdminRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := adminController.NewAdminController(db)

	admin := app.Group("/admin", auth.RequireSession(db, constants.RoleAdmin))
	admin.Get("/stats", ctrl.Stats)
	admin.Post("/clubs", ctrl.CreateClub)
	admin.Put("/clubs/:id", ctrl.UpdateClub)
	admin.Post("/faculty", ctrl.CreateFaculty)
	admin.Post("/alumni", ctrl.CreateAlumni)
	admin.Post("/bus-managers", ctrl.CreateBusManager)
	admin.Put("/events/:id/highlight", ctrl.HighlightEvent)
}
