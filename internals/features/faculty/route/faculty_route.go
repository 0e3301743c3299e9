package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	facultyController "campussphere_backend/internals/features/faculty/controller"
	"campussphere_backend/internals/middlewares/auth"
)

func FacultyRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := facultyController.NewFacultyController(db)

	// Directory dibaca student.
	dir := app.Group("/faculty-directory", auth.RequireSession(db, constants.RoleUser))
	dir.Get("/", ctrl.GetAll)
	dir.Get("/:id", ctrl.GetByID)

	// Self service faculty.
	faculty := app.Group("/faculty", auth.RequireSession(db, constants.RoleFaculty))
	faculty.Put("/profile", ctrl.UpdateProfile)
	faculty.Post("/timetable", ctrl.AddTimetableEntry)
	faculty.Delete("/timetable/:id", ctrl.DeleteTimetableEntry)
	faculty.Post("/education", ctrl.AddEducation)
}
