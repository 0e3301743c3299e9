package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	userController "campussphere_backend/internals/features/users/user/controller"
	"campussphere_backend/internals/middlewares/auth"
)

func UserRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	user := app.Group("/user", auth.RequireSession(db, constants.RoleUser))
	user.Get("/profile", ctrl.GetProfile)
	user.Put("/profile", ctrl.UpdateProfile)
	user.Put("/password", ctrl.ChangePassword)
}
