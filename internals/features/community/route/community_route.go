package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	communityController "campussphere_backend/internals/features/community/controller"
	"campussphere_backend/internals/middlewares/auth"
)

func CommunityRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := communityController.NewCommunityController(db)

	community := app.Group("/community", auth.RequireSession(db, constants.RoleUser))
	community.Get("/posts", ctrl.GetPosts)
	community.Post("/posts", ctrl.CreatePost)
	community.Delete("/post/:id", ctrl.DeletePost)
	community.Post("/post/:id/like", ctrl.ToggleLike)
}
