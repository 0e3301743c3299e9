package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	clubController "campussphere_backend/internals/features/clubs/controller"
	"campussphere_backend/internals/middlewares/auth"
)

func ClubRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := clubController.NewClubController(db)
	leaderCtrl := clubController.NewClubLeaderController(db)

	club := app.Group("/club", auth.RequireSession(db, constants.RoleUser))
	club.Get("/", ctrl.GetAll)
	club.Get("/:id", ctrl.GetByID)
	club.Post("/:id/join", ctrl.Join)
	club.Post("/:id/leave", ctrl.Leave)
	club.Post("/:id/request-tag", ctrl.RequestTag)

	app.Get("/user/tag-requests", auth.RequireSession(db, constants.RoleUser), ctrl.MyTagRequests)

	leader := app.Group("/club-leader",
		auth.RequireSession(db, constants.RoleUser),
		auth.ClubLeaderGate(db),
	)
	leader.Get("/clubs", leaderCtrl.MyClubs)
	leader.Get("/tag-requests", leaderCtrl.PendingTagRequests)
	leader.Post("/review-tag-request", leaderCtrl.ReviewTagRequest)
	leader.Post("/verify-member", leaderCtrl.VerifyMember)
}
