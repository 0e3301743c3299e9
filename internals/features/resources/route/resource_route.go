package route

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/configs"
	"campussphere_backend/internals/constants"
	resourceController "campussphere_backend/internals/features/resources/controller"
	"campussphere_backend/internals/helpers/blobstore"
	"campussphere_backend/internals/middlewares/auth"
)

func ResourceRoutes(app *fiber.App, db *gorm.DB) {
	store, err := blobstore.NewLocalStore(configs.GetEnv("RESOURCE_DIR", "./uploads/resources"))
	if err != nil {
		log.Printf("[ERROR] resource store init failed: %v", err)
		return
	}
	ctrl := resourceController.NewResourceController(db, store)

	resources := app.Group("/resources", auth.RequireSession(db, constants.RoleUser))
	resources.Get("/", ctrl.GetAll)
	resources.Post("/", ctrl.Upload)
	resources.Get("/:id/download", ctrl.Download)
}
