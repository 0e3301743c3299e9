package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	transportController "campussphere_backend/internals/features/transport/controller"
	"campussphere_backend/internals/middlewares/auth"
)

func TransportRoutes(app *fiber.App, db *gorm.DB) {
	busCtrl := transportController.NewBusController(db)
	driverCtrl := transportController.NewDriverController(db)
	managerCtrl := transportController.NewBusManagerController(db)

	// Sisi student: daftar bus, detail, lokasi live (poll), pilih bus.
	bus := app.Group("/bus", auth.RequireSession(db, constants.RoleUser))
	bus.Get("/", busCtrl.GetAll)
	bus.Get("/:id", busCtrl.GetByID)
	bus.Get("/:id/location", busCtrl.GetLocation)
	app.Post("/user/select-bus", auth.RequireSession(db, constants.RoleUser), busCtrl.SelectBus)

	// Sisi driver
	driver := app.Group("/driver", auth.RequireSession(db, constants.RoleDriver))
	driver.Get("/bus", driverCtrl.MyBus)
	driver.Post("/toggle-sharing", driverCtrl.ToggleSharing)
	driver.Post("/update-location", driverCtrl.UpdateLocation)

	// Sisi bus manager
	manager := app.Group("/bus-manager", auth.RequireSession(db, constants.RoleBusManager))
	manager.Post("/buses", managerCtrl.CreateBus)
	manager.Put("/buses/:id", managerCtrl.UpdateBus)
	manager.Put("/buses/:id/stops", managerCtrl.SetStops)
	manager.Delete("/buses/:id", managerCtrl.DeleteBus)
	manager.Get("/drivers", managerCtrl.GetDrivers)
	manager.Post("/drivers", managerCtrl.CreateDriver)
	manager.Delete("/drivers/:id", managerCtrl.DeleteDriver)
	manager.Post("/assign-driver", managerCtrl.AssignDriver)
}
