package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	transportModel "campussphere_backend/internals/features/transport/model"
	helper "campussphere_backend/internals/helpers"
	"campussphere_backend/internals/middlewares/auth"
)

var validate = validator.New()

type DriverController struct {
	DB *gorm.DB
}

func NewDriverController(db *gorm.DB) *DriverController {
	return &DriverController{DB: db}
}

// ToggleSharing flip murni flag is_sharing_location, tanpa menyentuh Bus.
func (ctrl *DriverController) ToggleSharing(c *fiber.Ctx) error {
	driverID := auth.PrincipalID(c, constants.RoleDriver)

	var driver transportModel.DriverModel
	if err := ctrl.DB.First(&driver, driverID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Driver not found")
	}

	newState := !driver.IsSharingLocation
	if err := ctrl.DB.Model(&driver).Update("is_sharing_location", newState).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to toggle sharing")
	}

	return c.JSON(fiber.Map{"success": true, "is_sharing_location": newState})
}

// UpdateLocation last-write-wins: laporan basi atau out-of-order tetap
// menimpa, tanpa guard sequence. Driver tanpa bus: sukses tanpa mutasi.
func (ctrl *DriverController) UpdateLocation(c *fiber.Ctx) error {
	driverID := auth.PrincipalID(c, constants.RoleDriver)

	var input struct {
		Lat float64 `json:"lat" validate:"min=-90,max=90"`
		Lng float64 `json:"lng" validate:"min=-180,max=180"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var driver transportModel.DriverModel
	if err := ctrl.DB.First(&driver, driverID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Driver not found")
	}
	if driver.AssignedBusID == nil {
		return c.JSON(fiber.Map{"success": true})
	}

	now := time.Now().UTC()
	if err := ctrl.DB.Model(&transportModel.BusModel{}).
		Where("id = ?", *driver.AssignedBusID).
		Updates(map[string]any{
			"current_lat":  input.Lat,
			"current_lng":  input.Lng,
			"last_updated": now,
		}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update location")
	}

	return c.JSON(fiber.Map{"success": true})
}

func (ctrl *DriverController) MyBus(c *fiber.Ctx) error {
	driverID := auth.PrincipalID(c, constants.RoleDriver)

	var driver transportModel.DriverModel
	if err := ctrl.DB.First(&driver, driverID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Driver not found")
	}
	if driver.AssignedBusID == nil {
		return helper.JsonOK(c, "No bus assigned", nil)
	}

	var bus transportModel.BusModel
	if err := ctrl.DB.First(&bus, *driver.AssignedBusID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonOK(c, "No bus assigned", nil)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch bus")
	}

	var stops []transportModel.BusStopModel
	if err := ctrl.DB.Where("bus_id = ?", bus.ID).
		Order("stop_order asc").Find(&stops).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch bus")
	}

	return helper.JsonOK(c, "Bus fetched successfully", fiber.Map{
		"bus":   bus,
		"stops": stops,
	})
}
