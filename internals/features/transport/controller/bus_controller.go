package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	transportModel "campussphere_backend/internals/features/transport/model"
	userModel "campussphere_backend/internals/features/users/user/model"
	helper "campussphere_backend/internals/helpers"
	"campussphere_backend/internals/middlewares/auth"
)

type BusController struct {
	DB *gorm.DB
}

func NewBusController(db *gorm.DB) *BusController {
	return &BusController{DB: db}
}

func (ctrl *BusController) GetAll(c *fiber.Ctx) error {
	var buses []transportModel.BusModel
	if err := ctrl.DB.Where("is_active = ?", true).
		Order("bus_number asc").Find(&buses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch buses")
	}
	return helper.JsonOK(c, "Buses fetched successfully", buses)
}

func (ctrl *BusController) GetByID(c *fiber.Ctx) error {
	busID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid bus ID")
	}

	var bus transportModel.BusModel
	if err := ctrl.DB.First(&bus, busID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Bus not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch bus")
	}

	var stops []transportModel.BusStopModel
	if err := ctrl.DB.Where("bus_id = ?", busID).
		Order("stop_order asc").Find(&stops).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch bus")
	}

	return helper.JsonOK(c, "Bus fetched successfully", fiber.Map{
		"bus":   bus,
		"stops": stops,
	})
}

// GetLocation read murni. lastUpdated null sampai laporan pertama.
func (ctrl *BusController) GetLocation(c *fiber.Ctx) error {
	busID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid bus ID")
	}

	var bus transportModel.BusModel
	if err := ctrl.DB.First(&bus, busID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Bus not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch location")
	}

	var lastUpdated *string
	if bus.LastUpdated != nil {
		s := bus.LastUpdated.UTC().Format(time.RFC3339)
		lastUpdated = &s
	}

	return c.JSON(fiber.Map{
		"lat":          bus.CurrentLat,
		"lng":          bus.CurrentLng,
		"last_updated": lastUpdated,
	})
}

// SelectBus menyimpan pilihan bus + stop student untuk tampilan tracking.
func (ctrl *BusController) SelectBus(c *fiber.Ctx) error {
	userID := auth.PrincipalID(c, constants.RoleUser)

	var input struct {
		BusID uint    `json:"bus_id" validate:"required"`
		Stop  *string `json:"stop" validate:"omitempty,max=100"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var count int64
	if err := ctrl.DB.Model(&transportModel.BusModel{}).Where("id = ?", input.BusID).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to select bus")
	}
	if count == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Bus not found")
	}

	updates := map[string]any{"selected_bus_id": input.BusID}
	if input.Stop != nil {
		updates["selected_stop"] = *input.Stop
	}
	if err := ctrl.DB.Model(&userModel.UserModel{}).
		Where("id = ?", userID).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to select bus")
	}

	return helper.JsonUpdated(c, "Bus selected successfully", fiber.Map{"bus_id": input.BusID})
}
