package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	transportModel "campussphere_backend/internals/features/transport/model"
	helper "campussphere_backend/internals/helpers"
)

type BusManagerController struct {
	DB *gorm.DB
}

func NewBusManagerController(db *gorm.DB) *BusManagerController {
	return &BusManagerController{DB: db}
}

/* ==========================
   BUS CRUD
========================== */

func (ctrl *BusManagerController) CreateBus(c *fiber.Ctx) error {
	var input struct {
		BusNumber        string  `json:"bus_number" validate:"required,max=20"`
		RouteDescription *string `json:"route_description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	bus := transportModel.BusModel{
		BusNumber:        input.BusNumber,
		RouteDescription: input.RouteDescription,
	}
	if err := ctrl.DB.Create(&bus).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Bus number already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create bus")
	}

	return helper.JsonCreated(c, "Bus created successfully", bus)
}

func (ctrl *BusManagerController) UpdateBus(c *fiber.Ctx) error {
	busID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid bus ID")
	}

	var input struct {
		RouteDescription *string `json:"route_description"`
		IsActive         *bool   `json:"is_active"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	updates := map[string]any{}
	if input.RouteDescription != nil {
		updates["route_description"] = *input.RouteDescription
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	res := ctrl.DB.Model(&transportModel.BusModel{}).Where("id = ?", busID).Updates(updates)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update bus")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Bus not found")
	}

	return helper.JsonUpdated(c, "Bus updated successfully", updates)
}

// SetStops mengganti seluruh daftar stop bus secara atomik. stop_order
// unik per bus dijaga constraint uq_bus_stop_order.
func (ctrl *BusManagerController) SetStops(c *fiber.Ctx) error {
	busID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid bus ID")
	}

	var input struct {
		Stops []struct {
			StopName  string  `json:"stop_name" validate:"required,max=100"`
			StopOrder int     `json:"stop_order" validate:"min=1"`
			Lat       float64 `json:"lat" validate:"min=-90,max=90"`
			Lng       float64 `json:"lng" validate:"min=-180,max=180"`
		} `json:"stops" validate:"required,dive"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var count int64
	if err := ctrl.DB.Model(&transportModel.BusModel{}).Where("id = ?", busID).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to set stops")
	}
	if count == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Bus not found")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bus_id = ?", busID).Delete(&transportModel.BusStopModel{}).Error; err != nil {
			return err
		}
		for _, s := range input.Stops {
			stop := transportModel.BusStopModel{
				BusID:     uint(busID),
				StopName:  s.StopName,
				StopOrder: s.StopOrder,
				Lat:       s.Lat,
				Lng:       s.Lng,
			}
			if err := tx.Create(&stop).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Duplicate stop order")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to set stops")
	}

	return helper.JsonUpdated(c, "Stops updated successfully", nil)
}

// DeleteBus menghapus bus beserta stop-nya dan melepas driver yang masih
// terpasang, semuanya dalam satu transaksi.
func (ctrl *BusManagerController) DeleteBus(c *fiber.Ctx) error {
	busID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid bus ID")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bus_id = ?", busID).Delete(&transportModel.BusStopModel{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&transportModel.DriverModel{}).
			Where("assigned_bus_id = ?", busID).
			Update("assigned_bus_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", busID).Delete(&transportModel.BusModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Bus not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete bus")
	}

	return helper.JsonDeleted(c, "Bus deleted successfully", fiber.Map{"bus_id": busID})
}

/* ==========================
   DRIVER MANAGEMENT
========================== */

func (ctrl *BusManagerController) GetDrivers(c *fiber.Ctx) error {
	var drivers []transportModel.DriverModel
	if err := ctrl.DB.Order("name asc").Find(&drivers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch drivers")
	}
	return helper.JsonOK(c, "Drivers fetched successfully", drivers)
}

func (ctrl *BusManagerController) CreateDriver(c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name" validate:"required,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	driver := transportModel.DriverModel{
		Name:         input.Name,
		Email:        &input.Email,
		PasswordHash: hash,
	}
	if err := ctrl.DB.Create(&driver).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create driver")
	}

	return helper.JsonCreated(c, "Driver created successfully", driver)
}

// DeleteDriver menghapus driver dan mengosongkan driver_id bus yang
// dipegangnya supaya tidak ada referensi menggantung.
func (ctrl *BusManagerController) DeleteDriver(c *fiber.Ctx) error {
	driverID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid driver ID")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&transportModel.BusModel{}).
			Where("driver_id = ?", driverID).
			Update("driver_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", driverID).Delete(&transportModel.DriverModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Driver not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete driver")
	}

	return helper.JsonDeleted(c, "Driver deleted successfully", fiber.Map{"driver_id": driverID})
}

// AssignDriver memasangkan driver dengan bus dua arah: drivers.assigned_bus_id
// dan buses.driver_id. Satu driver maksimal satu bus.
func (ctrl *BusManagerController) AssignDriver(c *fiber.Ctx) error {
	var input struct {
		DriverID uint  `json:"driver_id" validate:"required"`
		BusID    *uint `json:"bus_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var driver transportModel.DriverModel
	if err := ctrl.DB.First(&driver, input.DriverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Driver not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to assign driver")
	}

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		// Lepas assignment lama di kedua sisi.
		if driver.AssignedBusID != nil {
			if err := tx.Model(&transportModel.BusModel{}).
				Where("id = ? AND driver_id = ?", *driver.AssignedBusID, driver.ID).
				Update("driver_id", nil).Error; err != nil {
				return err
			}
		}
		if input.BusID == nil {
			return tx.Model(&transportModel.DriverModel{}).
				Where("id = ?", driver.ID).
				Update("assigned_bus_id", nil).Error
		}

		var bus transportModel.BusModel
		if err := tx.First(&bus, *input.BusID).Error; err != nil {
			return err
		}
		if err := tx.Model(&transportModel.DriverModel{}).
			Where("id = ?", driver.ID).
			Update("assigned_bus_id", bus.ID).Error; err != nil {
			return err
		}
		return tx.Model(&transportModel.BusModel{}).
			Where("id = ?", bus.ID).
			Update("driver_id", driver.ID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Bus not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to assign driver")
	}

	return helper.JsonUpdated(c, "Driver assignment updated", fiber.Map{
		"driver_id": input.DriverID,
		"bus_id":    input.BusID,
	})
}
