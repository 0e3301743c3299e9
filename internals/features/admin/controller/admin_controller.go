package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	alumniModel "campussphere_backend/internals/features/alumni/model"
	clubModel "campussphere_backend/internals/features/clubs/model"
	communityModel "campussphere_backend/internals/features/community/model"
	eventModel "campussphere_backend/internals/features/events/model"
	facultyModel "campussphere_backend/internals/features/faculty/model"
	transportModel "campussphere_backend/internals/features/transport/model"
	userModel "campussphere_backend/internals/features/users/user/model"
	helper "campussphere_backend/internals/helpers"
)

var validate = validator.New()

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

func (ctrl *AdminController) Stats(c *fiber.Ctx) error {
	counts := map[string]int64{}
	for name, m := range map[string]any{
		"users":   &userModel.UserModel{},
		"clubs":   &clubModel.ClubModel{},
		"events":  &eventModel.EventModel{},
		"alumni":  &alumniModel.AlumniModel{},
		"faculty": &facultyModel.FacultyModel{},
		"buses":   &transportModel.BusModel{},
		"posts":   &communityModel.CommunityPostModel{},
	} {
		var n int64
		if err := ctrl.DB.Model(m).Count(&n).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch stats")
		}
		counts[name] = n
	}
	return helper.JsonOK(c, "Stats fetched successfully", counts)
}

/* ==========================
   CLUB MANAGEMENT
========================== */

func (ctrl *AdminController) CreateClub(c *fiber.Ctx) error {
	var input struct {
		Name        string  `json:"name" validate:"required,max=100"`
		Description *string `json:"description"`
		ClubType    *string `json:"club_type" validate:"omitempty,max=50"`
		SecretaryID *uint   `json:"secretary_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if input.SecretaryID != nil {
		var count int64
		if err := ctrl.DB.Model(&userModel.UserModel{}).Where("id = ?", *input.SecretaryID).Count(&count).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create club")
		}
		if count == 0 {
			return helper.JsonError(c, fiber.StatusNotFound, "Secretary user not found")
		}
	}

	club := clubModel.ClubModel{
		Name:        input.Name,
		Description: input.Description,
		ClubType:    input.ClubType,
		SecretaryID: input.SecretaryID,
	}
	if err := ctrl.DB.Create(&club).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create club")
	}

	return helper.JsonCreated(c, "Club created successfully", club)
}

func (ctrl *AdminController) UpdateClub(c *fiber.Ctx) error {
	clubID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid club ID")
	}

	var input struct {
		Name        *string `json:"name" validate:"omitempty,max=100"`
		Description *string `json:"description"`
		ClubType    *string `json:"club_type" validate:"omitempty,max=50"`
		SecretaryID *uint   `json:"secretary_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.ClubType != nil {
		updates["club_type"] = *input.ClubType
	}
	if input.SecretaryID != nil {
		updates["secretary_id"] = *input.SecretaryID
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	res := ctrl.DB.Model(&clubModel.ClubModel{}).Where("id = ?", clubID).Updates(updates)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update club")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Club not found")
	}

	return helper.JsonUpdated(c, "Club updated successfully", updates)
}

/* ==========================
   ACCOUNT PROVISIONING
========================== */

func (ctrl *AdminController) CreateFaculty(c *fiber.Ctx) error {
	var input struct {
		Name        string  `json:"name" validate:"required,max=100"`
		Email       string  `json:"email" validate:"required,email"`
		Password    string  `json:"password" validate:"required,min=8"`
		Designation *string `json:"designation" validate:"omitempty,max=100"`
		Department  *string `json:"department" validate:"omitempty,max=100"`
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

	fac := facultyModel.FacultyModel{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Designation:  input.Designation,
		Department:   input.Department,
	}
	if err := ctrl.DB.Create(&fac).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create faculty")
	}

	return helper.JsonCreated(c, "Faculty created successfully", fac)
}

func (ctrl *AdminController) CreateAlumni(c *fiber.Ctx) error {
	var input struct {
		Name     string  `json:"name" validate:"required,max=100"`
		Email    string  `json:"email" validate:"required,email"`
		Password string  `json:"password" validate:"required,min=8"`
		Batch    *string `json:"batch" validate:"omitempty,max=20"`
		Company  *string `json:"company" validate:"omitempty,max=100"`
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

	alum := alumniModel.AlumniModel{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Batch:        input.Batch,
		Company:      input.Company,
	}
	if err := ctrl.DB.Create(&alum).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create alumni")
	}

	return helper.JsonCreated(c, "Alumni created successfully", alum)
}

func (ctrl *AdminController) CreateBusManager(c *fiber.Ctx) error {
	var input struct {
		Name     string  `json:"name" validate:"required,max=100"`
		Email    string  `json:"email" validate:"required,email"`
		Password string  `json:"password" validate:"required,min=8"`
		Phone    *string `json:"phone" validate:"omitempty,max=20"`
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

	manager := transportModel.BusManagerModel{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
	}
	if err := ctrl.DB.Create(&manager).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create bus manager")
	}

	return helper.JsonCreated(c, "Bus manager created successfully", manager)
}

/* ==========================
   EVENT CURATION
========================== */

func (ctrl *AdminController) HighlightEvent(c *fiber.Ctx) error {
	eventID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var input struct {
		IsHighlighted bool `json:"is_highlighted"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	res := ctrl.DB.Model(&eventModel.EventModel{}).
		Where("id = ?", eventID).
		Update("is_highlighted", input.IsHighlighted)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update event")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}

	return helper.JsonUpdated(c, "Event updated successfully", fiber.Map{"is_highlighted": input.IsHighlighted})
}
