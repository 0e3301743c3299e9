package controller

import (
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	resourceModel "campussphere_backend/internals/features/resources/model"
	helper "campussphere_backend/internals/helpers"
	"campussphere_backend/internals/helpers/blobstore"
	"campussphere_backend/internals/middlewares/auth"
)

var validate = validator.New()

const maxUploadBytes = 20 << 20

type ResourceController struct {
	DB    *gorm.DB
	Store blobstore.Store
}

func NewResourceController(db *gorm.DB, store blobstore.Store) *ResourceController {
	return &ResourceController{DB: db, Store: store}
}

func (ctrl *ResourceController) GetAll(c *fiber.Ctx) error {
	q := ctrl.DB.Order("upload_date desc")
	if course := c.Query("course"); course != "" {
		q = q.Where("course = ?", course)
	}
	if branch := c.Query("branch"); branch != "" {
		q = q.Where("branch = ?", branch)
	}
	if year := c.QueryInt("year"); year > 0 {
		q = q.Where("year = ?", year)
	}
	if subject := c.Query("subject"); subject != "" {
		q = q.Where("subject = ?", subject)
	}
	if rtype := c.Query("resource_type"); rtype != "" {
		q = q.Where("resource_type = ?", rtype)
	}

	var resources []resourceModel.AcademicResourceModel
	if err := q.Find(&resources).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch resources")
	}
	return helper.JsonOK(c, "Resources fetched successfully", resources)
}

func (ctrl *ResourceController) Upload(c *fiber.Ctx) error {
	userID := auth.PrincipalID(c, constants.RoleUser)

	var input struct {
		Course       string `form:"course" validate:"required,max=50"`
		Branch       string `form:"branch" validate:"required,max=50"`
		Year         int    `form:"year" validate:"required,min=1,max=6"`
		Subject      string `form:"subject" validate:"required,max=100"`
		ResourceType string `form:"resource_type" validate:"required,oneof=notes paper book assignment"`
		Title        string `form:"title" validate:"required,max=200"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File is required")
	}
	if fileHeader.Size > maxUploadBytes {
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "File too large")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to read file")
	}
	defer f.Close()

	key, err := ctrl.Store.Save(fileHeader.Filename, f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store file")
	}

	resource := resourceModel.AcademicResourceModel{
		Course:       input.Course,
		Branch:       input.Branch,
		Year:         input.Year,
		Subject:      input.Subject,
		ResourceType: input.ResourceType,
		Title:        input.Title,
		FilePath:     key,
		UploadedBy:   &userID,
	}
	if err := ctrl.DB.Create(&resource).Error; err != nil {
		// Metadata gagal: jangan tinggalkan blob yatim.
		_ = ctrl.Store.Delete(key)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save resource")
	}

	return helper.JsonCreated(c, "Resource uploaded successfully", resource)
}

// Download stream isi file dan menaikkan counter views.
func (ctrl *ResourceController) Download(c *fiber.Ctx) error {
	resourceID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid resource ID")
	}

	var resource resourceModel.AcademicResourceModel
	if err := ctrl.DB.First(&resource, resourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Resource not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch resource")
	}

	f, err := ctrl.Store.Open(resource.FilePath)
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "File not found")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to read file")
	}

	if err := ctrl.DB.Model(&resource).
		Update("views", gorm.Expr("views + 1")).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch resource")
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+resource.Title+`"`)
	return c.Send(data)
}
