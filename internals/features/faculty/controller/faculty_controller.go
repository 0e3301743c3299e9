package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	facultyModel "campussphere_backend/internals/features/faculty/model"
	helper "campussphere_backend/internals/helpers"
	"campussphere_backend/internals/middlewares/auth"
)

var validate = validator.New()

type FacultyController struct {
	DB *gorm.DB
}

func NewFacultyController(db *gorm.DB) *FacultyController {
	return &FacultyController{DB: db}
}

/* ==========================
   DIRECTORY
========================== */

func (ctrl *FacultyController) GetAll(c *fiber.Ctx) error {
	q := ctrl.DB.Order("name asc")
	if dept := c.Query("department"); dept != "" {
		q = q.Where("department = ?", dept)
	}

	var faculties []facultyModel.FacultyModel
	if err := q.Find(&faculties).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch faculty")
	}
	return helper.JsonOK(c, "Faculty fetched successfully", faculties)
}

func (ctrl *FacultyController) GetByID(c *fiber.Ctx) error {
	facultyID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid faculty ID")
	}

	var fac facultyModel.FacultyModel
	if err := ctrl.DB.First(&fac, facultyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Faculty not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch faculty")
	}

	var educations []facultyModel.EducationModel
	if err := ctrl.DB.Where("faculty_id = ?", facultyID).
		Order("year desc").Find(&educations).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch faculty")
	}

	var timetable []facultyModel.TimetableModel
	if err := ctrl.DB.Where("faculty_id = ?", facultyID).
		Order("day asc, time asc").Find(&timetable).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch faculty")
	}

	return helper.JsonOK(c, "Faculty fetched successfully", fiber.Map{
		"faculty":   fac,
		"education": educations,
		"timetable": timetable,
	})
}

/* ==========================
   SELF SERVICE
========================== */

func (ctrl *FacultyController) UpdateProfile(c *fiber.Ctx) error {
	facultyID := auth.PrincipalID(c, constants.RoleFaculty)

	var input struct {
		Designation *string `json:"designation" validate:"omitempty,max=100"`
		Department  *string `json:"department" validate:"omitempty,max=100"`
		Subjects    *string `json:"subjects"`
		Photo       *string `json:"photo" validate:"omitempty,max=200"`
		Bio         *string `json:"bio"`
		Office      *string `json:"office" validate:"omitempty,max=100"`
		Phone       *string `json:"phone" validate:"omitempty,max=20"`
		Linkedin    *string `json:"linkedin" validate:"omitempty,max=255"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	updates := map[string]any{}
	if input.Designation != nil {
		updates["designation"] = *input.Designation
	}
	if input.Department != nil {
		updates["department"] = *input.Department
	}
	if input.Subjects != nil {
		updates["subjects"] = *input.Subjects
	}
	if input.Photo != nil {
		updates["photo"] = *input.Photo
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.Office != nil {
		updates["office"] = *input.Office
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Linkedin != nil {
		updates["linkedin"] = *input.Linkedin
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctrl.DB.Model(&facultyModel.FacultyModel{}).
		Where("id = ?", facultyID).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	return helper.JsonUpdated(c, "Profile updated successfully", updates)
}

func (ctrl *FacultyController) AddTimetableEntry(c *fiber.Ctx) error {
	facultyID := auth.PrincipalID(c, constants.RoleFaculty)

	var input struct {
		Day      string  `json:"day" validate:"required,max=20"`
		Time     string  `json:"time" validate:"required,max=50"`
		Course   string  `json:"course" validate:"required,max=100"`
		Location *string `json:"location" validate:"omitempty,max=100"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	entry := facultyModel.TimetableModel{
		Day:       input.Day,
		Time:      input.Time,
		Course:    input.Course,
		Location:  input.Location,
		FacultyID: facultyID,
	}
	if err := ctrl.DB.Create(&entry).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to add timetable entry")
	}

	return helper.JsonCreated(c, "Timetable entry added", entry)
}

func (ctrl *FacultyController) DeleteTimetableEntry(c *fiber.Ctx) error {
	facultyID := auth.PrincipalID(c, constants.RoleFaculty)
	entryID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid entry ID")
	}

	res := ctrl.DB.Where("id = ? AND faculty_id = ?", entryID, facultyID).
		Delete(&facultyModel.TimetableModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete timetable entry")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Timetable entry not found")
	}

	return helper.JsonDeleted(c, "Timetable entry deleted", nil)
}

func (ctrl *FacultyController) AddEducation(c *fiber.Ctx) error {
	facultyID := auth.PrincipalID(c, constants.RoleFaculty)

	var input struct {
		Degree     string  `json:"degree" validate:"required,max=100"`
		University *string `json:"university" validate:"omitempty,max=150"`
		Year       *int    `json:"year"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	edu := facultyModel.EducationModel{
		Degree:     input.Degree,
		University: input.University,
		Year:       input.Year,
		FacultyID:  facultyID,
	}
	if err := ctrl.DB.Create(&edu).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to add education")
	}

	return helper.JsonCreated(c, "Education added", edu)
}
