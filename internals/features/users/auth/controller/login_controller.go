package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	adminModel "campussphere_backend/internals/features/admin/model"
	alumniModel "campussphere_backend/internals/features/alumni/model"
	clubModel "campussphere_backend/internals/features/clubs/model"
	facultyModel "campussphere_backend/internals/features/faculty/model"
	transportModel "campussphere_backend/internals/features/transport/model"
	"campussphere_backend/internals/features/users/sessions"
	userModel "campussphere_backend/internals/features/users/user/model"
	"campussphere_backend/internals/constants"
	helper "campussphere_backend/internals/helpers"
)

type principal struct {
	ID           uint
	Name         string
	PasswordHash string
}

// findPrincipal menyatukan lookup kredensial semua role ke satu tempat.
// club_leader bukan tabel sendiri: itu user biasa yang jadi secretary
// minimal satu club.
func findPrincipal(db *gorm.DB, role constants.Role, identifier string) (principal, error) {
	switch role {
	case constants.RoleUser:
		var u userModel.UserModel
		if err := db.Where("email = ?", identifier).First(&u).Error; err != nil {
			return principal{}, err
		}
		return principal{ID: u.ID, Name: u.Name, PasswordHash: u.PasswordHash}, nil
	case constants.RoleFaculty:
		var f facultyModel.FacultyModel
		if err := db.Where("email = ?", identifier).First(&f).Error; err != nil {
			return principal{}, err
		}
		return principal{ID: f.ID, Name: f.Name, PasswordHash: f.PasswordHash}, nil
	case constants.RoleAlumni:
		var a alumniModel.AlumniModel
		if err := db.Where("email = ?", identifier).First(&a).Error; err != nil {
			return principal{}, err
		}
		return principal{ID: a.ID, Name: a.Name, PasswordHash: a.PasswordHash}, nil
	case constants.RoleDriver:
		var d transportModel.DriverModel
		if err := db.Where("email = ?", identifier).First(&d).Error; err != nil {
			return principal{}, err
		}
		return principal{ID: d.ID, Name: d.Name, PasswordHash: d.PasswordHash}, nil
	case constants.RoleBusManager:
		var m transportModel.BusManagerModel
		if err := db.Where("email = ?", identifier).First(&m).Error; err != nil {
			return principal{}, err
		}
		return principal{ID: m.ID, Name: m.Name, PasswordHash: m.PasswordHash}, nil
	case constants.RoleAdmin:
		var ad adminModel.AdminModel
		if err := db.Where("username = ?", identifier).First(&ad).Error; err != nil {
			return principal{}, err
		}
		return principal{ID: ad.ID, Name: ad.Username, PasswordHash: ad.PasswordHash}, nil
	}
	return principal{}, gorm.ErrRecordNotFound
}

// establishAndRespond: satu pintu keluar untuk semua login.
// ErrActiveElsewhere dikembalikan sebagai 200 dengan ask_force, bukan
// error, supaya klien bisa konfirmasi force logout.
func (ctrl *AuthController) establishAndRespond(c *fiber.Ctx, role constants.Role, p principal, force bool) error {
	token, err := sessions.Establish(ctrl.DB, role, p.ID, c.Get("User-Agent"), force)
	if err != nil {
		if errors.Is(err, sessions.ErrActiveElsewhere) {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"success":   false,
				"ask_force": true,
				"message":   "Account is active on another device. Please confirm force logout.",
			})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}

	helper.SetSessionCookies(c, role, p.ID, token)
	return helper.JsonOK(c, "Login successful", fiber.Map{
		"role": string(role),
		"id":   p.ID,
		"name": p.Name,
	})
}

/* ==========================
   LOGIN (per role) + LOGOUT
========================== */

func (ctrl *AuthController) LoginStudent(c *fiber.Ctx) error {
	var input struct {
		Email       string `json:"email" validate:"required,email"`
		Password    string `json:"password" validate:"required"`
		ForceLogout bool   `json:"force_logout"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	p, err := findPrincipal(ctrl.DB, constants.RoleUser, input.Email)
	if err != nil || !helper.CheckPasswordHash(input.Password, p.PasswordHash) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	return ctrl.establishAndRespond(c, constants.RoleUser, p, input.ForceLogout)
}

// LoginAuthority melayani faculty, alumni, driver, bus_manager, dan
// club_leader lewat satu endpoint dengan field role.
func (ctrl *AuthController) LoginAuthority(c *fiber.Ctx) error {
	var input struct {
		Email       string `json:"email" validate:"required,email"`
		Password    string `json:"password" validate:"required"`
		Role        string `json:"role" validate:"required"`
		ForceLogout bool   `json:"force_logout"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// club_leader pakai kredensial user + syarat memimpin club;
	// session yang dibuat tetap session user.
	role := constants.Role(input.Role)
	if input.Role == "club_leader" {
		role = constants.RoleUser
	}
	// Admin dan student punya endpoint login sendiri.
	if !role.Valid() || role == constants.RoleAdmin ||
		(role == constants.RoleUser && input.Role != "club_leader") {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid role")
	}

	p, err := findPrincipal(ctrl.DB, role, input.Email)
	if err != nil || !helper.CheckPasswordHash(input.Password, p.PasswordHash) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	if input.Role == "club_leader" {
		var led int64
		if err := ctrl.DB.Model(&clubModel.ClubModel{}).Where("secretary_id = ?", p.ID).Count(&led).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Login failed")
		}
		if led == 0 {
			return helper.JsonError(c, fiber.StatusForbidden, "You are not a secretary of any club")
		}
	}

	return ctrl.establishAndRespond(c, role, p, input.ForceLogout)
}

// LoginAdmin selalu merebut session yang ada, tanpa ask_force.
func (ctrl *AuthController) LoginAdmin(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	p, err := findPrincipal(ctrl.DB, constants.RoleAdmin, input.Username)
	if err != nil || !helper.CheckPasswordHash(input.Password, p.PasswordHash) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid username or password")
	}

	return ctrl.establishAndRespond(c, constants.RoleAdmin, p, true)
}

// LogoutFor mengembalikan handler logout untuk satu role. Row session
// dihapus dulu baru cookie dibersihkan, supaya token lama mati di server
// walau klien menyimpan salinannya.
func (ctrl *AuthController) LogoutFor(role constants.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := helper.SessionCookiePair(c, role)
		if id != 0 {
			if err := sessions.Clear(ctrl.DB, role, id); err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Logout failed")
			}
		}
		helper.ClearSessionCookies(c, role)
		return helper.JsonOK(c, "Logged out successfully", nil)
	}
}
