package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	clubModel "campussphere_backend/internals/features/clubs/model"
	"campussphere_backend/internals/features/users/sessions"
	helper "campussphere_backend/internals/helpers"
)

// Satu gate session untuk semua role, menggantikan enam guard kembar.
// Cookie {role}_id/{role}_token divalidasi terhadap session store; id
// principal disimpan di Locals("{role}_id") untuk handler di belakangnya.

func localKey(role constants.Role) string {
	return string(role) + "_id"
}

// PrincipalID mengambil id principal yang sudah diverifikasi gate.
func PrincipalID(c *fiber.Ctx, role constants.Role) uint {
	if v, ok := c.Locals(localKey(role)).(uint); ok {
		return v
	}
	return 0
}

// RequireSession memvalidasi pasangan cookie role tsb.
func RequireSession(db *gorm.DB, role constants.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, token := helper.SessionCookiePair(c, role)
		if err := sessions.Authenticate(db, role, id, token); err != nil {
			switch {
			case errors.Is(err, sessions.ErrMissingCredential):
				return helper.JsonError(c, fiber.StatusUnauthorized, "Please login to access this page")
			case errors.Is(err, sessions.ErrInvalidSession):
				return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid session. Please login again")
			default:
				return helper.JsonError(c, fiber.StatusInternalServerError, "Session check failed")
			}
		}
		c.Locals(localKey(role), id)
		return c.Next()
	}
}

// ClubLeaderGate dipasang SETELAH RequireSession(user): lolos hanya kalau
// student memegang minimal satu club sebagai secretary.
func ClubLeaderGate(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := PrincipalID(c, constants.RoleUser)
		var n int64
		if err := db.Model(&clubModel.ClubModel{}).
			Where("secretary_id = ?", userID).
			Count(&n).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Role check failed")
		}
		if n == 0 {
			return helper.JsonError(c, fiber.StatusForbidden, "Access denied. Club leader privileges required")
		}
		return c.Next()
	}
}
