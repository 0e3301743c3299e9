// file: internals/helpers/cookies.go
package helper

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"campussphere_backend/internals/constants"
)

const (
	primarySessionAge = 30 * 24 * time.Hour
	shortSessionAge   = 24 * time.Hour
)

func sessionAge(role constants.Role) time.Duration {
	if constants.RoleIn(role, constants.ShortSessionRoles) {
		return shortSessionAge
	}
	return primarySessionAge
}

// SetSessionCookies memasang pasangan cookie {role}_id / {role}_token.
// httponly + SameSite Lax; umur 30 hari untuk role utama, 24 jam untuk
// driver/admin.
func SetSessionCookies(c *fiber.Ctx, role constants.Role, principalID uint, token string) {
	maxAge := sessionAge(role)
	expires := time.Now().Add(maxAge)

	c.Cookie(&fiber.Cookie{
		Name:     role.IDCookie(),
		Value:    strconv.FormatUint(uint64(principalID), 10),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(maxAge.Seconds()),
	})
	c.Cookie(&fiber.Cookie{
		Name:     role.TokenCookie(),
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(maxAge.Seconds()),
	})
}

// ClearSessionCookies menghapus pasangan cookie role tsb (idempotent).
func ClearSessionCookies(c *fiber.Ctx, role constants.Role) {
	expired := time.Now().Add(-time.Hour)
	for _, name := range []string{role.IDCookie(), role.TokenCookie()} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			SameSite: "Lax",
			Path:     "/",
			Expires:  expired,
			MaxAge:   -1,
		})
	}
}

// SessionCookiePair membaca pasangan cookie role; id=0 kalau absen/bukan angka.
func SessionCookiePair(c *fiber.Ctx, role constants.Role) (uint, string) {
	idStr := c.Cookies(role.IDCookie())
	token := c.Cookies(role.TokenCookie())
	if idStr == "" || token == "" {
		return 0, ""
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, ""
	}
	return uint(id), token
}
