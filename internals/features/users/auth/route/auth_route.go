package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	authController "campussphere_backend/internals/features/users/auth/controller"
	"campussphere_backend/internals/helpers/mailer"
	"campussphere_backend/internals/middlewares"
	"campussphere_backend/internals/middlewares/auth"
)

// AuthRoutes mendaftarkan signup, verifikasi email, login per role,
// logout per role, dan alur reset password.
func AuthRoutes(app *fiber.App, db *gorm.DB, m mailer.Mailer) {
	ctrl := authController.NewAuthController(db, m)

	app.Post("/signup", middlewares.SignupRateLimiter(), ctrl.Signup)
	app.Get("/verify/:token", ctrl.VerifyEmail)

	app.Post("/login", middlewares.LoginRateLimiter(), ctrl.LoginStudent)
	app.Post("/login-authority", middlewares.LoginRateLimiter(), ctrl.LoginAuthority)
	app.Post("/admin/login", middlewares.LoginRateLimiter(), ctrl.LoginAdmin)

	app.Post("/forgot-password", middlewares.ForgotPasswordRateLimiter(), ctrl.ForgotPassword)
	app.Post("/reset-password/:token", ctrl.ResetPassword)

	// Satu endpoint logout per role, semua lewat guard session role itu.
	app.Post("/logout", auth.RequireSession(db, constants.RoleUser), ctrl.LogoutFor(constants.RoleUser))
	for _, role := range []constants.Role{
		constants.RoleAdmin,
		constants.RoleDriver,
		constants.RoleBusManager,
		constants.RoleFaculty,
		constants.RoleAlumni,
	} {
		app.Post("/"+string(role)+"/logout", auth.RequireSession(db, role), ctrl.LogoutFor(role))
	}
}
