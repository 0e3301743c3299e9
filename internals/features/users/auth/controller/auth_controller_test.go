package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	authModel "campussphere_backend/internals/features/users/auth/model"
	authRoute "campussphere_backend/internals/features/users/auth/route"
	userModel "campussphere_backend/internals/features/users/user/model"
	helper "campussphere_backend/internals/helpers"
	"campussphere_backend/internals/helpers/mailer"
	"campussphere_backend/internals/testutil"
)

// captureMailer merekam kiriman terakhir supaya token bisa dipakai di test.
type captureMailer struct {
	recipient string
	kind      mailer.TemplateKind
	token     string
}

func (m *captureMailer) Send(recipient string, kind mailer.TemplateKind, token, _ string) error {
	m.recipient = recipient
	m.kind = kind
	m.token = token
	return nil
}

func newAuthApp(db *gorm.DB, m mailer.Mailer) *fiber.App {
	app := fiber.New()
	authRoute.AuthRoutes(app, db, m)
	return app
}

func call(t *testing.T, app *fiber.App, method, target string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	parsed := map[string]any{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &parsed)
	}
	return resp, parsed
}

func TestSignupVerifyLoginFlow(t *testing.T) {
	db := testutil.OpenTestDB(t)
	capture := &captureMailer{}
	app := newAuthApp(db, capture)

	resp, _ := call(t, app, http.MethodPost, "/signup",
		fiber.Map{"name": "Asha Putri", "email": "asha@campus.test", "password": "secret123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, mailer.TemplateVerifyEmail, capture.kind)
	require.NotEmpty(t, capture.token)

	// Belum verified: belum ada user, login ditolak.
	resp, _ = call(t, app, http.MethodPost, "/login",
		fiber.Map{"email": "asha@campus.test", "password": "secret123"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/verify/"+capture.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Temp row terhapus setelah verifikasi.
	var n int64
	require.NoError(t, db.Model(&authModel.TempUserModel{}).
		Where("email = ?", "asha@campus.test").Count(&n).Error)
	assert.EqualValues(t, 0, n)

	resp, body := call(t, app, http.MethodPost, "/login",
		fiber.Map{"email": "asha@campus.test", "password": "secret123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
}

func TestSignupDuplicateEmailBlocked(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newAuthApp(db, &captureMailer{})

	payload := fiber.Map{"name": "Asha Putri", "email": "asha@campus.test", "password": "secret123"}
	resp, _ := call(t, app, http.MethodPost, "/signup", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Temp pending belum expired: blok.
	resp, _ = call(t, app, http.MethodPost, "/signup", payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSignupNotBlockedByExpiredTemp(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newAuthApp(db, &captureMailer{})

	stale := authModel.TempUserModel{
		Name:              "Asha",
		Email:             "asha@campus.test",
		PasswordHash:      "x",
		VerificationToken: "stale-token",
		ExpiresAt:         time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, db.Create(&stale).Error)

	resp, _ := call(t, app, http.MethodPost, "/signup",
		fiber.Map{"name": "Asha Putri", "email": "asha@campus.test", "password": "secret123"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Record stale diganti yang baru.
	var n int64
	require.NoError(t, db.Model(&authModel.TempUserModel{}).
		Where("verification_token = ?", "stale-token").Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestVerifyExpiredTokenDeletesRecord(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newAuthApp(db, &captureMailer{})

	temp := authModel.TempUserModel{
		Name:              "Asha",
		Email:             "asha@campus.test",
		PasswordHash:      "x",
		VerificationToken: "expired-token",
		ExpiresAt:         time.Now().UTC().Add(-time.Minute),
	}
	require.NoError(t, db.Create(&temp).Error)

	resp, _ := call(t, app, http.MethodGet, "/verify/expired-token", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var n int64
	require.NoError(t, db.Model(&authModel.TempUserModel{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestVerifyUnknownToken(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newAuthApp(db, &captureMailer{})

	resp, _ := call(t, app, http.MethodGet, "/verify/never-issued", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func seedVerifiedUser(t *testing.T, db *gorm.DB, email, password string) userModel.UserModel {
	t.Helper()
	hash, err := helper.HashPassword(password)
	require.NoError(t, err)
	u := userModel.UserModel{Name: "Asha", Email: email, PasswordHash: hash}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func TestSecondLoginAsksForce(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newAuthApp(db, &captureMailer{})

	seedVerifiedUser(t, db, "asha@campus.test", "secret123")
	creds := fiber.Map{"email": "asha@campus.test", "password": "secret123"}

	resp, _ := call(t, app, http.MethodPost, "/login", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Device kedua tanpa force: 200 + ask_force, bukan error.
	resp, body := call(t, app, http.MethodPost, "/login", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ask_force"])
	assert.Equal(t, false, body["success"])

	// Dengan force: masuk.
	creds["force_logout"] = true
	resp, body = call(t, app, http.MethodPost, "/login", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
}

func TestLoginAuthorityRejectsUnknownRole(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newAuthApp(db, &captureMailer{})

	seedVerifiedUser(t, db, "asha@campus.test", "secret123")

	// Role di luar daftar ditolak sebelum lookup kredensial.
	resp, _ := call(t, app, http.MethodPost, "/login-authority",
		fiber.Map{"email": "asha@campus.test", "password": "secret123", "role": "wizard"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Admin dan student punya endpoint sendiri.
	resp, _ = call(t, app, http.MethodPost, "/login-authority",
		fiber.Map{"email": "asha@campus.test", "password": "secret123", "role": "admin"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/login-authority",
		fiber.Map{"email": "asha@campus.test", "password": "secret123", "role": "user"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newAuthApp(db, &captureMailer{})

	seedVerifiedUser(t, db, "asha@campus.test", "secret123")

	resp, _ := call(t, app, http.MethodPost, "/login",
		fiber.Map{"email": "asha@campus.test", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestForgotPasswordUniformResponse(t *testing.T) {
	db := testutil.OpenTestDB(t)
	capture := &captureMailer{}
	app := newAuthApp(db, capture)

	seedVerifiedUser(t, db, "asha@campus.test", "secret123")

	// Email terdaftar dan tidak terdaftar dapat pesan yang sama.
	resp, body := call(t, app, http.MethodPost, "/forgot-password", fiber.Map{"email": "asha@campus.test"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	knownMsg := body["message"]
	require.Equal(t, mailer.TemplatePasswordReset, capture.kind)

	resp, body = call(t, app, http.MethodPost, "/forgot-password", fiber.Map{"email": "ghost@campus.test"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, knownMsg, body["message"])
}

func TestResetPasswordSingleUse(t *testing.T) {
	db := testutil.OpenTestDB(t)
	capture := &captureMailer{}
	app := newAuthApp(db, capture)

	seedVerifiedUser(t, db, "asha@campus.test", "secret123")

	resp, _ := call(t, app, http.MethodPost, "/forgot-password", fiber.Map{"email": "asha@campus.test"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := capture.token
	require.NotEmpty(t, token)

	resp, _ = call(t, app, http.MethodPost, "/reset-password/"+token,
		fiber.Map{"password": "newsecret1", "confirm_password": "newsecret1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Token sekali pakai.
	resp, _ = call(t, app, http.MethodPost, "/reset-password/"+token,
		fiber.Map{"password": "another123", "confirm_password": "another123"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Password lama mati, yang baru jalan.
	resp, _ = call(t, app, http.MethodPost, "/login",
		fiber.Map{"email": "asha@campus.test", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, body := call(t, app, http.MethodPost, "/login",
		fiber.Map{"email": "asha@campus.test", "password": "newsecret1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
}

func TestLogoutClearsSession(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newAuthApp(db, &captureMailer{})

	seedVerifiedUser(t, db, "asha@campus.test", "secret123")

	resp, _ := call(t, app, http.MethodPost, "/login",
		fiber.Map{"email": "asha@campus.test", "password": "secret123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Ambil cookie dari respons login.
	var cookieHeader string
	for _, c := range resp.Cookies() {
		if c.Name == "user_id" || c.Name == "user_token" {
			if cookieHeader != "" {
				cookieHeader += "; "
			}
			cookieHeader += fmt.Sprintf("%s=%s", c.Name, c.Value)
		}
	}
	require.NotEmpty(t, cookieHeader)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Cookie", cookieHeader)
	logoutResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, logoutResp.StatusCode)

	// Session server-side hilang: cookie lama ditolak.
	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Cookie", cookieHeader)
	again, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, again.StatusCode)
}
