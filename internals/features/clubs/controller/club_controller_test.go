package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	clubModel "campussphere_backend/internals/features/clubs/model"
	clubRoute "campussphere_backend/internals/features/clubs/route"
	"campussphere_backend/internals/features/users/sessions"
	userModel "campussphere_backend/internals/features/users/user/model"
	"campussphere_backend/internals/testutil"
)

func newClubApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	clubRoute.ClubRoutes(app, db)
	return app
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{Name: name, Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedClub(t *testing.T, db *gorm.DB, name string, secretaryID *uint) clubModel.ClubModel {
	t.Helper()
	c := clubModel.ClubModel{Name: name, SecretaryID: secretaryID}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func sessionCookie(t *testing.T, db *gorm.DB, role constants.Role, id uint) string {
	t.Helper()
	tok, err := sessions.Establish(db, role, id, "test-agent", true)
	require.NoError(t, err)
	return fmt.Sprintf("%s=%d; %s=%s", role.IDCookie(), id, role.TokenCookie(), tok)
}

func doJSON(t *testing.T, app *fiber.App, method, target, cookie string, payload any) (*http.Response, map[string]any) {
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
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
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

func TestJoinRequiresSession(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newClubApp(db)

	resp, _ := doJSON(t, app, http.MethodPost, "/club/1/join", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJoinIsIdempotent(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newClubApp(db)

	user := seedUser(t, db, "Asha", "asha@campus.test")
	club := seedClub(t, db, "Robotics", nil)
	cookie := sessionCookie(t, db, constants.RoleUser, user.ID)

	resp, body := doJSON(t, app, http.MethodPost, fmt.Sprintf("/club/%d/join", club.ID), cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Joined club successfully", body["message"])

	resp, body = doJSON(t, app, http.MethodPost, fmt.Sprintf("/club/%d/join", club.ID), cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Already a member of this club", body["message"])

	var n int64
	require.NoError(t, db.Model(&clubModel.ClubMembershipModel{}).
		Where("user_id = ? AND club_id = ?", user.ID, club.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	// Join langsung menghasilkan membership unverified.
	var m clubModel.ClubMembershipModel
	require.NoError(t, db.Where("user_id = ? AND club_id = ?", user.ID, club.ID).First(&m).Error)
	assert.False(t, m.IsVerified)
}

func TestLeaveWithoutMembership(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newClubApp(db)

	user := seedUser(t, db, "Asha", "asha@campus.test")
	club := seedClub(t, db, "Robotics", nil)
	cookie := sessionCookie(t, db, constants.RoleUser, user.ID)

	resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/club/%d/leave", club.ID), cookie, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDuplicatePendingTagRequest(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newClubApp(db)

	user := seedUser(t, db, "Asha", "asha@campus.test")
	club := seedClub(t, db, "Robotics", nil)
	cookie := sessionCookie(t, db, constants.RoleUser, user.ID)

	resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/club/%d/request-tag", club.ID), cookie, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/club/%d/request-tag", club.ID), cookie, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

// Skenario lengkap: request tag -> secretary approve -> membership
// verified -> request ulang setelah terminal boleh.
func TestTagRequestLifecycle(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newClubApp(db)

	student := seedUser(t, db, "Asha", "asha@campus.test")
	leader := seedUser(t, db, "Bram", "bram@campus.test")
	club := seedClub(t, db, "Robotics", &leader.ID)

	studentCookie := sessionCookie(t, db, constants.RoleUser, student.ID)
	leaderCookie := sessionCookie(t, db, constants.RoleUser, leader.ID)

	resp, body := doJSON(t, app, http.MethodPost, fmt.Sprintf("/club/%d/request-tag", club.ID), studentCookie, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	requestID := uint(body["data"].(map[string]any)["request_id"].(float64))

	// Bukan secretary club ini: ditolak.
	resp, body = doJSON(t, app, http.MethodPost, "/club-leader/review-tag-request", studentCookie,
		fiber.Map{"request_id": requestID, "status": "approved"})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodPost, "/club-leader/review-tag-request", leaderCookie,
		fiber.Map{"request_id": requestID, "status": "approved"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	// Tepat satu membership verified untuk pasangan itu.
	var memberships []clubModel.ClubMembershipModel
	require.NoError(t, db.Where("user_id = ? AND club_id = ?", student.ID, club.ID).Find(&memberships).Error)
	require.Len(t, memberships, 1)
	assert.True(t, memberships[0].IsVerified)
	require.NotNil(t, memberships[0].VerifiedBy)
	assert.Equal(t, leader.ID, *memberships[0].VerifiedBy)

	// Review ulang request yang sudah terminal: ditolak.
	resp, _ = doJSON(t, app, http.MethodPost, "/club-leader/review-tag-request", leaderCookie,
		fiber.Map{"request_id": requestID, "status": "rejected"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var req clubModel.ClubTagRequestModel
	require.NoError(t, db.First(&req, requestID).Error)
	assert.Equal(t, "approved", req.Status)

	// Tidak ada pending lagi: request baru boleh dibuat.
	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/club/%d/request-tag", club.ID), studentCookie, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestClubLeaderGateBlocksNonLeader(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newClubApp(db)

	user := seedUser(t, db, "Asha", "asha@campus.test")
	cookie := sessionCookie(t, db, constants.RoleUser, user.ID)

	resp, _ := doJSON(t, app, http.MethodGet, "/club-leader/tag-requests", cookie, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestApprovalUpgradesExistingMembership(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newClubApp(db)

	student := seedUser(t, db, "Asha", "asha@campus.test")
	leader := seedUser(t, db, "Bram", "bram@campus.test")
	club := seedClub(t, db, "Robotics", &leader.ID)

	studentCookie := sessionCookie(t, db, constants.RoleUser, student.ID)
	leaderCookie := sessionCookie(t, db, constants.RoleUser, leader.ID)

	// Student sudah join langsung (unverified) sebelum minta tag.
	resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/club/%d/join", club.ID), studentCookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, fmt.Sprintf("/club/%d/request-tag", club.ID), studentCookie, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	requestID := uint(body["data"].(map[string]any)["request_id"].(float64))

	resp, _ = doJSON(t, app, http.MethodPost, "/club-leader/review-tag-request", leaderCookie,
		fiber.Map{"request_id": requestID, "status": "approved"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var memberships []clubModel.ClubMembershipModel
	require.NoError(t, db.Where("user_id = ? AND club_id = ?", student.ID, club.ID).Find(&memberships).Error)
	require.Len(t, memberships, 1)
	assert.True(t, memberships[0].IsVerified)
}
