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

	"campussphere_backend/internals/constants"
	clubModel "campussphere_backend/internals/features/clubs/model"
	eventModel "campussphere_backend/internals/features/events/model"
	eventRoute "campussphere_backend/internals/features/events/route"
	"campussphere_backend/internals/features/users/sessions"
	userModel "campussphere_backend/internals/features/users/user/model"
	"campussphere_backend/internals/testutil"
)

func newEventApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	eventRoute.EventRoutes(app, db)
	return app
}

func cookieFor(t *testing.T, db *gorm.DB, role constants.Role, id uint) string {
	t.Helper()
	tok, err := sessions.Establish(db, role, id, "test-agent", true)
	require.NoError(t, err)
	return fmt.Sprintf("%s=%d; %s=%s", role.IDCookie(), id, role.TokenCookie(), tok)
}

func call(t *testing.T, app *fiber.App, method, target, cookie string, payload any) (*http.Response, map[string]any) {
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

func seedEvent(t *testing.T, db *gorm.DB, creatorID uint, selective bool) eventModel.EventModel {
	t.Helper()
	e := eventModel.EventModel{
		Title:       "Tech Talk",
		EventDate:   time.Now().Add(48 * time.Hour),
		CreatedBy:   &creatorID,
		IsSelective: selective,
	}
	require.NoError(t, db.Create(&e).Error)
	return e
}

func seedStudent(t *testing.T, db *gorm.DB, email string) userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{Name: "Student", Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func TestEnrollOpenEventIsApproved(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newEventApp(db)

	student := seedStudent(t, db, "s@campus.test")
	event := seedEvent(t, db, 99, false)
	cookie := cookieFor(t, db, constants.RoleUser, student.ID)

	resp, body := call(t, app, http.MethodPost, "/student/enroll-event", cookie,
		fiber.Map{"event_id": event.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "approved", body["status"])
	assert.NotNil(t, body["participation_id"])
}

func TestEnrollSelectiveEventIsPending(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newEventApp(db)

	student := seedStudent(t, db, "s@campus.test")
	event := seedEvent(t, db, 99, true)
	cookie := cookieFor(t, db, constants.RoleUser, student.ID)

	resp, body := call(t, app, http.MethodPost, "/student/enroll-event", cookie,
		fiber.Map{"event_id": event.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pending", body["status"])
}

func TestEnrollTwiceRejected(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newEventApp(db)

	student := seedStudent(t, db, "s@campus.test")
	event := seedEvent(t, db, 99, false)
	cookie := cookieFor(t, db, constants.RoleUser, student.ID)

	resp, _ := call(t, app, http.MethodPost, "/student/enroll-event", cookie,
		fiber.Map{"event_id": event.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := call(t, app, http.MethodPost, "/student/enroll-event", cookie,
		fiber.Map{"event_id": event.ID})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Already enrolled", body["error"])
}

func TestEnrollRequiresFormWhenMandatory(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newEventApp(db)

	student := seedStudent(t, db, "s@campus.test")
	creator := uint(99)
	event := eventModel.EventModel{
		Title:                     "Workshop",
		EventDate:                 time.Now().Add(24 * time.Hour),
		CreatedBy:                 &creator,
		ParticipationFormRequired: true,
	}
	require.NoError(t, db.Create(&event).Error)
	cookie := cookieFor(t, db, constants.RoleUser, student.ID)

	resp, _ := call(t, app, http.MethodPost, "/student/enroll-event", cookie,
		fiber.Map{"event_id": event.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/student/enroll-event", cookie,
		fiber.Map{"event_id": event.ID, "form_data": fiber.Map{"why": "interested"}})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestReviewParticipationOnlyCreator(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newEventApp(db)

	student := seedStudent(t, db, "s@campus.test")
	creator := seedStudent(t, db, "creator@campus.test")
	outsider := seedStudent(t, db, "outsider@campus.test")

	// Dua leader beda club; hanya creator yang boleh review event-nya.
	require.NoError(t, db.Create(&clubModel.ClubModel{Name: "A", SecretaryID: &creator.ID}).Error)
	require.NoError(t, db.Create(&clubModel.ClubModel{Name: "B", SecretaryID: &outsider.ID}).Error)

	event := seedEvent(t, db, creator.ID, true)
	studentCookie := cookieFor(t, db, constants.RoleUser, student.ID)
	creatorCookie := cookieFor(t, db, constants.RoleUser, creator.ID)
	outsiderCookie := cookieFor(t, db, constants.RoleUser, outsider.ID)

	resp, body := call(t, app, http.MethodPost, "/student/enroll-event", studentCookie,
		fiber.Map{"event_id": event.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	participationID := uint(body["participation_id"].(float64))

	resp, body = call(t, app, http.MethodPost, "/club-leader/review-participation", outsiderCookie,
		fiber.Map{"participation_id": participationID, "status": "approved"})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Unauthorized", body["error"])

	resp, body = call(t, app, http.MethodPost, "/club-leader/review-participation", creatorCookie,
		fiber.Map{"participation_id": participationID, "status": "approved"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	var p eventModel.EventParticipationModel
	require.NoError(t, db.First(&p, participationID).Error)
	assert.Equal(t, "approved", p.Status)
	require.NotNil(t, p.ReviewedBy)
	assert.Equal(t, creator.ID, *p.ReviewedBy)

	// Terminal: review kedua ditolak.
	resp, _ = call(t, app, http.MethodPost, "/club-leader/review-participation", creatorCookie,
		fiber.Map{"participation_id": participationID, "status": "rejected"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
