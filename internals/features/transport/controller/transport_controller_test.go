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
	transportModel "campussphere_backend/internals/features/transport/model"
	transportRoute "campussphere_backend/internals/features/transport/route"
	"campussphere_backend/internals/features/users/sessions"
	userModel "campussphere_backend/internals/features/users/user/model"
	"campussphere_backend/internals/testutil"
)

func newTransportApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	transportRoute.TransportRoutes(app, db)
	return app
}

func cookieFor(t *testing.T, db *gorm.DB, role constants.Role, id uint) string {
	t.Helper()
	tok, err := sessions.Establish(db, role, id, "test-agent", true)
	require.NoError(t, err)
	return fmt.Sprintf("%s=%d; %s=%s", role.IDCookie(), id, role.TokenCookie(), tok)
}

func request(t *testing.T, app *fiber.App, method, target, cookie string, payload any) (*http.Response, map[string]any) {
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

func seedBusAndDriver(t *testing.T, db *gorm.DB, assign bool) (transportModel.BusModel, transportModel.DriverModel) {
	t.Helper()

	bus := transportModel.BusModel{BusNumber: "B-12"}
	require.NoError(t, db.Create(&bus).Error)

	email := "driver@campus.test"
	driver := transportModel.DriverModel{Name: "Pak Dedi", Email: &email, PasswordHash: "x"}
	if assign {
		driver.AssignedBusID = &bus.ID
	}
	require.NoError(t, db.Create(&driver).Error)
	if assign {
		require.NoError(t, db.Model(&bus).Update("driver_id", driver.ID).Error)
	}
	return bus, driver
}

func seedBusManager(t *testing.T, db *gorm.DB) transportModel.BusManagerModel {
	t.Helper()
	m := transportModel.BusManagerModel{Name: "Bu Rini", Email: "rini@campus.test", PasswordHash: "x"}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func TestDeleteBusCascadesStopsAndReleasesDriver(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newTransportApp(db)

	bus, driver := seedBusAndDriver(t, db, true)
	require.NoError(t, db.Create(&transportModel.BusStopModel{
		BusID: bus.ID, StopName: "Gerbang Utama", StopOrder: 1, Lat: -6.2, Lng: 106.8,
	}).Error)

	manager := seedBusManager(t, db)
	cookie := cookieFor(t, db, constants.RoleBusManager, manager.ID)

	resp, _ := request(t, app, http.MethodDelete, fmt.Sprintf("/bus-manager/buses/%d", bus.ID), cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Bus dan stop-nya hilang sekaligus.
	var buses, stops int64
	require.NoError(t, db.Model(&transportModel.BusModel{}).Where("id = ?", bus.ID).Count(&buses).Error)
	require.NoError(t, db.Model(&transportModel.BusStopModel{}).Where("bus_id = ?", bus.ID).Count(&stops).Error)
	assert.EqualValues(t, 0, buses)
	assert.EqualValues(t, 0, stops)

	// Driver tetap ada tapi sudah dilepas dari bus.
	var got transportModel.DriverModel
	require.NoError(t, db.First(&got, driver.ID).Error)
	assert.Nil(t, got.AssignedBusID)

	// Hapus kedua kali: sudah tidak ada.
	resp, _ = request(t, app, http.MethodDelete, fmt.Sprintf("/bus-manager/buses/%d", bus.ID), cookie, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteDriverReleasesBus(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newTransportApp(db)

	bus, driver := seedBusAndDriver(t, db, true)
	manager := seedBusManager(t, db)
	cookie := cookieFor(t, db, constants.RoleBusManager, manager.ID)

	resp, _ := request(t, app, http.MethodDelete, fmt.Sprintf("/bus-manager/drivers/%d", driver.ID), cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var drivers int64
	require.NoError(t, db.Model(&transportModel.DriverModel{}).Where("id = ?", driver.ID).Count(&drivers).Error)
	assert.EqualValues(t, 0, drivers)

	// Bus tidak ikut terhapus, hanya kehilangan driver-nya.
	var got transportModel.BusModel
	require.NoError(t, db.First(&got, bus.ID).Error)
	assert.Nil(t, got.DriverID)

	resp, _ = request(t, app, http.MethodDelete, "/bus-manager/drivers/9999", cookie, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateLocationWritesBusPosition(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newTransportApp(db)

	bus, driver := seedBusAndDriver(t, db, true)
	cookie := cookieFor(t, db, constants.RoleDriver, driver.ID)

	resp, body := request(t, app, http.MethodPost, "/driver/update-location", cookie,
		fiber.Map{"lat": -6.2, "lng": 106.8})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	var got transportModel.BusModel
	require.NoError(t, db.First(&got, bus.ID).Error)
	require.NotNil(t, got.CurrentLat)
	require.NotNil(t, got.CurrentLng)
	require.NotNil(t, got.LastUpdated)
	assert.InDelta(t, -6.2, *got.CurrentLat, 1e-9)
	assert.InDelta(t, 106.8, *got.CurrentLng, 1e-9)
}

func TestUpdateLocationWithoutBusIsNoOp(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newTransportApp(db)

	bus, driver := seedBusAndDriver(t, db, false)
	cookie := cookieFor(t, db, constants.RoleDriver, driver.ID)

	resp, body := request(t, app, http.MethodPost, "/driver/update-location", cookie,
		fiber.Map{"lat": -6.2, "lng": 106.8})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	// Tidak ada bus yang tersentuh.
	var got transportModel.BusModel
	require.NoError(t, db.First(&got, bus.ID).Error)
	assert.Nil(t, got.CurrentLat)
	assert.Nil(t, got.CurrentLng)
	assert.Nil(t, got.LastUpdated)
}

// Last-write-wins: laporan kedua menimpa yang pertama tanpa guard urutan.
func TestUpdateLocationLastWriteWins(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newTransportApp(db)

	bus, driver := seedBusAndDriver(t, db, true)
	cookie := cookieFor(t, db, constants.RoleDriver, driver.ID)

	resp, _ := request(t, app, http.MethodPost, "/driver/update-location", cookie,
		fiber.Map{"lat": 1.0, "lng": 2.0})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = request(t, app, http.MethodPost, "/driver/update-location", cookie,
		fiber.Map{"lat": 3.0, "lng": 4.0})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got transportModel.BusModel
	require.NoError(t, db.First(&got, bus.ID).Error)
	assert.InDelta(t, 3.0, *got.CurrentLat, 1e-9)
	assert.InDelta(t, 4.0, *got.CurrentLng, 1e-9)
}

func TestGetLocationNullsBeforeFirstReport(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newTransportApp(db)

	bus, _ := seedBusAndDriver(t, db, true)
	user := userModel.UserModel{Name: "Asha", Email: "asha@campus.test", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	cookie := cookieFor(t, db, constants.RoleUser, user.ID)

	resp, body := request(t, app, http.MethodGet, fmt.Sprintf("/bus/%d/location", bus.ID), cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, body["lat"])
	assert.Nil(t, body["lng"])
	assert.Nil(t, body["last_updated"])
}

func TestToggleSharingFlipsFlag(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newTransportApp(db)

	_, driver := seedBusAndDriver(t, db, true)
	cookie := cookieFor(t, db, constants.RoleDriver, driver.ID)

	resp, body := request(t, app, http.MethodPost, "/driver/toggle-sharing", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["is_sharing_location"])

	resp, body = request(t, app, http.MethodPost, "/driver/toggle-sharing", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["is_sharing_location"])
}

func TestDriverRoutesRejectUserSession(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app := newTransportApp(db)

	user := userModel.UserModel{Name: "Asha", Email: "asha@campus.test", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	cookie := cookieFor(t, db, constants.RoleUser, user.ID)

	resp, _ := request(t, app, http.MethodPost, "/driver/update-location", cookie,
		fiber.Map{"lat": 1.0, "lng": 2.0})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
