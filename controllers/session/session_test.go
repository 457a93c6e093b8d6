package sessionController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"goldloan/database"
	"goldloan/models"
	sessionRoutes "goldloan/routers/sessionRoutes"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AppraisalSession{}))
	require.NoError(t, db.Where("1 = 1").Delete(&models.AppraisalSession{}).Error)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	sessionRoutes.SetupSessionRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		decoded = nil
	}
	return resp, decoded
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/session/create", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])
	sessionID, _ := body["session_id"].(string)
	require.NotEmpty(t, sessionID)
	return sessionID
}

func TestCreateAttachAndGet(t *testing.T) {
	app := setupApp(t)
	sessionID := createSession(t, app)

	resp, body := doJSON(t, app, http.MethodPost, "/api/session/"+sessionID+"/appraiser", fiber.Map{
		"name":      "Jane Doe",
		"id":        "A1",
		"image":     "base64-capture",
		"timestamp": "2026-08-31T10:00:00Z",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/session/"+sessionID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, sessionID, body["session_id"])
	assert.Equal(t, models.SessionStatusInProgress, body["status"])

	appraiser, ok := body["appraiser_data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", appraiser["name"])
	assert.Equal(t, "A1", appraiser["id"])
}

func TestAttachUnknownSession(t *testing.T) {
	app := setupApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/session/nope/appraiser", fiber.Map{
		"name":      "Jane Doe",
		"id":        "A1",
		"image":     "base64-capture",
		"timestamp": "2026-08-31T10:00:00Z",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestAttachRejectsIncompletePayload(t *testing.T) {
	app := setupApp(t)
	sessionID := createSession(t, app)

	resp, body := doJSON(t, app, http.MethodPost, "/api/session/"+sessionID+"/appraiser", fiber.Map{
		"name": "Jane Doe",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, false, body["status"])
}

func TestRBIComplianceDistributesItems(t *testing.T) {
	app := setupApp(t)
	sessionID := createSession(t, app)

	resp, body := doJSON(t, app, http.MethodPost, "/api/session/"+sessionID+"/rbi-compliance", fiber.Map{
		"overall_images": []fiber.Map{
			{"id": 1, "image": "overall-1", "timestamp": "t1"},
			{"id": 2, "image": "overall-2", "timestamp": "t2"},
		},
		"total_items":    3,
		"capture_method": "overall",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/session/"+sessionID+"/jewellery-items", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["total_items"])

	items, ok := body["jewellery_items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 3)

	first := items[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["itemNumber"])
	assert.Equal(t, "overall-1", first["image"])
	third := items[2].(map[string]interface{})
	assert.Equal(t, "overall-1", third["image"], "items wrap around the overall images")
}

func TestRBIComplianceKeepsCapturedItems(t *testing.T) {
	app := setupApp(t)
	sessionID := createSession(t, app)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/session/"+sessionID+"/rbi-compliance", fiber.Map{
		"captured_items": []fiber.Map{
			{"itemNumber": 1, "image": "item-1"},
			{"itemNumber": 2, "image": "item-2"},
		},
		"total_items":    2,
		"capture_method": "individual",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := doJSON(t, app, http.MethodGet, "/api/session/"+sessionID+"/jewellery-items", nil)
	items, ok := body["jewellery_items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.Equal(t, "item-2", items[1].(map[string]interface{})["image"])
}

func TestPurityAdvancesStatus(t *testing.T) {
	app := setupApp(t)
	sessionID := createSession(t, app)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/session/"+sessionID+"/purity-test", fiber.Map{
		"items": []fiber.Map{
			{"itemNumber": 1, "rubbingCompleted": true, "acidCompleted": true, "timestamp": "t1"},
		},
		"total_items":  1,
		"completed_at": "2026-08-31T11:00:00Z",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := doJSON(t, app, http.MethodGet, "/api/session/"+sessionID, nil)
	assert.Equal(t, models.SessionStatusPurityCompleted, body["status"])
}

func TestFinalizeAndDelete(t *testing.T) {
	app := setupApp(t)
	sessionID := createSession(t, app)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/session/"+sessionID+"/finalize", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := doJSON(t, app, http.MethodGet, "/api/session/"+sessionID, nil)
	assert.Equal(t, models.SessionStatusCompleted, body["status"])

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/session/"+sessionID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/session/"+sessionID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSaveGPSValidatesJSON(t *testing.T) {
	app := setupApp(t)
	sessionID := createSession(t, app)

	req, err := http.NewRequest(http.MethodPost, "/api/session/"+sessionID+"/gps", bytes.NewReader([]byte("not json")))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/session/"+sessionID+"/gps", fiber.Map{
		"latitude": 18.52, "longitude": 73.85, "accuracy": 5,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := doJSON(t, app, http.MethodGet, "/api/session/"+sessionID, nil)
	gps, ok := body["gps_data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 18.52, gps["latitude"])
}

func TestAppraisalListingAndDeletion(t *testing.T) {
	app := setupApp(t)
	for i := 0; i < 3; i++ {
		createSession(t, app)
	}

	resp, body := doJSON(t, app, http.MethodGet, "/api/appraisals", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["total"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/appraisals?limit=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["total"])

	resp, _ = doJSON(t, app, http.MethodGet, "/api/appraisals?limit=1001", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	appraisals, ok := body["appraisals"].([]interface{})
	require.True(t, ok)
	first := appraisals[0].(map[string]interface{})
	id := int(first["ID"].(float64))

	resp, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/appraisal/%d", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, first["session_id"], body["session_id"])

	resp, body = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/appraisal/%d", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/appraisal/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCustomerImages(t *testing.T) {
	app := setupApp(t)
	sessionID := createSession(t, app)

	resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/session/%s/customer", sessionID), fiber.Map{
		"front_image": "front-b64",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := doJSON(t, app, http.MethodGet, "/api/session/"+sessionID, nil)
	assert.Equal(t, "front-b64", body["customer_front_image"])
	assert.Equal(t, "", body["customer_side_image"])
}
