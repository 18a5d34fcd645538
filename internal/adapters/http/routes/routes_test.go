package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"garagehub/internal/adapters/http/middleware"
	"garagehub/internal/adapters/persistence/models"
	"garagehub/internal/config"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp wires a fiber app against a fresh in-memory database with the
// default admin and one mechanic present.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))

	name := "Shop Admin"
	require.NoError(t, db.Create(&models.User{
		Username: "admin", Password: "admin123", Name: &name, Role: "admin",
	}).Error)
	require.NoError(t, db.Create(&models.User{
		Username: "mike", Password: "mike123", Role: "mechanic",
	}).Error)

	cfg := &config.Config{
		AppMode: "dev",
		Port:    "3000",
		Cookie:  config.CookieConfig{SameSite: "lax"},
	}
	config.AppConfig = cfg
	config.DB = db

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.CustomErrorHandler,
	})
	Setup(app, db, cfg)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}, cookie *http.Cookie) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func login(t *testing.T, app *fiber.App, username, password string) *http.Cookie {
	t.Helper()

	resp := doJSON(t, app, "POST", "/api/auth/login", fiber.Map{
		"username": username,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie, "login must set the session cookie")
	return cookie
}

func TestLoginSessionLogoutFlow(t *testing.T) {
	app, _ := newTestApp(t)

	// Login sets the cookie and returns the token
	resp := doJSON(t, app, "POST", "/api/auth/login", fiber.Map{
		"username": "admin",
		"password": "admin123",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	token, _ := body["sessionToken"].(string)
	assert.Len(t, token, 64)
	user, _ := body["user"].(map[string]interface{})
	require.NotNil(t, user)
	assert.Equal(t, "admin", user["username"])
	assert.NotContains(t, user, "password")

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Equal(t, token, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	// Session check succeeds with the cookie
	resp = doJSON(t, app, "GET", "/api/auth/session", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, true, body["authenticated"])
	assert.NotNil(t, body["user"])
	assert.NotNil(t, body["session"])

	// Logout, then the same cookie is dead
	resp = doJSON(t, app, "POST", "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/auth/session", nil, cookie)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, false, body["authenticated"])
	assert.Nil(t, body["user"])
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/auth/login", fiber.Map{
		"username": "admin",
		"password": "nope",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newTestApp(t)

	// Too short password
	resp := doJSON(t, app, "POST", "/api/auth/register", fiber.Map{
		"username": "newguy",
		"password": "123",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Happy path
	resp = doJSON(t, app, "POST", "/api/auth/register", fiber.Map{
		"username": "newguy",
		"password": "secret1",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Duplicate username
	resp = doJSON(t, app, "POST", "/api/auth/register", fiber.Map{
		"username": "newguy",
		"password": "secret1",
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	app, _ := newTestApp(t)

	for _, target := range []string{"/api/jobs", "/api/customer", "/api/mechanic/jobs", "/api/users"} {
		resp := doJSON(t, app, "GET", target, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "expected 401 for %s without a session", target)
	}
}

func TestUserRoutesAdminOnly(t *testing.T) {
	app, _ := newTestApp(t)

	mechCookie := login(t, app, "mike", "mike123")
	resp := doJSON(t, app, "GET", "/api/users", nil, mechCookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminCookie := login(t, app, "admin", "admin123")
	resp = doJSON(t, app, "GET", "/api/users", nil, adminCookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestJobLifecycleOverHTTP(t *testing.T) {
	app, db := newTestApp(t)
	cookie := login(t, app, "admin", "admin123")

	// Seed a customer and vehicle directly
	customer := &models.Customer{Name: "John Smith", Phone: "+1 (555) 123-4567", Source: "Walk-in"}
	require.NoError(t, db.Create(customer).Error)
	vehicle := &models.Vehicle{CustomerID: customer.ID, Make: "Toyota", Model: "Camry", Year: 2020, LicensePlate: "ABC123"}
	require.NoError(t, db.Create(vehicle).Error)

	// Create a job
	resp := doJSON(t, app, "POST", "/api/jobs", fiber.Map{
		"vehicleId":      vehicle.ID,
		"customerId":     customer.ID,
		"repairType":     "Brakes",
		"complaintNotes": "Squeaking",
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	job, _ := body["job"].(map[string]interface{})
	require.NotNil(t, job)
	assert.Equal(t, "active", job["status"])
	assert.Equal(t, "ABC123", job["licensePlate"])
	jobID := int(job["id"].(float64))

	// Update costs; margin comes back derived
	resp = doJSON(t, app, "PUT", "/api/jobs/"+strconv.Itoa(jobID), fiber.Map{
		"laborCost": 150,
		"partsCost": 120,
		"totalCost": 270,
	}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	job = body["job"].(map[string]interface{})
	assert.InDelta(t, 0.0, job["marginPercentage"].(float64), 0.0001)

	// List shows the job
	resp = doJSON(t, app, "GET", "/api/jobs?status=active", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	jobs, _ := body["jobs"].([]interface{})
	assert.Len(t, jobs, 1)

	// Delete it
	resp = doJSON(t, app, "DELETE", "/api/jobs/"+strconv.Itoa(jobID), nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/jobs/"+strconv.Itoa(jobID), nil, cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestJobArchiveRequiresAdmin(t *testing.T) {
	app, db := newTestApp(t)

	customer := &models.Customer{Name: "John Smith", Phone: "+1 (555) 123-4567", Source: "Walk-in"}
	require.NoError(t, db.Create(customer).Error)
	vehicle := &models.Vehicle{CustomerID: customer.ID, Make: "Toyota", Model: "Camry", Year: 2020, LicensePlate: "ABC123"}
	require.NoError(t, db.Create(vehicle).Error)
	job := &models.Job{VehicleID: vehicle.ID, CustomerID: customer.ID, Status: "invoice", RepairType: "Brakes"}
	require.NoError(t, db.Create(job).Error)

	mechCookie := login(t, app, "mike", "mike123")
	resp := doJSON(t, app, "POST", "/api/jobs/archive", fiber.Map{"jobIds": []uint{job.ID}}, mechCookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminCookie := login(t, app, "admin", "admin123")
	resp = doJSON(t, app, "POST", "/api/jobs/archive", fiber.Map{"jobIds": []uint{job.ID}}, adminCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["archived"])
}
