package routes_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stylahq/styla-backend/internal/cache"
	"github.com/stylahq/styla-backend/internal/config"
	"github.com/stylahq/styla-backend/internal/database"
	"github.com/stylahq/styla-backend/internal/handlers"
	"github.com/stylahq/styla-backend/internal/routes"
	"github.com/stylahq/styla-backend/internal/services"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.DB = db

	cfg := &config.Config{SessionExpiry: time.Hour}
	authService := services.NewAuthService(db, cfg)
	catalogService := services.NewCatalogService(db, cache.NewProductCache(nil, 0))
	profileService := services.NewProfileService(db)
	boxService := services.NewBoxService(db)

	app := fiber.New()
	routes.Setup(app,
		authService,
		handlers.NewAuthHandler(authService),
		handlers.NewHealthHandler(),
		handlers.NewCatalogHandler(catalogService),
		handlers.NewProfileHandler(profileService),
		handlers.NewBoxHandler(boxService),
	)
	return app, mock
}

func tokenHash(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

// expectSession arms the session + user lookups the resolver middleware runs
// for an authenticated request.
func expectSession(mock sqlmock.Sqlmock, token, userID, role string) {
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "sessions" WHERE token = \$1`).
		WithArgs(tokenHash(token), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "token", "user_id", "expires_at", "ip_address", "user_agent", "created_at", "updated_at"}).
			AddRow("s-"+userID, tokenHash(token), userID, now.Add(time.Hour), nil, nil, now, now))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs(userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "email_verified", "image", "role", "banned", "ban_reason", "ban_expires", "created_at", "updated_at"}).
			AddRow(userID, "Test", userID+"@example.com", true, nil, role, false, nil, nil, now, now))
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Server ok!", body["message"])
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	app, _ := newTestApp(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/session"},
		{http.MethodGet, "/api/box"},
		{http.MethodGet, "/api/box/newest"},
		{http.MethodGet, "/api/check-info"},
		{http.MethodPost, "/api/customerDetail"},
		{http.MethodPost, "/api/box"},
	}
	for _, tc := range cases {
		resp := doRequest(t, app, tc.method, tc.path, "", nil)
		assert.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}

func TestSessionEndpointWithValidToken(t *testing.T) {
	app, mock := newTestApp(t)

	expectSession(mock, "tok-user", "u1", "user")

	resp := doRequest(t, app, http.MethodGet, "/api/session", "tok-user", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "u1", user["id"])
}

func TestProductListing(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "brand_name", "price", "category", "image"}).
			AddRow("p1", "Silk Blouse", "Maison K", 50000, "top", nil))

	resp := doRequest(t, app, http.MethodGet, "/api/product", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var products []map[string]any
	require.NoError(t, json.Unmarshal(raw, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Silk Blouse", products[0]["name"])
}

func TestProductNotFound(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WithArgs("ghost", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "brand_name", "price", "category", "image"}))

	resp := doRequest(t, app, http.MethodGet, "/api/product/ghost", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBoxCreationForbiddenForCustomers(t *testing.T) {
	app, mock := newTestApp(t)

	expectSession(mock, "tok-user", "u1", "user")

	resp := doRequest(t, app, http.MethodPost, "/api/box", "tok-user", map[string]any{
		"customerId": "u1",
		"productIds": []string{"p1"},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBoxCreationAsAdmin(t *testing.T) {
	app, mock := newTestApp(t)

	expectSession(mock, "tok-admin", "a1", "admin")

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs("u1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "email_verified", "image", "role", "banned", "ban_reason", "ban_expires", "created_at", "updated_at"}).
			AddRow("u1", "Nina", "nina@example.com", true, nil, "user", false, nil, nil, now, now))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE id IN`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(`INSERT INTO "boxes"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "box_products"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "box_products"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp := doRequest(t, app, http.MethodPost, "/api/box", "tok-admin", map[string]any{
		"customerId": "u1",
		"productIds": []string{"p1", "p2"},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Box created", body["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewestBoxEmptyForBoxlessCustomer(t *testing.T) {
	app, mock := newTestApp(t)

	expectSession(mock, "tok-user", "u1", "user")
	mock.ExpectQuery(`SELECT \* FROM "boxes" WHERE customer_id = \$1 ORDER BY created_at DESC`).
		WithArgs("u1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "created_at", "updated_at"}))

	resp := doRequest(t, app, http.MethodGet, "/api/box/newest", "tok-user", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	data, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Empty(t, data)
}

func TestCheckInfoNotFoundBeforeOnboarding(t *testing.T) {
	app, mock := newTestApp(t)

	expectSession(mock, "tok-user", "u1", "user")
	mock.ExpectQuery(`SELECT \* FROM "user_details" WHERE user_id = \$1`).
		WithArgs("u1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	resp := doRequest(t, app, http.MethodGet, "/api/check-info", "tok-user", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExpiredSessionResolvesToAnonymous(t *testing.T) {
	app, mock := newTestApp(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "sessions" WHERE token = \$1`).
		WithArgs(tokenHash("stale"), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "token", "user_id", "expires_at", "ip_address", "user_agent", "created_at", "updated_at"}).
			AddRow("s1", tokenHash("stale"), "u1", now.Add(-time.Minute), nil, nil, now, now))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "sessions"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp := doRequest(t, app, http.MethodGet, "/api/session", "stale", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
