package handler

import (
	"net/http"
	"testing"

	"github.com/Ashura8/proyectobackend/internal/middleware"
	"github.com/Ashura8/proyectobackend/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryRouter(t *testing.T) (*echo.Echo, *InventoryHandler) {
	t.Helper()
	db := setupTestDB(t)
	h := NewInventoryHandler(db)
	jwt := testJWT()

	e := echo.New()
	e.GET("/api/inventario", h.ListItems,
		middleware.Authorize(jwt, model.RoleAdmin, model.RoleTechnician))
	e.POST("/api/inventario", h.CreateItem,
		middleware.Authorize(jwt, model.RoleAdmin))
	return e, h
}

func TestCreateItemAndListRoundTrip(t *testing.T) {
	e, _ := newInventoryRouter(t)
	admin := tokenFor(t, model.RoleAdmin)

	body := map[string]interface{}{
		"product_type":     "printer",
		"product_name":     "LaserJet 1020",
		"brand":            "HP",
		"model":            "1020",
		"condition":        "operational",
		"location":         "floor 2",
		"intake_date":      "2024-03-01",
		"last_maintenance": "2025-01-15",
		"notes":            "toner low",
	}
	rec := doRequest(e, http.MethodPost, "/api/inventario", body, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := parseResponse(t, rec)
	assert.NotZero(t, created["id"])

	rec = doRequest(e, http.MethodGet, "/api/inventario", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []model.InventoryItem
	require.NoError(t, jsonUnmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "printer", item.ProductType)
	assert.Equal(t, "LaserJet 1020", item.ProductName)
	require.NotNil(t, item.Brand)
	assert.Equal(t, "HP", *item.Brand)
	require.NotNil(t, item.Model)
	assert.Equal(t, "1020", *item.Model)
	assert.Equal(t, "operational", item.Condition)
	assert.Equal(t, "floor 2", item.Location)
	assert.Equal(t, "2024-03-01", item.IntakeDate.Format("2006-01-02"))
	require.NotNil(t, item.LastMaintenance)
	assert.Equal(t, "2025-01-15", item.LastMaintenance.Format("2006-01-02"))
	require.NotNil(t, item.Notes)
	assert.Equal(t, "toner low", *item.Notes)
}

func TestCreateItemMissingRequiredFields(t *testing.T) {
	e, h := newInventoryRouter(t)

	rec := doRequest(e, http.MethodPost, "/api/inventario", map[string]interface{}{
		"product_type": "printer",
		"product_name": "LaserJet 1020",
	}, tokenFor(t, model.RoleAdmin))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	require.NoError(t, h.db.Model(&model.InventoryItem{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateItemOptionalFieldsDefaultToNull(t *testing.T) {
	e, h := newInventoryRouter(t)

	rec := doRequest(e, http.MethodPost, "/api/inventario", map[string]interface{}{
		"product_type": "laptop",
		"product_name": "ThinkPad T14",
		"condition":    "operational",
		"location":     "floor 1",
		"intake_date":  "2024-06-10",
	}, tokenFor(t, model.RoleAdmin))
	require.Equal(t, http.StatusCreated, rec.Code)

	var item model.InventoryItem
	require.NoError(t, h.db.First(&item).Error)
	assert.Nil(t, item.Brand)
	assert.Nil(t, item.Model)
	assert.Nil(t, item.LastMaintenance)
	assert.Nil(t, item.Notes)
}

func TestInventoryRouteAuthorization(t *testing.T) {
	e, _ := newInventoryRouter(t)

	// Missing token
	rec := doRequest(e, http.MethodGet, "/api/inventario", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token
	rec = doRequest(e, http.MethodGet, "/api/inventario", nil, "not-a-token")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Client role may not create items, and the response names the roles
	// that may
	rec = doRequest(e, http.MethodPost, "/api/inventario", map[string]interface{}{}, tokenFor(t, model.RoleClient))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := parseResponse(t, rec)
	assert.Contains(t, body, "allowed_roles")
	assert.Contains(t, body["allowed_roles"], model.RoleAdmin)

	// Technician may list
	rec = doRequest(e, http.MethodGet, "/api/inventario", nil, tokenFor(t, model.RoleTechnician))
	assert.Equal(t, http.StatusOK, rec.Code)
}
