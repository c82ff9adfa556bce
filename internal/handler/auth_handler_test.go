package handler

import (
	"net/http"
	"testing"

	"github.com/Ashura8/proyectobackend/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) (*echo.Echo, *AuthHandler) {
	t.Helper()
	db := setupTestDB(t)
	h := NewAuthHandler(db, testJWT())

	e := echo.New()
	e.POST("/api/auth/register", h.Register)
	e.POST("/api/auth/login", h.Login)
	return e, h
}

func TestRegisterMissingFields(t *testing.T) {
	e, _ := newAuthRouter(t)

	rec := doRequest(e, http.MethodPost, "/api/auth/register", map[string]string{
		"name":  "Ana",
		"email": "ana@example.com",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e, h := newAuthRouter(t)

	body := map[string]string{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "secret123",
	}
	rec := doRequest(e, http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/auth/register", body, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, parseResponse(t, rec)["error"], "already registered")

	// Only one row persisted
	var count int64
	require.NoError(t, h.db.Model(&model.User{}).Where("email = ?", "ana@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterNeverStoresPlaintextPassword(t *testing.T) {
	e, h := newAuthRouter(t)

	rec := doRequest(e, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var user model.User
	require.NoError(t, h.db.Where("email = ?", "ana@example.com").First(&user).Error)
	assert.NotEqual(t, "secret123", user.Password)
	assert.NotContains(t, rec.Body.String(), "secret123")
	assert.Equal(t, model.RoleClient, user.Role)
}

func TestRegisterUnknownRoleFallsBackToClient(t *testing.T) {
	e, h := newAuthRouter(t)

	rec := doRequest(e, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "secret123",
		"role":     "superuser",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var user model.User
	require.NoError(t, h.db.Where("email = ?", "ana@example.com").First(&user).Error)
	assert.Equal(t, model.RoleClient, user.Role)
}

func TestRegisterElevatedRoleRequiresAdmin(t *testing.T) {
	e, h := newAuthRouter(t)

	body := map[string]string{
		"name":     "Tomas",
		"email":    "tomas@example.com",
		"password": "secret123",
		"role":     model.RoleTechnician,
	}

	// Anonymous caller may not self-assign an elevated role
	rec := doRequest(e, http.MethodPost, "/api/auth/register", body, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Neither may a client
	rec = doRequest(e, http.MethodPost, "/api/auth/register", body, tokenFor(t, model.RoleClient))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// An admin may
	rec = doRequest(e, http.MethodPost, "/api/auth/register", body, tokenFor(t, model.RoleAdmin))
	require.Equal(t, http.StatusOK, rec.Code)

	var user model.User
	require.NoError(t, h.db.Where("email = ?", "tomas@example.com").First(&user).Error)
	assert.Equal(t, model.RoleTechnician, user.Role)
}

func TestLoginReturnsTokenWithStoredRole(t *testing.T) {
	e, h := newAuthRouter(t)
	seedUser(t, h.db, "Tomas", "tomas@example.com", "secret123", model.RoleTechnician)

	rec := doRequest(e, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "tomas@example.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	token, ok := parseResponse(t, rec)["token"].(string)
	require.True(t, ok)

	claims, err := testJWT().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "tomas@example.com", claims.Email)
	assert.Equal(t, model.RoleTechnician, claims.Role)
}

func TestLoginFailureIsIndistinguishable(t *testing.T) {
	e, h := newAuthRouter(t)
	seedUser(t, h.db, "Ana", "ana@example.com", "secret123", model.RoleClient)

	wrongPassword := doRequest(e, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "ana@example.com",
		"password": "wrong",
	}, "")
	unknownEmail := doRequest(e, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret123",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}
