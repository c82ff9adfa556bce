package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ashura8/proyectobackend/internal/model"
	"github.com/Ashura8/proyectobackend/pkg/config"
	"github.com/Ashura8/proyectobackend/pkg/jwtutil"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSigningKey = "test-signing-key"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.User{},
		&model.InventoryItem{},
		&model.ServiceRequest{},
		&model.Service{},
		&model.EmailLog{},
	)
	require.NoError(t, err)

	return db
}

func testJWT() *jwtutil.JWTUtil {
	return jwtutil.NewJWTUtil(&config.JWTConfig{
		SigningKey:      testSigningKey,
		ExpirationHours: 8,
	})
}

// tokenFor issues a token for a synthetic user with the given role.
func tokenFor(t *testing.T, role string) string {
	t.Helper()
	token, err := testJWT().GenerateToken(1, role+"@test.com", role)
	require.NoError(t, err)
	return token
}

// doRequest executes an HTTP request against the router.
func doRequest(e *echo.Echo, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func jsonUnmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func parseResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

// seedUser creates a user with a bcrypt-hashed password directly in the
// database and returns it.
func seedUser(t *testing.T, db *gorm.DB, name, email, password, role string) *model.User {
	t.Helper()

	e := echo.New()
	h := NewAuthHandler(db, testJWT())
	e.POST("/api/auth/register", h.Register)

	rec := doRequest(e, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var user model.User
	require.NoError(t, db.Where("email = ?", email).First(&user).Error)
	if role != model.RoleClient {
		require.NoError(t, db.Model(&user).Update("role", role).Error)
		user.Role = role
	}
	return &user
}
