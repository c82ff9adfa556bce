package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/Ashura8/proyectobackend/internal/model"
	"github.com/Ashura8/proyectobackend/pkg/jwtutil"
	"github.com/Ashura8/proyectobackend/pkg/logger"
	"github.com/Ashura8/proyectobackend/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler handles user registration and login
type AuthHandler struct {
	db  *gorm.DB
	jwt *jwtutil.JWTUtil
}

// NewAuthHandler creates an auth handler with its dependencies
func NewAuthHandler(db *gorm.DB, jwt *jwtutil.JWTUtil) *AuthHandler {
	return &AuthHandler{db: db, jwt: jwt}
}

// Register creates a new user account. The role defaults to "client";
// unknown role values silently fall back to the default. A valid elevated
// role (technician, admin) is only honored when the caller presents an
// admin bearer token.
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	// Parse request
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role,omitempty"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		log.Error("Invalid registration data",
			zap.String("email", req.Email),
			zap.Bool("name_provided", req.Name != ""),
			zap.Bool("password_provided", req.Password != ""))
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and password are required"})
	}

	// Resolve the role. Unknown values fall back to the default instead of
	// being rejected.
	role := model.RoleClient
	if model.ValidRole(req.Role) {
		role = req.Role
	}

	// Elevated roles can only be assigned by an authenticated admin
	if role != model.RoleClient && !h.callerIsAdmin(c) {
		log.Warn("Elevated role registration refused",
			zap.String("email", req.Email),
			zap.String("requested_role", role))
		prometheus.RecordAuthError("role_assignment_denied")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only an admin can assign elevated roles"})
	}

	// Check if user already exists - track DB query
	defer prometheus.TrackDBOperation("query")(time.Now())
	var existingUser model.User
	result := h.db.WithContext(c.Request().Context()).Where("email = ?", req.Email).First(&existingUser)
	if result.Error == nil {
		log.Error("User already exists", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_already_exists")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already registered"})
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	// Create new user
	user := model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     role,
	}

	// Save to database - track DB insert operation
	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := h.db.WithContext(c.Request().Context()).Create(&user); result.Error != nil {
		log.Error("Failed to create user", zap.Error(result.Error))
		prometheus.RecordAuthError("user_creation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	log.Info("User registered",
		zap.String("email", user.Email),
		zap.String("role", user.Role))
	return c.JSON(http.StatusOK, echo.Map{
		"msg": "user registered successfully",
		"user": map[string]interface{}{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Login authenticates a user and issues a signed token. Unknown email and
// wrong password produce the same response so accounts cannot be enumerated.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	// Parse request
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Email == "" || req.Password == "" {
		prometheus.RecordAuthError("incomplete_login")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	// Find user in database - track DB operation duration
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := h.db.WithContext(c.Request().Context()).Where("email = ?", req.Email).First(&user)
	if result.Error != nil {
		log.Warn("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	// Generate JWT token with the stored role
	token, err := h.jwt.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in",
		zap.String("email", user.Email),
		zap.String("role", user.Role))
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// callerIsAdmin reports whether the request carries a valid admin bearer
// token. Registration is a public route, so the header is optional here.
func (h *AuthHandler) callerIsAdmin(c echo.Context) bool {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return false
	}

	claims, err := h.jwt.ValidateToken(parts[1])
	if err != nil {
		return false
	}
	return claims.Role == model.RoleAdmin
}
