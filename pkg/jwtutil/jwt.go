package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/Ashura8/proyectobackend/pkg/config"

	"github.com/golang-jwt/jwt/v4"
)

// UserClaims represents the JWT claims for user authentication
type UserClaims struct {
	UserID uint   `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTUtil is a utility for JWT token operations
type JWTUtil struct {
	config *config.JWTConfig
}

// NewJWTUtil creates a new JWT utility with the given configuration
func NewJWTUtil(config *config.JWTConfig) *JWTUtil {
	return &JWTUtil{
		config: config,
	}
}

// GenerateToken creates a JWT token with user identity and role
func (j *JWTUtil) GenerateToken(userID uint, email, role string) (string, error) {
	if j.config == nil {
		return "", errors.New("JWT configuration not provided")
	}

	// Get signing key and expiration from configuration
	signingKey := j.config.SigningKey
	expirationHours := j.config.ExpirationHours

	claims := UserClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(signingKey))
}

// ValidateToken validates and parses the JWT token
func (j *JWTUtil) ValidateToken(tokenString string) (*UserClaims, error) {
	if j.config == nil {
		return nil, errors.New("JWT configuration not provided")
	}

	// Get signing key from configuration
	signingKey := j.config.SigningKey

	token, err := jwt.ParseWithClaims(
		tokenString,
		&UserClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// Validate the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(signingKey), nil
		},
	)

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
