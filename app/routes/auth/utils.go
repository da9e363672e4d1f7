package auth

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/yahamanand-svg/School/app/models"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

type JWTClaims struct {
	Role      string `json:"role"`
	UserID    string `json:"user_id"`
	TeacherID string `json:"teacher_id,omitempty"`
	StudentID string `json:"student_id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func getJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "school-portal-secret-key" // Default for development
	}
	return []byte(secret)
}

// GenerateJWT signs a token carrying the caller identity.
func GenerateJWT(id models.Identity) (string, error) {
	claims := JWTClaims{
		Role:      string(id.Role),
		UserID:    id.UserID,
		TeacherID: id.TeacherID,
		StudentID: id.StudentID,
		Name:      id.Name,
		Email:     id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "school-portal",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTSecret())
}

func ValidateJWT(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return getJWTSecret(), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrInvalidKey
}

// IdentityFromClaims rebuilds the caller identity the services consume.
func IdentityFromClaims(claims *JWTClaims) models.Identity {
	return models.Identity{
		Role:      models.Role(claims.Role),
		UserID:    claims.UserID,
		TeacherID: claims.TeacherID,
		StudentID: claims.StudentID,
		Name:      claims.Name,
		Email:     claims.Email,
	}
}
