package utils

import (
	"os"
	"time"

	"github.com/Alianama/food-gamification-backend/models"

	"github.com/golang-jwt/jwt/v5"
)

func accessTTL() time.Duration {
	if v := os.Getenv("JWT_ACCESS_EXPIRES_IN"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return 15 * time.Minute
}

func refreshTTL() time.Duration {
	if v := os.Getenv("JWT_REFRESH_EXPIRES_IN"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return 7 * 24 * time.Hour
}

// GenerateAccessToken signs a short-lived token carrying identity and
// role; tokenVersion lets a logout invalidate everything issued before.
func GenerateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":           user.ID,
		"username":     user.Username,
		"fullName":     user.FullName,
		"role":         user.Role.Name,
		"tokenVersion": user.TokenVersion,
		"exp":          time.Now().Add(accessTTL()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func GenerateRefreshToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":           user.ID,
		"tokenVersion": user.TokenVersion,
		"exp":          time.Now().Add(refreshTTL()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_REFRESH_SECRET")))
}

func GenerateTokens(user *models.User) (access, refresh string, err error) {
	if access, err = GenerateAccessToken(user); err != nil {
		return "", "", err
	}
	if refresh, err = GenerateRefreshToken(user); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func parseHS256(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func VerifyAccessToken(tokenString string) (jwt.MapClaims, error) {
	return parseHS256(tokenString, []byte(os.Getenv("JWT_SECRET")))
}

func VerifyRefreshToken(tokenString string) (jwt.MapClaims, error) {
	return parseHS256(tokenString, []byte(os.Getenv("JWT_REFRESH_SECRET")))
}
