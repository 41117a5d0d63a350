package security

import (
	"fmt"
	"time"

	"assetdesk/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type TokenIssuer struct {
	secret []byte
	expiry time.Duration
}

func NewTokenIssuer(secret string, expiry time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is not set")
	}
	if expiry <= 0 {
		expiry = 120 * time.Hour
	}

	return &TokenIssuer{secret: []byte(secret), expiry: expiry}, nil
}

func (t *TokenIssuer) GenerateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"userID": user.ID,
		"role":   string(user.Role),
		"email":  user.Email,
		"exp":    time.Now().Add(t.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *TokenIssuer) ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}

	return claims, nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func GetUserIDFromContext(c *gin.Context) (string, error) {
	userID, ok := c.Get("userID")
	if !ok {
		return "", fmt.Errorf("userID missing from context")
	}

	id, ok := userID.(string)
	if !ok || id == "" {
		return "", fmt.Errorf("userID is not a string")
	}

	return id, nil
}
