package utils

import (
	"fmt"
	"strings"
	"time"

	"carelog-service/internal/pkg/constvars"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.New().String()
}

// GenerateSessionJWT signs a dashboard token. The service itself never issues
// tokens; the helper exists for local tooling and tests.
func GenerateSessionJWT(userID, role, secret string, expiry time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(expiry).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GenerateObjectName builds a unique storage key under prefix for fileName.
func GenerateObjectName(prefix, ownerID, fileName string) string {
	timestamp := time.Now().Format("20060102_150405.000000000")
	return fmt.Sprintf("%s/%s/%s_%s", strings.Trim(prefix, "/"), ownerID, timestamp, fileName)
}
