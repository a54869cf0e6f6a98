package security

import (
	"errors"
	"strconv"
	"time"

	"catalog_service/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateToken mints a bearer token for the given user. The subject is the
// user id encoded as a decimal string so it survives JSON number handling on
// every client.
func GenerateToken(userID int64, name string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"name": name,
		"iat":  now.Unix(),
		"exp":  now.Add(config.AppConfig.JWTExp).Unix(),
		"jti":  uuid.NewString(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// Helper functions to extract claims, can be used in middleware or services
func GetUserIDFromClaims(claims jwt.MapClaims) (int64, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, errors.New("sub claim is missing or not a string")
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, errors.New("sub claim is not a valid user id")
	}
	return id, nil
}

func GetNameFromClaims(claims jwt.MapClaims) (string, error) {
	name, ok := claims["name"].(string)
	if !ok {
		return "", errors.New("name claim is missing or not a string")
	}
	return name, nil
}
