// file: internals/features/users/auth/service/token_service.go
package service

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	userModel "schoolku_backend/internals/features/users/user/model"
)

const accessTTLDefault = 2 * time.Hour

// CreateAccessToken issues the HS256 access token the auth middleware expects:
// id (subject), school_id (tenant scope), role, user_name, exp/iat.
func CreateAccessToken(u *userModel.UserModel, secret string) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(accessTTLDefault)
	claims := jwt.MapClaims{
		"id":        u.UserID.String(),
		"school_id": u.UserSchoolID.String(),
		"role":      u.UserRole,
		"user_name": u.UserName,
		"iat":       now.Unix(),
		"exp":       exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// TokenExpiry reads the exp claim of a signed token. Claims validation is
// skipped; the caller only needs the lifetime, not a live session.
func TokenExpiry(tokenStr, secret string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}); err != nil {
		return time.Time{}, false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(exp), 0), true
}
