package util

import (
	"time"

	"schoolhub_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	PrincipalUser  = "user"
	PrincipalAdmin = "admin"
)

// Claims carries either a user or an admin principal; Kind tells which.
type Claims struct {
	SubjectID    string `json:"sub_id"`
	Kind         string `json:"kind"`
	Email        string `json:"email"`
	IsSuperAdmin bool   `json:"is_super_admin,omitempty"`
	jwt.RegisteredClaims
}

func GenerateUserJWT(user *model.User, secret string, expiration time.Duration) (string, error) {
	return signClaims(&Claims{
		SubjectID: user.ID,
		Kind:      PrincipalUser,
		Email:     user.Email,
	}, secret, expiration)
}

func GenerateAdminJWT(admin *model.Admin, secret string, expiration time.Duration) (string, error) {
	return signClaims(&Claims{
		SubjectID:    admin.ID,
		Kind:         PrincipalAdmin,
		Email:        admin.Email,
		IsSuperAdmin: admin.IsSuperAdmin,
	}, secret, expiration)
}

func signClaims(claims *Claims, secret string, expiration time.Duration) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}

func GetUserFromContext(c *gin.Context) *Claims {
	return claimsFromContext(c, "user")
}

func GetAdminFromContext(c *gin.Context) *Claims {
	return claimsFromContext(c, "admin")
}

func claimsFromContext(c *gin.Context, key string) *Claims {
	v, exists := c.Get(key)
	if !exists {
		return nil
	}
	claims, ok := v.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
