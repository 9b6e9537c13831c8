package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"
)

// AdminLoader resolves admin JWT subjects to their database record so
// downstream handlers get a live row, not just claims.
type AdminLoader interface {
	FindByID(id string) (*model.Admin, error)
}

const adminRecordKey = "admin_record"

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("token")
}

// UserAuth requires a valid user token and stores the claims under "user".
func UserAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(token, secret)
		if err != nil || claims.Kind != util.PrincipalUser {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// AdminAuth requires a valid admin token and loads the admin record. Tokens
// whose admin row has since been deleted are rejected.
func AdminAuth(secret string, admins AdminLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(token, secret)
		if err != nil || claims.Kind != util.PrincipalAdmin {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		admin, err := admins.FindByID(claims.SubjectID)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("admin", claims)
		c.Set(adminRecordKey, admin)
		c.Next()
	}
}

// TryAuth accepts user tokens, admin tokens, or no token at all, so a single
// route can answer differently per caller. Invalid tokens are treated as
// anonymous rather than rejected.
func TryAuth(secret string, admins AdminLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := util.ParseJWT(token, secret)
		if err != nil {
			c.Next()
			return
		}

		switch claims.Kind {
		case util.PrincipalUser:
			c.Set("user", claims)
		case util.PrincipalAdmin:
			if admin, err := admins.FindByID(claims.SubjectID); err == nil {
				c.Set("admin", claims)
				c.Set(adminRecordKey, admin)
			}
		}
		c.Next()
	}
}

// CurrentAdmin returns the admin record loaded by AdminAuth or TryAuth, or
// nil for anonymous and user callers.
func CurrentAdmin(c *gin.Context) *model.Admin {
	v, exists := c.Get(adminRecordKey)
	if !exists {
		return nil
	}
	admin, ok := v.(*model.Admin)
	if !ok {
		return nil
	}
	return admin
}
