package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/steffenjoachim/my-shop/internal/domain/user"
)

const (
	CtxUserIDKey = "user_id"
	CtxRoleKey   = "role"
)

func AuthMiddleware(jwtMgr *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token := strings.TrimPrefix(h, "Bearer ")
		claims, err := jwtMgr.ParseAccess(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid access token"})
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxRoleKey, claims.Role)
		c.Next()
	}
}

func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, _ := c.Get(CtxRoleKey)
		rStr, ok := r.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		for _, role := range roles {
			if rStr == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// RequireStaff admits the shipping group and admins; both adjudicate
// returns and manage shipments.
func RequireStaff() gin.HandlerFunc {
	return RequireRole(user.RoleAdmin, user.RoleShipping)
}

// UserID reads the authenticated user id set by AuthMiddleware.
func UserID(c *gin.Context) int64 {
	v, _ := c.Get(CtxUserIDKey)
	id, _ := v.(int64)
	return id
}

// IsStaff reports whether the request's role is a staff role.
func IsStaff(c *gin.Context) bool {
	v, _ := c.Get(CtxRoleKey)
	role, _ := v.(string)
	return user.IsStaff(role)
}
