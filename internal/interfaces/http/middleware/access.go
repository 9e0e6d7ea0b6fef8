package middleware

import (
	"net/http"

	"github.com/bolibana/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RequireSuperuser creates middleware restricting a route to platform
// superusers.
func RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}
		if !claims.IsSuperuser {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Superuser access required"))
			return
		}
		c.Next()
	}
}

// RequireSiteAdmin creates middleware restricting a route to site
// administrators. Superusers pass as well.
func RequireSiteAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}
		if !claims.IsSuperuser && !claims.IsSiteAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Site administrator access required"))
			return
		}
		c.Next()
	}
}
