package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"aurelia-api/internal/core/auth"
	"aurelia-api/internal/domain"
	"aurelia-api/internal/service"
	resp "aurelia-api/internal/transport/http/response"
)

const KeyUser = "user"

// Authenticate parses the bearer token and resolves the user row. Any
// decode, signature, or expiry failure — and a token whose user has since
// been deleted — all answer 401; an is_active=false account answers 400.
func Authenticate(jwter *auth.JWTer, users *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, service.ErrUnauthenticated.Error()))
			return
		}
		claims, err := jwter.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, service.ErrUnauthenticated.Error()))
			return
		}
		u, err := users.UserByID(c.Request.Context(), claims.UID)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, service.ErrUnauthenticated.Error()))
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
			}
			return
		}
		if !u.IsActive {
			c.AbortWithStatusJSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, service.ErrInactiveAccount.Error()))
			return
		}
		c.Set(KeyUser, u)
		c.Next()
	}
}

// RequireAdmin gates admin-only groups; must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil || !u.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Error(resp.CodeForbidden, "admin access required"))
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(KeyUser)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
