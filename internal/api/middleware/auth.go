package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/alias"
	"github.com/mohamedbel-ymam/school-vfr-sub000/pkg/jwt"
	"github.com/mohamedbel-ymam/school-vfr-sub000/pkg/redis"
	"github.com/mohamedbel-ymam/school-vfr-sub000/pkg/response"
)

// JWTAuth verifies the Authorization: Bearer <token> access token.
//
// Tokens are minted by the identity service; role claims may still carry
// the legacy localized values, so the claim is normalized through the alias
// resolver before it is injected into the context. The blacklist check is
// skipped when Redis is unavailable rather than rejecting every request.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client, resolver *alias.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "malformed authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token invalid or expired")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "wrong token type")
			c.Abort()
			return
		}

		if rdb != nil && claims.ID != "" {
			if revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID); err == nil && revoked {
				response.Unauthorized(c, 10002, "token revoked")
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", resolver.ResolveRole(claims.Role))

		c.Next()
	}
}

// RoleAuth lets the request through only when the normalized role matches
// one of the allowed canonical roles.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "not authenticated")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "insufficient permissions")
		c.Abort()
	}
}
