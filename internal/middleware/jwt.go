package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/societyhub/backend/internal/auth"
	"github.com/societyhub/backend/pkg/response"
)

const (
	// ContextUserID is the key for user ID in gin context.
	ContextUserID = "user_id"
	// ContextUserRole is the key for user role in gin context.
	ContextUserRole = "user_role"
	// ContextUserEmail is the key for user email in gin context.
	ContextUserEmail = "user_email"
	// ContextSocietyID is the key for the user's society ID in gin context
	// (nil *uuid.UUID when the user belongs to no society).
	ContextSocietyID = "society_id"
)

// JWT returns a middleware that validates the Bearer token and sets user
// claims in context. Authorization is decided from the parsed claims alone;
// there is no waiting state.
func JWT(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}
		claims, err := jwtService.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextSocietyID, claims.SocietyID)
		c.Next()
	}
}
