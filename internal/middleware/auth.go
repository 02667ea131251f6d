package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserPhone       = "userPhone"
	ContextUserEmail       = "userEmail"
	ContextUserDisplayName = "userDisplayName"
)

// AuthMiddleware creates a Gin middleware for Firebase authentication.
// Customers sign in with phone OTP, so the phone_number claim is the
// primary identity; the UID is only a fallback for accounts without one.
func AuthMiddleware(firebaseAuth *auth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}
		idToken := parts[1]

		token, err := firebaseAuth.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid ID token: " + err.Error()})
			return
		}

		phone, _ := token.Claims["phone_number"].(string)
		if phone == "" {
			phone = token.UID
		}
		email, _ := token.Claims["email"].(string)
		name, _ := token.Claims["name"].(string)

		c.Set(ContextUserPhone, phone)
		c.Set(ContextUserEmail, email)
		c.Set(ContextUserDisplayName, name)
		c.Next()
	}
}
