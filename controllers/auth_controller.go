package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	config "github.com/momin096/MediCamp-server/config"
)

// IssueToken signs the caller-supplied claims with a fixed 1-hour expiry.
// There is no credential check here; identity is established upstream by the
// client's identity provider.
func IssueToken(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload map[string]interface{}
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
			return
		}

		claims := jwt.MapClaims{}
		for k, v := range payload {
			claims[k] = v
		}
		claims["exp"] = time.Now().Add(time.Hour).Unix()

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(cfg.JWTSecret))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not sign token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": signed})
	}
}
