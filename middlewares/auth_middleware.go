package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/drexwrld/synapes-backend/models"
	"github.com/drexwrld/synapes-backend/utils"
)

// Context keys set by Authenticate for downstream handlers.
const (
	CtxUserID = "userID"
	CtxUser   = "user"
)

// Authenticate extracts the bearer token, verifies it, and attaches the
// freshly loaded user record to the request. Every verification failure
// answers with the same message so callers learn nothing about why a
// token was rejected.
func Authenticate(tokens *utils.TokenService, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.AbortFail(c, http.StatusUnauthorized, "authorization required")
			return
		}

		userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.AbortFail(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			utils.AbortFail(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		c.Set(CtxUserID, user.ID)
		c.Set(CtxUser, &user)
		c.Next()
	}
}

// RequireHOC gates head-of-class routes. It reads the record loaded by
// Authenticate, never a client-supplied role field.
func RequireHOC() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			utils.AbortFail(c, http.StatusUnauthorized, "authorization required")
			return
		}
		if !user.IsHOC {
			utils.AbortFail(c, http.StatusForbidden, "head of class access required")
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(CtxUserID)
}
