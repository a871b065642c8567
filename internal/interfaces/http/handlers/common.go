package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/packlane-io/packlane/internal/shared/constants"
)

// currentUserID reads the authenticated user's ID set by the auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}
