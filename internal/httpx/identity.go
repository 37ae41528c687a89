package httpx

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Identity reads the authenticated user and client IDs set by the upstream
// auth layer. Requests without them are rejected before reaching any service.
func Identity(c *gin.Context) (userID, clientID int64, ok bool) {
	userID, errUser := strconv.ParseInt(c.GetHeader("X-User-ID"), 10, 64)
	clientID, errClient := strconv.ParseInt(c.GetHeader("X-Client-ID"), 10, 64)
	if errUser != nil || errClient != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Missing or invalid identity headers",
		})
		return 0, 0, false
	}
	return userID, clientID, true
}
