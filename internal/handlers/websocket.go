package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-backend/internal/services"
)

// WebSocketHandler attaches a learner or tutor to the booking event hub.
// Identity comes from query parameters; the API has no authentication layer.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Query("userId"), 10, 32)
		if err != nil || userID == 0 {
			c.JSON(400, gin.H{"error": "userId query parameter is required"})
			return
		}

		userType := c.Query("userType")
		if userType != "learner" && userType != "tutor" {
			c.JSON(400, gin.H{"error": "userType must be learner or tutor"})
			return
		}

		services.HandleWebSocket(hub, c.Writer, c.Request, uint(userID), userType)
	}
}
