package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/handson-platform/handson-backend/internal/apperror"
	"github.com/handson-platform/handson-backend/utils"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// List In-App Notifications - GET /notifications/inapp
func (h *Handler) ListInApp(c *gin.Context) {
	userID := c.GetString("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, unread, err := h.Service.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(apperror.StatusCode(err), gin.H{"message": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"count":         len(items),
		"unread":        unread,
		"notifications": items,
	})
}

// ===========================
// Mark Read - PUT /notifications/inapp/:id/read
func (h *Handler) MarkInAppRead(c *gin.Context) {
	userID := c.GetString("user_id")
	id := c.Param("id")

	if err := h.Service.MarkRead(c.Request.Context(), id, userID); err != nil {
		c.JSON(apperror.StatusCode(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification marked as read"})
}

// ===========================
// Live Stream - GET /notifications/stream (SSE)
func (h *Handler) StreamInApp(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}
	if utils.RedisClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Live notifications unavailable"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.Status(http.StatusInternalServerError)
		return
	}

	channel := "notifications:user:" + userID
	sub := utils.RedisClient.Subscribe(c, channel)
	defer sub.Close()

	_, _ = c.Writer.Write([]byte(":ok\n\n"))
	flusher.Flush()

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = c.Writer.Write([]byte("event: inapp\n"))
			_, _ = c.Writer.Write([]byte("data: " + msg.Payload + "\n\n"))
			flusher.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}
