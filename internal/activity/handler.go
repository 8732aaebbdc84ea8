package activity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/handson-platform/handson-backend/internal/apperror"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// Volunteer History - GET /users/volunteer-history
func (h *Handler) GetVolunteerHistory(c *gin.Context) {
	userID := c.GetString("user_id")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	activities, total, err := h.Service.ListByUser(userID, limit, offset)
	if err != nil {
		c.JSON(apperror.StatusCode(err), gin.H{"message": "Failed to fetch volunteer history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"count":      len(activities),
		"total":      total,
		"activities": activities,
	})
}
