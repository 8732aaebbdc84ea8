package participation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/handson-platform/handson-backend/internal/apperror"
	"github.com/handson-platform/handson-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func respondError(c *gin.Context, err error) {
	c.JSON(apperror.StatusCode(err), gin.H{"message": err.Error()})
}

func actorFromContext(c *gin.Context) Actor {
	return Actor{
		UserID: c.GetString("user_id"),
		Name:   c.GetString("user_name"),
		IP:     middleware.GetIPFromContext(c),
	}
}

// ===========================
// Register - POST /events/:id/register
func (h *Handler) Register(c *gin.Context) {
	actor := actorFromContext(c)

	row, isNew, err := h.Service.Register(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	message := "Registration confirmed"
	if isNew {
		status = http.StatusCreated
		message = "Registered successfully"
	}

	c.JSON(status, gin.H{
		"success":           true,
		"message":           message,
		"isNewRegistration": isNew,
		"registration":      row,
	})
}

// ===========================
// Cancel - POST /events/:id/cancel
func (h *Handler) Cancel(c *gin.Context) {
	actor := actorFromContext(c)

	row, err := h.Service.Cancel(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Registration canceled",
		"registration": row,
	})
}

// ===========================
// Registration Status - GET /events/:id/registration-status
func (h *Handler) RegistrationStatus(c *gin.Context) {
	userID := c.GetString("user_id")

	registered, err := h.Service.Status(c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "isRegistered": registered})
}

// ===========================
// My Events - GET /events/user/registered?status=
func (h *Handler) ListUserEvents(c *gin.Context) {
	userID := c.GetString("user_id")

	entries, err := h.Service.ListUserEvents(userID, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(entries),
		"events":  entries,
	})
}
