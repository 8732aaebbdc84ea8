package event

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/handson-platform/handson-backend/internal/apperror"
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

// ===========================
// Create Event - POST /events
func (h *Handler) CreateEvent(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.ValidationFailed("body", "invalid input: "+err.Error()))
		return
	}

	e, err := h.Service.Create(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "event": e})
}

// ===========================
// List Events - GET /events?category=&location=&type=&start_date=&limit=&offset=
func (h *Handler) ListEvents(c *gin.Context) {
	filters := ListFilters{
		Category: c.Query("category"),
		Location: c.Query("location"),
	}

	// "help" lists ongoing opportunities, "event" scheduled ones
	switch c.Query("type") {
	case "help":
		ongoing := true
		filters.Ongoing = &ongoing
	case "event":
		ongoing := false
		filters.Ongoing = &ongoing
	}
	if raw := c.Query("ongoing"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filters.Ongoing = &v
		}
	}

	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(c, apperror.ValidationFailed("start_date", "invalid start_date, use YYYY-MM-DD"))
			return
		}
		filters.StartDateFrom = &t
	}

	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filters.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	events, err := h.Service.List(filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(events),
		"events":  events,
	})
}

// ===========================
// Get Event - GET /events/:id
func (h *Handler) GetEventByID(c *gin.Context) {
	e, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "event": e})
}

// ===========================
// Update Event - PUT /events/:id
func (h *Handler) UpdateEvent(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.ValidationFailed("body", "invalid input: "+err.Error()))
		return
	}

	e, err := h.Service.Update(c.Param("id"), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "event": e})
}

// ===========================
// Delete Event - DELETE /events/:id
func (h *Handler) DeleteEvent(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.Service.Delete(c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event deleted successfully"})
}
