package helprequest

import (
	"net/http"
	"strconv"
	"strings"

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
		Email:  c.GetString("user_email"),
		IP:     middleware.GetIPFromContext(c),
	}
}

// ===========================
// Create - POST /help-requests
func (h *Handler) CreateHelpRequest(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateHelpRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.ValidationFailed("body", "invalid input: "+err.Error()))
		return
	}

	hr, err := h.Service.Create(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "helpRequest": hr})
}

// ===========================
// List - GET /help-requests?urgency=&category=&status=&limit=&offset=
func (h *Handler) ListHelpRequests(c *gin.Context) {
	filters := ListFilters{
		Urgency:  strings.ToLower(c.Query("urgency")),
		Category: c.Query("category"),
		Status:   strings.ToLower(c.Query("status")),
	}
	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filters.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	requests, err := h.Service.List(filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"count":        len(requests),
		"helpRequests": requests,
	})
}

// ===========================
// Get - GET /help-requests/:id
func (h *Handler) GetHelpRequestByID(c *gin.Context) {
	hr, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "helpRequest": hr})
}

// ===========================
// Update - PUT /help-requests/:id
func (h *Handler) UpdateHelpRequest(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdateHelpRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.ValidationFailed("body", "invalid input: "+err.Error()))
		return
	}

	hr, err := h.Service.Update(c.Param("id"), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "helpRequest": hr})
}

// ===========================
// Delete - DELETE /help-requests/:id
func (h *Handler) DeleteHelpRequest(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.Service.Delete(c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Help request deleted successfully"})
}

// ===========================
// Offer Help - POST /help-requests/:id/offer-help
func (h *Handler) OfferHelp(c *gin.Context) {
	actor := actorFromContext(c)

	var req OfferHelpRequest
	// body is optional, an empty offer is valid
	_ = c.ShouldBindJSON(&req)

	helper, isNew, err := h.Service.OfferHelp(c.Request.Context(), c.Param("id"), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	message := "You have already offered to help"
	if isNew {
		status = http.StatusCreated
		message = "Help offer recorded"
	}

	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"helper":  helper,
	})
}

// ===========================
// List Helpers - GET /help-requests/:id/helpers
func (h *Handler) ListHelpers(c *gin.Context) {
	helpers, err := h.Service.ListHelpers(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(helpers),
		"helpers": helpers,
	})
}

// ===========================
// Add Comment - POST /help-requests/:id/comments
func (h *Handler) AddComment(c *gin.Context) {
	actor := actorFromContext(c)

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.ValidationFailed("content", "content is required"))
		return
	}

	comment, err := h.Service.AddComment(c.Request.Context(), c.Param("id"), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "comment": comment})
}

// ===========================
// List Comments - GET /help-requests/:id/comments
func (h *Handler) ListComments(c *gin.Context) {
	comments, err := h.Service.ListComments(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(comments),
		"comments": comments,
	})
}
