package profile

import (
	"errors"
	"net/http"

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
// Get Own Profile - GET /users/profile
//
// Falls back to the bare token identity when no profile row exists yet,
// so the client can render the profile-completion flow.
func (h *Handler) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	p, err := h.Service.Get(userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"success":          true,
				"profile_complete": false,
				"profile": gin.H{
					"user_id":   userID,
					"username":  "",
					"full_name": c.GetString("user_name"),
					"email":     c.GetString("user_email"),
				},
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"profile_complete": true,
		"profile":          p,
	})
}

// ===========================
// Update Own Profile - PUT /users/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.ValidationFailed("body", "invalid input: "+err.Error()))
		return
	}

	p, err := h.Service.CreateOrUpdate(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "profile": p})
}
