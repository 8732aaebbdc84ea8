package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/handson-platform/handson-backend/internal/apperror"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

func respondError(c *gin.Context, err error) {
	c.JSON(apperror.StatusCode(err), gin.H{"message": err.Error()})
}

// Session cookie shared with the browser client. Not Secure so local
// development over plain HTTP works; a TLS terminator fronts production.
const tokenCookie = "token"

func setSessionCookie(c *gin.Context, token string, maxAge int) {
	if maxAge <= 0 {
		maxAge = 3600
	}
	c.SetCookie(tokenCookie, token, maxAge, "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(tokenCookie, "", -1, "/", "", false, true)
}

// ===============================
// Register - POST /users/register
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.ValidationFailed("body", "invalid input: "+err.Error()))
		return
	}

	session, p, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	setSessionCookie(c, session.AccessToken, session.ExpiresIn)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful",
		"user": gin.H{
			"id":    session.User.ID,
			"email": session.User.Email,
		},
		"profile": p,
	})
}

// ===============================
// Login - POST /users/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.ValidationFailed("body", "invalid input: "+err.Error()))
		return
	}

	session, p, err := h.Service.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	setSessionCookie(c, session.AccessToken, session.ExpiresIn)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":    session.User.ID,
			"email": session.User.Email,
		},
		"profile":      p,
		"access_token": session.AccessToken,
	})
}

// ===============================
// Google Login - POST /users/google-login
func (h *Handler) GoogleLogin(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.ValidationFailed("access_token", "access_token is required"))
		return
	}

	identity, p, err := h.Service.GoogleLogin(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	setSessionCookie(c, req.AccessToken, 0)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":    identity.UserID,
			"email": identity.Email,
		},
		"profile": p,
	})
}

// ===============================
// Logout - POST /users/logout
func (h *Handler) Logout(c *gin.Context) {
	token, _ := c.Cookie(tokenCookie)
	if token == "" {
		if authHeader := c.GetHeader("Authorization"); len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			token = authHeader[7:]
		}
	}

	_ = h.Service.Logout(c.Request.Context(), token)
	clearSessionCookie(c)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}
