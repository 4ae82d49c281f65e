package handler

import (
	"net/http"

	"dailypay-backend/internal/middleware"
	"dailypay-backend/internal/usecase/user"
	"dailypay-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *user.Service
	cookie  sessionCookie
}

func NewAuthHandler(service *user.Service, cookieName string, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		service: service,
		cookie:  sessionCookie{name: cookieName, secure: secureCookie},
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/reset-password", h.ResetPassword)
	}
}

// RegisterSessionRoutes mounts routes that need a verified session.
func (h *AuthHandler) RegisterSessionRoutes(session *gin.RouterGroup) {
	authGroup := session.Group("/auth")
	{
		authGroup.GET("/me", h.Me)
		authGroup.GET("/users", middleware.AdminOnly(), h.ListUsers)
	}
}

func (h *AuthHandler) RegisterBootstrapRoute(router *gin.RouterGroup) {
	router.GET("/auth/make-me-admin", h.MakeMeAdmin)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.cookie.set(c, resp.Token, h.service.SessionTTL())
	utils.SuccessResponse(c, http.StatusCreated, "User registered successfully", resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.cookie.set(c, resp.Token, h.service.SessionTTL())
	utils.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookie.clear(c)
	utils.SuccessResponse(c, http.StatusOK, "Logged out", nil)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req user.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "If that email exists, a reset link was sent.", nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req user.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password updated successfully", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.service.Me(c.Request.Context(), middleware.MustIdentity(c).AccountID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", profile)
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", users)
}

func (h *AuthHandler) MakeMeAdmin(c *gin.Context) {
	promoted, err := h.service.PromoteBootstrapAdmin(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Admin role set successfully!", promoted)
}
