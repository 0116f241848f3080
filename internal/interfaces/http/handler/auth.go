package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/infrastructure/logger"
	"github.com/shop/backend/internal/interfaces/http/dto"
	"github.com/shop/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// LoginRequest is the body of POST /admin/login
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=72"`
}

// LogoutResponse confirms a revoked token
type LogoutResponse struct {
	Message string `json:"message"`
}

// AuthHandler issues and revokes admin access tokens
type AuthHandler struct {
	BaseHandler
	authenticator *auth.Authenticator
	jwtService    *auth.JWTService
	blacklist     auth.TokenBlacklist
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authenticator *auth.Authenticator, jwtService *auth.JWTService, blacklist auth.TokenBlacklist) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		jwtService:    jwtService,
		blacklist:     blacklist,
	}
}

// Login checks the admin credentials and returns an access token.
//
//	POST /admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	log := logger.GetGinLogger(c)
	if err := h.authenticator.Authenticate(req.Username, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Warn("Admin login rejected", zap.String("username", req.Username))
			h.Unauthorized(c, dto.ErrCodeInvalidCredentials, "Invalid username or password")
			return
		}
		h.HandleDomainError(c, err)
		return
	}

	token, err := h.jwtService.GenerateAccessToken(req.Username)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	log.Info("Admin logged in", zap.String("username", req.Username))
	h.Success(c, token)
}

// Logout revokes the presented token until it would have expired.
//
//	POST /admin/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}

	if err := h.blacklist.AddToBlacklist(c.Request.Context(), claims.ID, claims.RemainingTTL()); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, LogoutResponse{Message: "Logged out successfully"})
}
