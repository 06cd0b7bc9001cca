package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"resume-chatbot/backend/internal/auth"
	"resume-chatbot/backend/internal/constants"
	apperrors "resume-chatbot/backend/pkg/errors"
	"resume-chatbot/backend/pkg/logger"
)

const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func registerAuthRoutes(r *gin.RouterGroup, authService *auth.Service, cfg routeConfig) {
	log := logger.Get()

	r.POST("/register", func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, err := authService.Register(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"email":   user.Email,
			"message": "User registered successfully",
		})
	})

	r.POST("/login", func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		_, pair, err := authService.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		setAuthCookie(c, accessTokenCookie, pair.AccessToken, int(constants.AccessTokenTTL.Seconds()), cfg.secureCookies())
		setAuthCookie(c, refreshTokenCookie, pair.RefreshToken, int(constants.RefreshTokenTTL.Seconds()), cfg.secureCookies())

		c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
	})

	r.POST("/refresh", func(c *gin.Context) {
		token, err := c.Cookie(refreshTokenCookie)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing refresh token"})
			return
		}

		access, err := authService.Refresh(token)
		if err != nil {
			log.Warn("Token refresh failed", zap.Error(err))
			respondError(c, err)
			return
		}

		setAuthCookie(c, accessTokenCookie, access, int(constants.AccessTokenTTL.Seconds()), cfg.secureCookies())
		c.JSON(http.StatusOK, gin.H{"message": "Token successfully refreshed"})
	})

	r.POST("/logout", authRequired(cfg), func(c *gin.Context) {
		setAuthCookie(c, accessTokenCookie, "", -1, cfg.secureCookies())
		setAuthCookie(c, refreshTokenCookie, "", -1, cfg.secureCookies())
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	})

	r.GET("/user", authRequired(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString(ctxEmailKey)})
	})
}

func setAuthCookie(c *gin.Context, name, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, value, maxAge, "/", "", secure, true)
}

// respondError maps the error taxonomy to HTTP statuses. Everything
// is surfaced to the caller; nothing degrades silently.
func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsErrorType(err, apperrors.ErrorTypeAuth):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case isConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperrors.IsErrorType(err, apperrors.ErrorTypeProvider):
		// Provider failures carry the provider's message back as a
		// bad-request-class failure
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func isConflict(err error) bool {
	_, ok := err.(*apperrors.ErrConflict)
	return ok
}
