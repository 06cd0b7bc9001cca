package main

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"resume-chatbot/backend/internal/auth"
	"resume-chatbot/backend/internal/chatbot"
	"resume-chatbot/backend/internal/constants"
	"resume-chatbot/backend/internal/graph"
	"resume-chatbot/backend/internal/pdf"
	"resume-chatbot/backend/pkg/config"
	"resume-chatbot/backend/pkg/logger"
)

const (
	ctxUserIDKey = "userID"
	ctxEmailKey  = "email"

	// maxResumeSize caps uploaded resume PDFs at 10 MiB
	maxResumeSize = 10 << 20
)

// routeConfig is the slice of configuration the handlers need
type routeConfig interface {
	secureCookies() bool
	jwtSecret() string
}

type appRouteConfig struct {
	cfg *config.Config
}

func (a appRouteConfig) secureCookies() bool { return a.cfg.IsProduction() }
func (a appRouteConfig) jwtSecret() string   { return a.cfg.JWTSecret }

// authRequired pulls the access-token cookie, validates it and
// injects the authenticated identity into the request context
func authRequired(cfg routeConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(accessTokenCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		claims, err := auth.ParseToken(token, cfg.jwtSecret())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ctxUserIDKey, claims.Subject)
		c.Set(ctxEmailKey, claims.Email)
		c.Next()
	}
}

type sendMessageRequest struct {
	Role      string    `json:"role" binding:"required,oneof=system user assistant"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp" binding:"required"`
}

func registerChatbotRoutes(r *gin.RouterGroup, chatService *chatbot.Service, cfg routeConfig) {
	log := logger.Get()
	r.Use(authRequired(cfg))

	r.GET("/greet-message", func(c *gin.Context) {
		greeting, err := chatService.SendGreeting(c.Request.Context())
		if err != nil {
			log.Error("Greeting failed", zap.Error(err))
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"role":    constants.RoleAssistant,
			"content": greeting,
		})
	})

	r.POST("/send-message", func(c *gin.Context) {
		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := chatService.SendMessage(c.Request.Context(), chatbot.TurnInput{
			UserID:    c.GetString(ctxUserIDKey),
			Role:      req.Role,
			Content:   req.Content,
			Timestamp: req.Timestamp,
		})
		if err != nil {
			log.Error("Turn failed", zap.Error(err))
			respondError(c, err)
			return
		}
		if result == nil {
			// Blank content is a no-op, not an error
			c.JSON(http.StatusOK, gin.H{"message": ""})
			return
		}

		c.JSON(http.StatusOK, result)
	})

	r.GET("/message-history", func(c *gin.Context) {
		messages, err := chatService.History(c.Request.Context(), c.GetString(ctxUserIDKey))
		if err != nil {
			log.Error("History fetch failed", zap.Error(err))
			respondError(c, err)
			return
		}
		if messages == nil {
			messages = []graph.Message{}
		}
		c.JSON(http.StatusOK, messages)
	})

	r.POST("/upload-pdf", func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		if fileHeader.Size > maxResumeSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
			return
		}
		if ct := fileHeader.Header.Get("Content-Type"); ct != "application/pdf" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "only application/pdf uploads are accepted"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
			return
		}

		text, err := pdf.ExtractText(data)
		if err != nil {
			log.Error("PDF extraction failed", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse PDF"})
			return
		}

		userID := c.GetString(ctxUserIDKey)
		content := fmt.Sprintf("User id %s resume in pdf form and its content here:\n%s", userID, text)

		if _, err := chatService.SendMessage(c.Request.Context(), chatbot.TurnInput{
			UserID:    userID,
			Role:      constants.RoleUser,
			Content:   content,
			Timestamp: time.Now().UTC(),
		}); err != nil {
			log.Error("Resume ingestion turn failed", zap.Error(err))
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "PDF uploaded and processed"})
	})
}
