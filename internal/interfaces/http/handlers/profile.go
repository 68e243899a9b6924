// internal/interfaces/http/handlers/profile.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/config"
	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/domain/user"
	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/infrastructure/database/mongo"
	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/interfaces/http/middleware"
)

// ProfileHandler handles profile endpoints
type ProfileHandler struct {
	userService *user.Service
	config      *config.Config
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(db *mongo.Database, cfg *config.Config) *ProfileHandler {
	return &ProfileHandler{
		userService: user.NewService(db, cfg),
		config:      cfg,
	}
}

// GetInfo handles GET /profile/info
func (h *ProfileHandler) GetInfo(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	u, err := h.userService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": u,
	})
}
