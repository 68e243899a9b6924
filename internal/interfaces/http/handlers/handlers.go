// internal/interfaces/http/handlers/handlers.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/pkg/apperror"
)

// respondError translates any error into the JSON error envelope. Nothing
// crosses the HTTP boundary unformatted.
func respondError(c *gin.Context, err error) {
	appErr := apperror.FromError(err)
	c.JSON(appErr.StatusCode(), gin.H{
		"error": appErr.Message,
	})
}
