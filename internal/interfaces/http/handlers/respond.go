package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
)

// respondError funnels every service failure into the uniform error shape.
// Internal detail is only exposed in development mode.
func respondError(c *gin.Context, cfg *config.Config, err error) {
	code := apperrors.CodeOf(err)
	status := apperrors.HTTPStatus(code)

	message := apperrors.MessageOf(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).WithFields(log.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).Error("Request failed")

		if !cfg.IsDevelopment() {
			message = "Internal server error"
		}
	}

	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// respondBindError reports a request binding/validation failure
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Invalid request data",
		"details": err.Error(),
	})
}

// respondOK writes a success response, merging payload into the body
func respondOK(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for key, value := range payload {
		body[key] = value
	}
	c.JSON(status, body)
}
