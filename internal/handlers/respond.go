package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/dto"
	"github.com/SscSPs/survey_workspace_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	OK      bool   `json:"ok"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse is a success body that only carries a message.
type MessageResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// respondError writes err using its code and kind. Server errors are logged at error
// level and never expose their cause.
func respondError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()))
	} else {
		logger.Warn(msg, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, ErrorResponse{
		OK:      false,
		Code:    apperrors.CodeOf(err),
		Message: apperrors.MessageOf(err),
	})
}

// respondOK writes a success envelope with payload merged into it.
func respondOK(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, err error) {
	respondError(c, apperrors.NewValidationFailedError("Invalid request format: "+err.Error()), "Failed to bind request")
}

// currentUserID returns the authenticated caller or writes a 401.
func currentUserID(c *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{OK: false, Code: apperrors.CodeUnauthorized, Message: "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// pathID parses a numeric path parameter or writes a 400.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := dto.ParseID(c.Param(name), name)
	if err != nil {
		respondError(c, err, "Invalid path parameter")
		return 0, false
	}
	return id, true
}
