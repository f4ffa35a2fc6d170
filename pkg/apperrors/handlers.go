package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON error envelope: a success marker plus the message.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// HandleError translates any error into the JSON error envelope.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	message := appErr.Message
	if appErr.HTTPCode >= 500 {
		slog.Error("server error", "error", appErr.Error())
		if appErr.Err != nil {
			message = appErr.Err.Error()
		}
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{
		Success: false,
		Error:   message,
		Details: appErr.Details,
	})
}

// AsAppError attempts to convert an error into *AppError.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
