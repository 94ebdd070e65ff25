package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopSense/pkg/logger"
	jsonres "shopSense/pkg/response"
)

// ErrorHandler is the global echo error handler for errors that escape
// individual handlers.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if httpErr, ok := err.(*echo.HTTPError); ok {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("unhandled request error", "path", c.Path(), "error", err)
	}

	if jsonErr := c.JSON(code, jsonres.Error(http.StatusText(code), message, nil)); jsonErr != nil {
		logger.Error("failed to write error response", "error", jsonErr)
	}
}
