package errors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Exception is an application error that knows the HTTP status it maps to.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// HTTPError turns err into an echo error, keeping an Exception's message and
// replacing anything else with fallback so internals stay out of responses.
func HTTPError(err error, fallback string) *echo.HTTPError {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return echo.NewHTTPError(appErr.StatusCode, appErr.Message).SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, fallback).SetInternal(err)
}
