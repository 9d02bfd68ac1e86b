package models

import "net/http"

// Fixed human-readable messages for the generic error handlers
var statusMessages = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusForbidden:           "Forbidden",
	http.StatusNotFound:            "Not Found Resource",
	http.StatusMethodNotAllowed:    "Method Not Allowed",
	http.StatusUnprocessableEntity: "Unprocessable Entity",
	http.StatusInternalServerError: "Internal Server Error",
}

// NewError builds the error envelope for a status code with its fixed message
func NewError(statusCode int) ErrorResponse {
	message, ok := statusMessages[statusCode]
	if !ok {
		message = http.StatusText(statusCode)
	}
	return ErrorResponse{
		Success: false,
		Error:   statusCode,
		Message: message,
	}
}

// NewErrorWithMessage builds the error envelope with a specific description
func NewErrorWithMessage(statusCode int, message string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   statusCode,
		Message: message,
	}
}
