package response

import (
	"encoding/json"
	"net/http"
)

// Detail is the body shape for error responses and plain status messages
type Detail struct {
	Detail string `json:"detail"`
}

// JSON writes data as a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// OK sends a 200 OK response with data
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created sends a 201 Created response with data
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// Message sends a 200 OK response with a detail string
func Message(w http.ResponseWriter, detail string) {
	JSON(w, http.StatusOK, Detail{Detail: detail})
}

// Error sends an error response with a detail string
func Error(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, Detail{Detail: detail})
}

// BadRequest sends a 400 Bad Request response
func BadRequest(w http.ResponseWriter, detail string) {
	Error(w, http.StatusBadRequest, detail)
}

// NotFound sends a 404 Not Found response
func NotFound(w http.ResponseWriter, detail string) {
	Error(w, http.StatusNotFound, detail)
}

// InternalError sends a 500 Internal Server Error response
func InternalError(w http.ResponseWriter, detail string) {
	Error(w, http.StatusInternalServerError, detail)
}
