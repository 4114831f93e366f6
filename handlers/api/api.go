// Package api holds the response envelopes shared by every route.
package api

import (
	"net/http"

	"github.com/go-chi/render"
)

type (
	// SignupResponse acknowledges a created signup.
	SignupResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		ID      string `json:"id"`
	}

	// ListResponse wraps a full-collection read.
	ListResponse struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
		Data    any  `json:"data"`
	}

	// ErrorResponse is the failure envelope. Error carries internal detail
	// and is omitted in production.
	ErrorResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Error   string `json:"error,omitempty"`
	}
)

// Created writes a 201 acknowledgement for a stored signup.
func Created(w http.ResponseWriter, r *http.Request, message, id string) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, SignupResponse{Success: true, Message: message, ID: id})
}

// List writes a 200 collection envelope.
func List(w http.ResponseWriter, r *http.Request, count int, data any) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, ListResponse{Success: true, Count: count, Data: data})
}

// Error writes the failure envelope. The error detail is attached only when
// exposeDetail is set.
func Error(w http.ResponseWriter, r *http.Request, status int, message string, err error, exposeDetail bool) {
	resp := ErrorResponse{Message: message}
	if exposeDetail && err != nil {
		resp.Error = err.Error()
	}
	render.Status(r, status)
	render.JSON(w, r, resp)
}
