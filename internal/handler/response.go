// Package handler contains the gin HTTP handlers. Every endpoint answers
// with the same JSON envelope: {"success":true,"data":...} on success,
// {"success":false,"error":{"code","message"}} on failure.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"forgeboard/internal/repository"
	"forgeboard/internal/service"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Meta    any        `json:"meta,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

func respondList(c *gin.Context, data any, meta any) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data, Meta: meta})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, envelope{Success: false, Error: &errorBody{Code: code, Message: message}})
}

// respondServiceError maps service and storage errors onto the envelope.
// Domain validation failures answer 400 with their message; missing rows
// answer 404; everything else is a 500 that never echoes the raw error.
func respondServiceError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrValidation) {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "not_found", "resource not found")
		return
	}
	respondError(c, http.StatusInternalServerError, "internal_error", "internal server error")
}

func respondValidationError(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, "validation_error", err.Error())
}
