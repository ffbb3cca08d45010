package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"forgeboard/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type parsedEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *errorBody      `json:"error"`
}

func perform(t *testing.T, router *gin.Engine, method, path string) (*httptest.ResponseRecorder, parsedEnvelope) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))

	var env parsedEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid envelope %q: %v", w.Body.String(), err)
	}
	return w, env
}

func TestSuccessEnvelope(t *testing.T) {
	router := gin.New()
	router.GET("/thing", func(c *gin.Context) {
		respondOK(c, gin.H{"value": 42})
	})

	w, env := perform(t, router, http.MethodGet, "/thing")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !env.Success || env.Error != nil {
		t.Errorf("unexpected envelope: %s", w.Body.String())
	}
}

func TestErrorEnvelope(t *testing.T) {
	router := gin.New()
	router.GET("/boom", func(c *gin.Context) {
		respondError(c, http.StatusBadRequest, "validation_error", "bad input")
	})

	w, env := perform(t, router, http.MethodGet, "/boom")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if env.Success {
		t.Error("success should be false")
	}
	if env.Error == nil || env.Error.Code != "validation_error" || env.Error.Message != "bad input" {
		t.Errorf("unexpected error body: %s", w.Body.String())
	}
}

func TestServiceErrorMapping(t *testing.T) {
	router := gin.New()
	router.GET("/missing", func(c *gin.Context) {
		respondServiceError(c, pgx.ErrNoRows)
	})
	router.GET("/broken", func(c *gin.Context) {
		respondServiceError(c, errors.New("pool exhausted"))
	})
	router.GET("/rejected", func(c *gin.Context) {
		respondServiceError(c, fmt.Errorf("%w: probability and impact must be between 1 and 5", service.ErrValidation))
	})

	w, env := perform(t, router, http.MethodGet, "/missing")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if env.Error.Code != "not_found" {
		t.Errorf("code = %q, want not_found", env.Error.Code)
	}

	w, env = perform(t, router, http.MethodGet, "/broken")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if env.Error.Code != "internal_error" {
		t.Errorf("code = %q, want internal_error", env.Error.Code)
	}
	// Internal detail must not leak into the message.
	if env.Error.Message != "internal server error" {
		t.Errorf("message = %q leaks detail", env.Error.Message)
	}

	// Domain validation failures keep their message and answer 400, so a
	// storage outage on the same path can never masquerade as bad input.
	w, env = perform(t, router, http.MethodGet, "/rejected")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if env.Error.Code != "validation_error" {
		t.Errorf("code = %q, want validation_error", env.Error.Code)
	}
	if !strings.Contains(env.Error.Message, "between 1 and 5") {
		t.Errorf("message = %q lost the validation detail", env.Error.Message)
	}
}

func TestPathIDRejectsGarbage(t *testing.T) {
	router := gin.New()
	router.GET("/items/:id", func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		respondOK(c, gin.H{"id": id})
	})

	w, env := perform(t, router, http.MethodGet, "/items/abc")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if env.Error.Code != "validation_error" {
		t.Errorf("code = %q, want validation_error", env.Error.Code)
	}

	w, _ = perform(t, router, http.MethodGet, "/items/15")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
