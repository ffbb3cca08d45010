package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"forgeboard/internal/model"
	"forgeboard/internal/service"
	"forgeboard/internal/util"
	"forgeboard/pkg/apikey"
	"forgeboard/pkg/trace"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTraceMiddlewarePropagatesInboundID(t *testing.T) {
	router := gin.New()
	router.Use(TraceMiddleware())

	var seen string
	router.GET("/ping", func(c *gin.Context) {
		seen = trace.FromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(trace.HeaderName, "abc123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if seen != "abc123" {
		t.Errorf("handler saw trace id %q, want abc123", seen)
	}
	if got := w.Header().Get(trace.HeaderName); got != "abc123" {
		t.Errorf("response header trace id = %q, want abc123", got)
	}
}

func TestTraceMiddlewareMintsID(t *testing.T) {
	router := gin.New()
	router.Use(TraceMiddleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Header().Get(trace.HeaderName) == "" {
		t.Error("response should carry a minted trace id")
	}
}

func TestJWTAuthMiddleware(t *testing.T) {
	const secret = "test-secret"

	router := gin.New()
	router.GET("/protected", JWTAuthMiddleware(secret), func(c *gin.Context) {
		id, _ := UserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
		var body struct {
			Success bool `json:"success"`
			Error   struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if body.Success || body.Error.Code != "unauthorized" {
			t.Errorf("unexpected envelope: %s", w.Body.String())
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := util.GenerateJWT(7, "other-secret")
		if err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := util.GenerateJWT(7, secret)
		if err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		var body struct {
			UserID int `json:"user_id"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if body.UserID != 7 {
			t.Errorf("user_id = %d, want 7", body.UserID)
		}
	})
}

type fakeKeyAuth struct {
	key          *model.APIKey
	authErr      error
	authorizeErr error
}

func (f *fakeKeyAuth) Authenticate(ctx context.Context, token string) (*model.APIKey, error) {
	return f.key, f.authErr
}

func (f *fakeKeyAuth) Authorize(key *model.APIKey, permission string) error {
	return f.authorizeErr
}

func TestAPIKeyMiddleware(t *testing.T) {
	serve := func(auth APIKeyAuthenticator) *httptest.ResponseRecorder {
		router := gin.New()
		router.GET("/v1", APIKeyMiddleware(auth, "invoices:read"), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		req := httptest.NewRequest(http.MethodGet, "/v1", nil)
		req.Header.Set("Authorization", "Bearer fb_abc_secret")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("invalid key", func(t *testing.T) {
		w := serve(&fakeKeyAuth{authErr: service.ErrInvalidAPIKey})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("insufficient permission", func(t *testing.T) {
		w := serve(&fakeKeyAuth{
			key:          &model.APIKey{Prefix: "abc"},
			authorizeErr: &apikey.PermissionDeniedError{Permission: "invoices:read"},
		})
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("unknown authorize error fails closed", func(t *testing.T) {
		w := serve(&fakeKeyAuth{
			key:          &model.APIKey{Prefix: "abc"},
			authorizeErr: errors.New("permission store unavailable"),
		})
		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500, request must not proceed", w.Code)
		}
	})

	t.Run("authorized", func(t *testing.T) {
		w := serve(&fakeKeyAuth{key: &model.APIKey{Prefix: "abc"}})
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})
}

func TestLoggingMiddlewarePassesThrough(t *testing.T) {
	router := gin.New()
	router.Use(TraceMiddleware(), LoggingMiddleware(zap.NewNop()))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
}
