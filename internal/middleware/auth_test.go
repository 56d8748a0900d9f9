package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medlaunch/onboard-api/internal/model"
	"github.com/medlaunch/onboard-api/pkg/auth"
)

type stubAuthService struct {
	claims *model.TokenClaims
}

func (s *stubAuthService) Login(context.Context, string, string) (*model.TokenResponse, error) {
	return nil, nil
}

func (s *stubAuthService) Refresh(context.Context, string) (*model.TokenResponse, error) {
	return nil, nil
}

func (s *stubAuthService) Logout(context.Context, string) error {
	return nil
}

func (s *stubAuthService) ValidateToken(_ context.Context, token string) (*model.TokenClaims, error) {
	if token != "valid-token" || s.claims == nil {
		return nil, auth.ErrInvalidToken
	}
	return s.claims, nil
}

func setupProtected(svc *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewAuthMiddleware(svc).Authenticate())
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"adminID":    c.MustGet("adminID"),
			"adminEmail": c.MustGet("adminEmail"),
		})
	})
	return r
}

func request(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMissingHeader(t *testing.T) {
	r := setupProtected(&stubAuthService{})

	w := request(r, "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "يجب تسجيل الدخول")
}

func TestAuthenticateRejectsNonBearerScheme(t *testing.T) {
	r := setupProtected(&stubAuthService{})

	w := request(r, "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateRejectsInvalidToken(t *testing.T) {
	r := setupProtected(&stubAuthService{})

	w := request(r, "Bearer stale-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateSetsIdentity(t *testing.T) {
	adminID := uuid.New()
	svc := &stubAuthService{
		claims: &model.TokenClaims{AdminID: adminID, Email: "admin@example.com"},
	}
	r := setupProtected(svc)

	w := request(r, "Bearer valid-token")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), adminID.String())
	assert.Contains(t, w.Body.String(), "admin@example.com")
}
