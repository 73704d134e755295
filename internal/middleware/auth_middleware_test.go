package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ymnkynp/monkey-timeoff/internal/domain"
	"github.com/ymnkynp/monkey-timeoff/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type authEnvelope struct {
	Ok    bool `json:"ok"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func signToken(t *testing.T, claims domain.AccessClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	var seen domain.AccessClaims
	router := gin.New()
	router.GET("/whoami", middleware.AuthMiddleware(), func(c *gin.Context) {
		seen.UserID = c.GetString("user_id")
		seen.EmployeeID = c.GetString("employee_id")
		seen.Role = c.GetString("role")
		c.Status(http.StatusOK)
	})

	get := func(t *testing.T, token string) *httptest.ResponseRecorder {
		t.Helper()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("success exposes identity to handlers", func(t *testing.T) {
		seen = domain.AccessClaims{}
		claims := domain.AccessClaims{
			UserID:     uuid.NewString(),
			EmployeeID: uuid.NewString(),
			Role:       "manager",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}

		w := get(t, signToken(t, claims))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, claims.UserID, seen.UserID)
		assert.Equal(t, claims.EmployeeID, seen.EmployeeID)
		assert.Equal(t, "manager", seen.Role)
	})

	t.Run("negative expired token", func(t *testing.T) {
		claims := domain.AccessClaims{
			UserID:     uuid.NewString(),
			EmployeeID: uuid.NewString(),
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}

		w := get(t, signToken(t, claims))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var env authEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "token has expired", env.Error.Message)
	})

	t.Run("negative token without employee id", func(t *testing.T) {
		claims := domain.AccessClaims{
			UserID: uuid.NewString(),
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}

		w := get(t, signToken(t, claims))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var env authEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "INVALID_TOKEN", env.Error.Code)
	})

	t.Run("negative missing token", func(t *testing.T) {
		w := get(t, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
