package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/eezystore/backend/internal/infrastructure/auth"
	"github.com/eezystore/backend/internal/interfaces/http/dto"
	"github.com/eezystore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// asUser injects JWT context values the way the auth middleware would,
// so handlers under test see an authenticated caller
func asUser(userID uuid.UUID, role auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &auth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{ID: uuid.New().String()},
			UserID:           userID.String(),
			Username:         "testuser",
			Role:             role,
		}
		c.Set(middleware.JWTClaimsKey, claims)
		c.Set(middleware.JWTUserIDKey, claims.UserID)
		c.Set(middleware.JWTRoleKey, string(claims.Role))
		c.Next()
	}
}

func performRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}
