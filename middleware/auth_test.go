package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somin-jeong/quote-to-wake/config"
	"github.com/somin-jeong/quote-to-wake/utils"
)

func newAuthTestRouter(t *testing.T) *gin.Engine {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	config.Reset()
	t.Cleanup(config.Reset)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthRequired(), func(ctx *gin.Context) {
		id := ctx.GetUint(ContextUserIDKey)
		utils.Success(ctx, gin.H{"user_id": id})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeCode(t *testing.T, w *httptest.ResponseRecorder) int {
	var body utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestAuthRequiredMissingHeader(t *testing.T) {
	r := newAuthTestRouter(t)

	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 40101, decodeCode(t, w))
}

func TestAuthRequiredMalformedHeader(t *testing.T) {
	r := newAuthTestRouter(t)

	w := doRequest(r, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 40102, decodeCode(t, w))
}

func TestAuthRequiredEmptyToken(t *testing.T) {
	r := newAuthTestRouter(t)

	w := doRequest(r, "Bearer ")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 40103, decodeCode(t, w))
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	r := newAuthTestRouter(t)

	w := doRequest(r, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 40105, decodeCode(t, w))
}

func TestAuthRequiredValidToken(t *testing.T) {
	r := newAuthTestRouter(t)

	token, err := utils.GenerateToken(7, "somin", time.Hour)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)

	var body utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(7), data["user_id"])
}
