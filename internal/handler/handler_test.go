package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nakliye/internal/middleware"
	"nakliye/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Meta   *struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
	Error string `json:"error"`
}

func newTestRouter(t *testing.T, register func(api *gin.RouterGroup, auth *middleware.Auth)) (*gin.Engine, *token.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	tokens := token.NewManager(testSecret, time.Hour)
	auth := middleware.NewAuth(tokens, 24*time.Hour, false)

	r := gin.New()
	register(r.Group("/api"), auth)
	return r, tokens
}

func bearer(t *testing.T, tokens *token.Manager, userID, role, companyID string) string {
	t.Helper()
	raw, _, err := tokens.Issue(userID, role, companyID)
	require.NoError(t, err)
	return "Bearer " + raw
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}, authz string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}
