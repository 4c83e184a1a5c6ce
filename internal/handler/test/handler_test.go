package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	handlers "jsonblog/internal/handler"
	"jsonblog/internal/middleware"
)

func createTestHandler(authService *MockAuthService, postService *MockPostService) *handlers.Handlers {
	return &handlers.Handlers{
		AuthService: authService,
		PostService: postService,
		Validate:    validator.New(),
		Log:         zap.NewNop(),
	}
}

// testRouter serves h the way cmd/api does, with the real auth middleware in front of protected routes.
func testRouter(h *handlers.Handlers) http.Handler {
	return h.Router(middleware.AuthMiddleware(h.AuthService, zap.NewNop()))
}

func doRequest(handler http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// assertJSONError checks the JSON response with an error
func assertJSONError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	t.Helper()

	assert.Equal(t, expectedStatus, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["error"], expectedError)
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := testRouter(createTestHandler(new(MockAuthService), new(MockPostService)))

	rr := doRequest(router, http.MethodGet, "/api/nothing", nil, "")
	assertJSONError(t, rr, http.StatusNotFound, "Not found")

	rr = doRequest(router, http.MethodPatch, "/api/posts/1", nil, "")
	assertJSONError(t, rr, http.StatusMethodNotAllowed, "Method not allowed")
}
