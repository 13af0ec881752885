package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"user-service/internal/adapter/gin/handler"
	"user-service/internal/adapter/repository/fabricated"
	"user-service/internal/usecase/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const nilID = "00000000-0000-0000-0000-000000000000"

func setupRouter(t *testing.T, opts Options) *gin.Engine {
	log := zaptest.NewLogger(t)
	uc := user.New(fabricated.NewUserRepository(log), log)
	opts.Mode = gin.TestMode
	opts.ServiceName = "user-service-test"
	return SetupRouter(handler.NewUserHandler(uc, log), opts, log)
}

func do(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeUser(t *testing.T, w *httptest.ResponseRecorder) handler.UserResponse {
	var u handler.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	return u
}

func decodeUsers(t *testing.T, w *httptest.ResponseRecorder) []handler.UserResponse {
	var users []handler.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	return users
}

func TestHealth(t *testing.T) {
	r := setupRouter(t, Options{})

	w := do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = do(r, http.MethodGet, "/health", `{"anything":true}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestCreateUser_EchoesPayload(t *testing.T) {
	r := setupRouter(t, Options{})

	payloads := []struct{ name, email string }{
		{"Alice", "alice@example.com"},
		{"B", "@"},
		{"Ünïcode Name", "x@y"},
	}

	seen := map[uuid.UUID]bool{}
	for _, p := range payloads {
		body, _ := json.Marshal(map[string]string{"name": p.name, "email": p.email})
		w := do(r, http.MethodPost, "/api/users", string(body))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		u := decodeUser(t, w)
		assert.Equal(t, p.name, u.Name)
		assert.Equal(t, p.email, u.Email)
		assert.NotEqual(t, uuid.Nil, u.ID)
		assert.False(t, seen[u.ID], "fresh id per create")
		seen[u.ID] = true
	}
}

func TestCreateUser_ValidationErrors(t *testing.T) {
	r := setupRouter(t, Options{})

	w := do(r, http.MethodPost, "/api/users", `{"name":"","email":"john@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Name cannot be empty"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/users", `{"name":"John","email":"john.example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid email format"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/users", `{"name":"","email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Name cannot be empty"}`, w.Body.String())
}

func TestSentinelID_NotFound(t *testing.T) {
	r := setupRouter(t, Options{})

	tests := []struct {
		method string
		body   string
	}{
		{http.MethodGet, ""},
		{http.MethodPut, `{"name":"New"}`},
		{http.MethodPut, `{"email":"invalid"}`},
		{http.MethodDelete, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+tt.body, func(t *testing.T) {
			w := do(r, tt.method, "/api/users/"+nilID, tt.body)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.JSONEq(t, `{"error":"Resource not found"}`, w.Body.String())
		})
	}
}

func TestGetUser_Fabricated(t *testing.T) {
	r := setupRouter(t, Options{})
	id := uuid.New()

	w := do(r, http.MethodGet, "/api/users/"+id.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, handler.UserResponse{ID: id, Name: "John Doe", Email: "john@example.com"}, decodeUser(t, w))

	w = do(r, http.MethodGet, "/api/users/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListUsers(t *testing.T) {
	r := setupRouter(t, Options{})

	w := do(r, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	users := decodeUsers(t, w)
	require.Len(t, users, 2)
	assert.Equal(t, "John Doe", users[0].Name)
	assert.Equal(t, "Jane Smith", users[1].Name)

	w = do(r, http.MethodGet, "/api/users?offset=1&limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	users = decodeUsers(t, w)
	require.Len(t, users, 1)
	assert.Equal(t, "Jane Smith", users[0].Name)
	assert.Equal(t, "jane@example.com", users[0].Email)

	w = do(r, http.MethodGet, "/api/users?offset=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = do(r, http.MethodGet, "/api/users?limit=0", "")
	assert.Equal(t, "[]", w.Body.String())

	for _, q := range []string{"limit=-3", "limit=", "offset=", "limit=1&limit=5"} {
		w = do(r, http.MethodGet, "/api/users?"+q, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		assert.JSONEq(t, `{"error":"Invalid query parameters"}`, w.Body.String())
	}
}

func TestCreateUser_TrailingDataRejected(t *testing.T) {
	r := setupRouter(t, Options{})

	w := do(r, http.MethodPost, "/api/users", `{"name":"a","email":"a@b"} trailing`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid JSON body"}`, w.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	r := setupRouter(t, Options{})

	tests := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/health"},
		{http.MethodPatch, "/api/users/" + uuid.NewString()},
		{http.MethodDelete, "/api/users"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			assert.Equal(t, http.StatusMethodNotAllowed, do(r, tt.method, tt.target, "").Code)
		})
	}

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/nope", "").Code)
}

func TestUpdateUser(t *testing.T) {
	r := setupRouter(t, Options{})
	id := uuid.New()
	target := "/api/users/" + id.String()

	t.Run("Name Only Keeps Baseline Email", func(t *testing.T) {
		w := do(r, http.MethodPut, target, `{"name":"Renamed"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, handler.UserResponse{ID: id, Name: "Renamed", Email: "john@example.com"}, decodeUser(t, w))
	})

	t.Run("Email Only", func(t *testing.T) {
		w := do(r, http.MethodPut, target, `{"email":"new@example.com"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, handler.UserResponse{ID: id, Name: "John Doe", Email: "new@example.com"}, decodeUser(t, w))
	})

	t.Run("Empty Body Returns Baseline", func(t *testing.T) {
		w := do(r, http.MethodPut, target, `{}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, handler.UserResponse{ID: id, Name: "John Doe", Email: "john@example.com"}, decodeUser(t, w))
	})

	t.Run("Invalid Email", func(t *testing.T) {
		for _, body := range []string{`{"email":"invalid"}`, `{"name":"Valid","email":"invalid"}`} {
			w := do(r, http.MethodPut, target, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"Invalid email format"}`, w.Body.String())
		}
	})
}

func TestDeleteUser(t *testing.T) {
	r := setupRouter(t, Options{})

	w := do(r, http.MethodDelete, "/api/users/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestCORS(t *testing.T) {
	r := setupRouter(t, Options{})

	req := httptest.NewRequest(http.MethodOptions, "/api/users", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://example.org")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestOptionalRoutes(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		r := setupRouter(t, Options{})

		assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/metrics", "").Code)
		assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/openapi.json", "").Code)
	})

	t.Run("Enabled", func(t *testing.T) {
		r := setupRouter(t, Options{MetricsEnabled: true, DocsEnabled: true})

		do(r, http.MethodGet, "/health", "")
		w := do(r, http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.Contains(w.Body.String(), "user_service_http_requests_total"))

		w = do(r, http.MethodGet, "/openapi.json", "")
		assert.Equal(t, http.StatusOK, w.Code)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		assert.Contains(t, doc["paths"], "/api/users/{id}")

		w = do(r, http.MethodGet, "/swagger/index.html", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
