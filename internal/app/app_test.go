package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talentbridge_backend/internal/config"
	"talentbridge_backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		Server:  config.ServerConfig{Port: "0", Mode: gin.TestMode},
		Storage: config.StorageConfig{Type: "memory"},
		JWT:     config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
		Cache:   config.CacheConfig{LearnerSize: 16},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}

	a, err := NewApp(cfg, repository.NewMemoryStore())
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return &testServer{t: t, router: a.Router}
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (s *testServer) signup(name, email, userType string) string {
	s.t.Helper()
	code, _ := s.do(http.MethodPost, "/api/register", "", map[string]string{
		"name": name, "email": email, "password": "secret123", "type": userType,
	})
	require.Equal(s.t, http.StatusCreated, code)

	code, env := s.do(http.MethodPost, "/api/login", "", map[string]string{
		"email": email, "password": "secret123",
	})
	require.Equal(s.t, http.StatusOK, code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(s.t, login.Token)
	return login.Token
}

type decision struct {
	Allow      bool    `json:"allow"`
	RedirectTo *string `json:"redirectTo"`
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, string(env.Data), `"storage":"up"`)
}

func TestStudentOnboardingFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("Ada", "ada@example.com", "student")

	// Roadmap is gated until onboarding is done.
	code, env := s.do(http.MethodGet, "/api/roadmap", token, nil)
	require.Equal(t, http.StatusForbidden, code)
	var d decision
	require.NoError(t, json.Unmarshal(env.Data, &d))
	require.False(t, d.Allow)
	require.NotNil(t, d.RedirectTo)
	require.Equal(t, "/skills-selection", *d.RedirectTo)

	code, _ = s.do(http.MethodPost, "/api/onboarding/skills", token, map[string]any{"skills": []string{}})
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/api/onboarding/skills", token, map[string]any{"skills": []string{"HTML", "CSS"}})
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, "/api/quiz", token, nil)
	require.Equal(t, http.StatusOK, code)
	var quiz struct {
		Questions []struct {
			Index    int      `json:"index"`
			Category string   `json:"category"`
			Options  []string `json:"options"`
		} `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &quiz))
	require.Len(t, quiz.Questions, 5)
	require.NotContains(t, string(env.Data), `"correct"`)
	for _, q := range quiz.Questions {
		require.Equal(t, "programming", q.Category)
	}

	code, env = s.do(http.MethodPost, "/api/quiz/submit", token, map[string]any{"answers": map[string]int{}})
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, string(env.Data), `"recommendedField":"programming"`)

	code, _ = s.do(http.MethodPost, "/api/quiz/submit", token, map[string]any{"answers": map[string]int{}})
	require.Equal(t, http.StatusConflict, code)

	code, env = s.do(http.MethodGet, "/api/quiz/results", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, string(env.Data), `"onboardingComplete":false`)

	code, _ = s.do(http.MethodPost, "/api/quiz/acknowledge", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodPost, "/api/roadmap/tasks/html_basics/complete", token, nil)
	require.Equal(t, http.StatusOK, code)
	var report struct {
		Field     string `json:"field"`
		Completed int    `json:"completed"`
		Total     int    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &report))
	require.Equal(t, "programming", report.Field)
	require.Equal(t, 1, report.Completed)
	require.Equal(t, 11, report.Total)

	code, env = s.do(http.MethodGet, "/api/notifications", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, string(env.Data), "Quiz Completed!")
	require.Contains(t, string(env.Data), "HTML Basics")
}

func TestCompanyIsKeptOutOfStudentRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("Acme", "hr@acme.io", "company")

	code, _ := s.do(http.MethodGet, "/api/onboarding/status", token, nil)
	require.Equal(t, http.StatusForbidden, code)

	code, env := s.do(http.MethodGet, "/api/navigation/authorize?path=/dashboard", token, nil)
	require.Equal(t, http.StatusOK, code)
	var d decision
	require.NoError(t, json.Unmarshal(env.Data, &d))
	require.False(t, d.Allow)
	require.Equal(t, "/", *d.RedirectTo)

	code, env = s.do(http.MethodGet, "/api/navigation/authorize?path=/company/post-job", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &d))
	require.True(t, d.Allow)
}

func TestAnonymousNavigation(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/navigation/authorize?path=/company/post-job", "", nil)
	require.Equal(t, http.StatusOK, code)
	var d decision
	require.NoError(t, json.Unmarshal(env.Data, &d))
	require.Equal(t, "/?login=true&postJob=true", *d.RedirectTo)

	code, _ = s.do(http.MethodGet, "/api/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, code)
}

func TestSwaggerDocListsRoutes(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	require.Equal(t, "2.0", doc.Swagger)
	for _, path := range []string{"/api/register", "/api/quiz", "/api/quiz/submit", "/api/roadmap/tasks/{taskId}/complete", "/api/navigation/authorize"} {
		require.Contains(t, doc.Paths, path)
	}
}

func TestCORSAndSecureHeadersOnAPI(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
