package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	httpstd "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/lar-university/advisor/api/http"
	"github.com/lar-university/advisor/api/http/handlers"
	"github.com/lar-university/advisor/pkg/account"
	"github.com/lar-university/advisor/pkg/analysis"
	"github.com/lar-university/advisor/pkg/chat"
	"github.com/lar-university/advisor/pkg/health"
	"github.com/lar-university/advisor/pkg/health/checkers"
	"github.com/lar-university/advisor/pkg/llm"
	"github.com/lar-university/advisor/pkg/repository/memory"
	"github.com/lar-university/advisor/pkg/security/jwt"
)

type cannedModel struct{}

func (cannedModel) Ask(context.Context, string, string) (string, error)  { return "ok", nil }
func (cannedModel) AskJSON(context.Context, string) (string, error)      { return "{}", nil }
func (cannedModel) Converse(context.Context, []llm.Message) (string, error) {
	return "Con gusto te ayudo 🚀", nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	store := memory.NewStore()
	model := cannedModel{}

	gen := jwt.NewGenerator("test-secret", "lar-advisor", time.Hour)
	guard := jwt.NewAuthMiddleware("test-secret", "lar-advisor", store.Accounts())

	accountUC := account.NewService(store.Accounts(), gen)
	analysisUC := analysis.NewService(store.Analyses(), store.Accounts(), model)
	chatUC := chat.NewService(store.Chats(), store.Analyses(), model)

	readiness := health.NewService(checkers.NewModelChecker("test-key"))

	apihttp.Register(app, apihttp.MiddlewareConfig{
		FrontendURL:     "http://localhost:5173",
		RateLimitMax:    1000,
		RateLimitWindow: time.Minute,
	},
		guard,
		handlers.NewAuthHandler(accountUC),
		handlers.NewUserHandler(accountUC, store.Chats(), store.Analyses()),
		handlers.NewChatHandler(chatUC),
		handlers.NewCVHandler(analysisUC, 10, t.TempDir()),
		handlers.NewRecommendationHandler(analysisUC),
		handlers.NewHealthHandler(readiness),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*httpstd.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]any
	data, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(data, &out)
	return resp, out
}

func registerUser(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, out := doJSON(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name":     "Ana",
		"email":    "ana@lar.edu",
		"password": "secreta123",
	})
	require.Equal(t, httpstd.StatusCreated, resp.StatusCode)
	token, _ := out["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(t)

	resp, out := doJSON(t, app, "GET", "/api/v1/health", "", nil)
	assert.Equal(t, httpstd.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", out["status"])

	resp, out = doJSON(t, app, "GET", "/api/v1/ready", "", nil)
	assert.Equal(t, httpstd.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", out["status"])
}

func TestRegisterAndLoginFlow(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app)

	// Duplicate registration conflicts.
	resp, _ := doJSON(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name": "Otra", "email": "ANA@lar.edu", "password": "secreta123",
	})
	assert.Equal(t, httpstd.StatusConflict, resp.StatusCode)

	resp, out := doJSON(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email": "ana@lar.edu", "password": "secreta123",
	})
	assert.Equal(t, httpstd.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, out["token"])

	// Unknown email is a 401, never an implicit registration.
	resp, _ = doJSON(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email": "nadie@lar.edu", "password": "secreta123",
	})
	assert.Equal(t, httpstd.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, "GET", "/api/v1/auth/me", "", nil)
	assert.Equal(t, httpstd.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", "/api/v1/chats", "bad-token", nil)
	assert.Equal(t, httpstd.StatusUnauthorized, resp.StatusCode)

	token := registerUser(t, app)
	resp, out := doJSON(t, app, "GET", "/api/v1/auth/me", token, nil)
	assert.Equal(t, httpstd.StatusOK, resp.StatusCode)
	assert.Equal(t, "ana@lar.edu", out["email"])
}

func TestChatQuestionLimitOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app)

	resp, out := doJSON(t, app, "POST", "/api/v1/chats", token, fiber.Map{})
	require.Equal(t, httpstd.StatusCreated, resp.StatusCode)
	chatID, _ := out["id"].(string)
	require.NotEmpty(t, chatID)
	assert.Equal(t, "Nueva conversación", out["title"])

	msgPath := fmt.Sprintf("/api/v1/chats/%s/messages", chatID)
	for i := 0; i < 2; i++ {
		resp, _ = doJSON(t, app, "POST", msgPath, token, fiber.Map{"content": "¿qué me recomiendas?"})
		require.Equal(t, httpstd.StatusOK, resp.StatusCode)
	}
	resp, _ = doJSON(t, app, "POST", msgPath, token, fiber.Map{"content": "¿y ahora?"})
	assert.Equal(t, httpstd.StatusTooManyRequests, resp.StatusCode)

	// Soft delete hides the conversation.
	resp, _ = doJSON(t, app, "DELETE", "/api/v1/chats/"+chatID, token, nil)
	assert.Equal(t, httpstd.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, "GET", "/api/v1/chats/"+chatID, token, nil)
	assert.Equal(t, httpstd.StatusNotFound, resp.StatusCode)
}

func TestSpecializationsCatalog(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/v1/recommendations/specializations", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, httpstd.StatusOK, resp.StatusCode)

	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 9)

	resp, out := doJSON(t, app, "GET", "/api/v1/recommendations/specializations/tecnologia", "", nil)
	assert.Equal(t, httpstd.StatusOK, resp.StatusCode)
	assert.Equal(t, "tecnologia", out["id"])

	resp, _ = doJSON(t, app, "GET", "/api/v1/recommendations/specializations/no-existe", "", nil)
	assert.Equal(t, httpstd.StatusNotFound, resp.StatusCode)
}
