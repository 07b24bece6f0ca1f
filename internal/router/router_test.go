package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/testutil"
	"github.com/anonto42/nano-social/backend/pkg/config"
	"github.com/anonto42/nano-social/backend/validators"
)

type apiClient struct {
	t  *testing.T
	e  *echo.Echo
	db *gorm.DB
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	db := testutil.NewTestDB(t)
	cfg := &config.Config{
		Env:           "test",
		JWTSecret:     "router-test-secret",
		TokenTTLHours: 1,
		AuthProvider:  config.AuthProviderLocal,
	}
	e := echo.New()
	e.Validator = validators.NewValidator()
	SetupRoutes(e, db, cfg, nil)
	return &apiClient{t: t, e: e, db: db}
}

// do sends a request and decodes the JSON body into a generic map.
func (a *apiClient) do(method, path, token string, body interface{}) (int, map[string]interface{}) {
	a.t.Helper()
	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	var out map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

func (a *apiClient) register(username string) (string, uint) {
	a.t.Helper()
	code, body := a.do(http.MethodPost, "/api/v1/auth/register", "", models.RegisterRequest{
		Username: username,
		FullName: strings.ToUpper(username[:1]) + username[1:],
		Email:    username + "@example.com",
		Password: "correct-horse",
	})
	require.Equal(a.t, http.StatusCreated, code, body)
	data := body["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	return data["token"].(string), uint(user["id"].(float64))
}

func types(body map[string]interface{}) []string {
	var out []string
	data := body["data"].(map[string]interface{})
	for _, n := range data["notifications"].([]interface{}) {
		out = append(out, n.(map[string]interface{})["type"].(string))
	}
	return out
}

func TestHealth(t *testing.T) {
	api := newAPI(t)
	code, body := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
}

func TestAuthRequired(t *testing.T) {
	api := newAPI(t)

	code, _ := api.do(http.MethodGet, "/api/v1/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = api.do(http.MethodGet, "/api/v1/profile", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	token, _ := api.register("alice")
	code, body := api.do(http.MethodGet, "/api/v1/profile", token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "alice", body["data"].(map[string]interface{})["username"])

	code, _ = api.do(http.MethodGet, "/api/v1/admin/dashboard/stats", token, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestRegisterAndLogin(t *testing.T) {
	api := newAPI(t)

	code, _ := api.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{"username": "x"})
	assert.Equal(t, http.StatusBadRequest, code)

	api.register("alice")
	code, _ = api.do(http.MethodPost, "/api/v1/auth/register", "", models.RegisterRequest{
		Username: "alice", FullName: "Again", Email: "other@example.com", Password: "correct-horse",
	})
	assert.Equal(t, http.StatusConflict, code)

	code, body := api.do(http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{Login: "ALICE@example.com", Password: "correct-horse"})
	assert.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["data"].(map[string]interface{})["token"])

	code, _ = api.do(http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{Login: "alice", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = api.do(http.MethodPost, "/api/v1/auth/firebase-login", "", models.FirebaseLoginRequest{IDToken: "anything"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestConnectionAndNotificationFlow(t *testing.T) {
	api := newAPI(t)
	aliceToken, aliceID := api.register("alice")
	bobToken, bobID := api.register("bob")

	code, _ := api.do(http.MethodPost, fmt.Sprintf("/api/v1/connections/%d", aliceID), bobToken, nil)
	require.Equal(t, http.StatusCreated, code)

	code, _ = api.do(http.MethodPost, fmt.Sprintf("/api/v1/connections/%d", aliceID), bobToken, nil)
	assert.Equal(t, http.StatusConflict, code)

	code, body := api.do(http.MethodGet, fmt.Sprintf("/api/v1/connections/%d/state", bobID), aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ACCEPT", body["data"].(map[string]interface{})["state"])

	code, body = api.do(http.MethodGet, "/api/v1/connections/requests", aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"].([]interface{}), 1)

	code, _ = api.do(http.MethodPut, fmt.Sprintf("/api/v1/connections/%d/accept", bobID), aliceToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, body = api.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/connections", aliceID), bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"].([]interface{}), 1)

	code, body = api.do(http.MethodGet, "/api/v1/notifications", aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.ElementsMatch(t, []string{"CONNECTION_REQUEST", "NEW_FOLLOWER"}, types(body))

	code, body = api.do(http.MethodGet, "/api/v1/notifications/unread-count", aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["data"].(map[string]interface{})["count"])

	// Unread notifications cannot be deleted; another user's cannot be touched.
	code, body = api.do(http.MethodGet, "/api/v1/notifications/unread", aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	first := body["data"].(map[string]interface{})["notifications"].([]interface{})[0].(map[string]interface{})
	notifPath := fmt.Sprintf("/api/v1/notifications/%d", uint(first["id"].(float64)))

	code, _ = api.do(http.MethodDelete, notifPath, aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = api.do(http.MethodPut, notifPath+"/read", bobToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = api.do(http.MethodPut, notifPath+"/read", aliceToken, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = api.do(http.MethodDelete, notifPath, aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, code)
	code, _ = api.do(http.MethodDelete, notifPath, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = api.do(http.MethodPut, "/api/v1/notifications/read-all", aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["data"].(map[string]interface{})["updated"])

	code, _ = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/connections/%d", aliceID), bobToken, nil)
	assert.Equal(t, http.StatusNoContent, code)
	code, _ = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/connections/%d", aliceID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestPostCommentLikeFlow(t *testing.T) {
	api := newAPI(t)
	aliceToken, aliceID := api.register("alice")
	bobToken, _ := api.register("bob")

	code, body := api.do(http.MethodPost, "/api/v1/posts", aliceToken, models.CreatePostRequest{Title: "Hello", Content: "First post"})
	require.Equal(t, http.StatusCreated, code)
	postID := uint(body["data"].(map[string]interface{})["id"].(float64))
	postPath := fmt.Sprintf("/api/v1/posts/%d", postID)

	code, _ = api.do(http.MethodPost, postPath+"/likes", bobToken, nil)
	require.Equal(t, http.StatusCreated, code)
	code, _ = api.do(http.MethodPost, postPath+"/likes", bobToken, nil)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = api.do(http.MethodPost, postPath+"/comments", bobToken, models.CreateCommentRequest{Text: "nice one @alice"})
	require.Equal(t, http.StatusCreated, code)

	code, body = api.do(http.MethodGet, postPath+"/comments", aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"].([]interface{}), 1)

	code, body = api.do(http.MethodGet, "/api/v1/notifications", aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.ElementsMatch(t, []string{"POST_LIKED", "MENTIONED_IN_COMMENT"}, types(body))

	code, _ = api.do(http.MethodPut, postPath, bobToken, models.UpdatePostRequest{Title: "Hijacked"})
	assert.Equal(t, http.StatusForbidden, code)

	code, body = api.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/posts", aliceID), bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"].([]interface{}), 1)

	code, body = api.do(http.MethodGet, "/api/v1/feed", aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["meta"].(map[string]interface{})["totalItems"])

	code, _ = api.do(http.MethodPost, postPath+"/reports", bobToken, models.CreateReportRequest{Reason: "spam content"})
	assert.Equal(t, http.StatusCreated, code)
	code, _ = api.do(http.MethodPost, postPath+"/reports", bobToken, models.CreateReportRequest{Reason: "spam content"})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = api.do(http.MethodGet, "/api/v1/posts/abc", bobToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSettingsAndProfilePrivacy(t *testing.T) {
	api := newAPI(t)
	aliceToken, _ := api.register("alice")
	bobToken, _ := api.register("bob")

	code, body := api.do(http.MethodPut, "/api/v1/settings", aliceToken, models.UpdateSettingsRequest{DetailsPrivacy: models.PrivacyPrivate})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "private", body["data"].(map[string]interface{})["detailsPrivacy"])

	code, _ = api.do(http.MethodPut, "/api/v1/settings", aliceToken, map[string]string{"theme": "blue"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = api.do(http.MethodGet, "/api/v1/users/alice", bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	profile := body["data"].(map[string]interface{})
	assert.Nil(t, profile["details"])
	assert.Equal(t, "ADD", profile["connectionState"])

	code, body = api.do(http.MethodGet, "/api/v1/users/search?q=ALI", bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"].([]interface{}), 1)

	code, body = api.do(http.MethodGet, "/api/v1/suggestions", bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"].([]interface{}), 1)

	code, _ = api.do(http.MethodGet, "/api/v1/users/nobody", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAdminRoutes(t *testing.T) {
	api := newAPI(t)
	aliceToken, aliceID := api.register("alice")
	_, bobID := api.register("bob")
	require.NoError(t, api.db.Model(&models.User{}).Where("id = ?", aliceID).Update("role", models.RoleAdmin).Error)

	// The role is read from the token, so log in again after promotion.
	code, _ := api.do(http.MethodGet, "/api/v1/admin/dashboard/stats", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, body := api.do(http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{Login: "alice", Password: "correct-horse"})
	require.Equal(t, http.StatusOK, code)
	adminToken := body["data"].(map[string]interface{})["token"].(string)

	code, body = api.do(http.MethodGet, "/api/v1/admin/dashboard/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	stats := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["totalUsers"])
	assert.Len(t, stats["userGrowth"], 5)

	code, body = api.do(http.MethodPost, "/api/v1/admin/announcements", adminToken, models.AnnouncementRequest{Message: "hello everyone"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["data"].(map[string]interface{})["recipients"])

	code, _ = api.do(http.MethodPost, fmt.Sprintf("/api/v1/admin/users/%d/warn", bobID), adminToken, models.WarningRequest{Reason: "be nice"})
	assert.Equal(t, http.StatusOK, code)

	code, _ = api.do(http.MethodPatch, fmt.Sprintf("/api/v1/admin/users/%d/role", aliceID), adminToken, models.UpdateRoleRequest{Role: models.RoleUser})
	assert.Equal(t, http.StatusForbidden, code)
	code, body = api.do(http.MethodPatch, fmt.Sprintf("/api/v1/admin/users/%d/role", bobID), adminToken, models.UpdateRoleRequest{Role: models.RoleAdmin})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ADMIN", body["data"].(map[string]interface{})["role"])

	code, _ = api.do(http.MethodPatch, "/api/v1/admin/posts/999/status", adminToken, models.UpdateStatusRequest{Status: models.ContentStatusArchived})
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = api.do(http.MethodPatch, "/api/v1/admin/posts/1/status", adminToken, map[string]string{"status": "DELETED"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = api.do(http.MethodGet, "/api/v1/admin/reports", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), body["meta"].(map[string]interface{})["totalItems"])

	code, _ = api.do(http.MethodGet, "/api/v1/admin/posts?status=UNKNOWN", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
