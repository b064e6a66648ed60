package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"authcenter/auth"
	"authcenter/database"
	"authcenter/repositories"
	"authcenter/services"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testApp struct {
	container  *restful.Container
	tokens     *auth.TokenService
	authFilter restful.FilterFunction
	userSvc    services.UserService
	db         *gorm.DB
}

// newTestApp wires the full HTTP surface against an in-memory database,
// mirroring the composition in main.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedRoles(db))

	users := repositories.NewUserRepository(db)
	roles := repositories.NewRoleRepository(db)
	tokens := auth.NewTokenService([]byte("test-signing-key"), 24*time.Hour)
	authFilter := auth.Filter(tokens)

	authSvc := services.NewAuthService(users, roles, tokens, 5)
	userSvc := services.NewUserService(users, roles)
	roleSvc := services.NewRoleService(roles)

	container := restful.NewContainer()

	authWS := new(restful.WebService)
	NewAuthController(authSvc).RegisterRoutes(authWS)
	container.Add(authWS)

	userWS := new(restful.WebService)
	NewUserController(userSvc, authFilter).RegisterRoutes(userWS)
	container.Add(userWS)

	roleWS := new(restful.WebService)
	NewRoleController(roleSvc, authFilter).RegisterRoutes(roleWS)
	container.Add(roleWS)

	return &testApp{container: container, tokens: tokens, authFilter: authFilter, userSvc: userSvc, db: db}
}

func (app *testApp) postJSON(t *testing.T, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", restful.MIME_JSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.container.ServeHTTP(w, req)
	return w
}

func (app *testApp) get(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.container.ServeHTTP(w, req)
	return w
}

// register creates an account over HTTP and returns the issued token and id.
func (app *testApp) register(t *testing.T, email, password string) (string, uint) {
	t.Helper()
	w := app.postJSON(t, "/auth/registration", "", services.CredentialsInput{Email: email, Password: password})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	claims, err := app.tokens.Verify(resp.Token)
	require.NoError(t, err)
	return resp.Token, claims.UserID
}

// registerAdmin registers a user, grants ADMIN and logs in again so the
// returned token carries the role claim.
func (app *testApp) registerAdmin(t *testing.T, email, password string) string {
	t.Helper()
	_, id := app.register(t, email, password)
	_, err := app.userSvc.AssignRole(&services.AssignRoleInput{UserID: id, Value: database.AdminRoleValue})
	require.NoError(t, err)

	w := app.postJSON(t, "/auth/login", "", services.CredentialsInput{Email: email, Password: password})
	require.Equal(t, http.StatusOK, w.Code)
	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func TestRegistrationEndpoint(t *testing.T) {
	app := newTestApp(t)

	t.Run("Success", func(t *testing.T) {
		token, _ := app.register(t, "a@x.com", "pass1")
		claims, err := app.tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", claims.Email)
		require.Len(t, claims.Roles, 1)
		assert.Equal(t, database.DefaultRoleValue, claims.Roles[0].Value)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		w := app.postJSON(t, "/auth/registration", "", services.CredentialsInput{Email: "a@x.com", Password: "pass1"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Missing fields", func(t *testing.T) {
		w := app.postJSON(t, "/auth/registration", "", services.CredentialsInput{Email: "b@x.com"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "a@x.com", "pass1")

	t.Run("Success", func(t *testing.T) {
		w := app.postJSON(t, "/auth/login", "", services.CredentialsInput{Email: "a@x.com", Password: "pass1"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Wrong password", func(t *testing.T) {
		w := app.postJSON(t, "/auth/login", "", services.CredentialsInput{Email: "a@x.com", Password: "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid credentials")
	})

	t.Run("Unknown email rejects identically", func(t *testing.T) {
		w := app.postJSON(t, "/auth/login", "", services.CredentialsInput{Email: "nobody@x.com", Password: "pass1"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid credentials")
	})
}

func TestUserEndpointsRequireAdmin(t *testing.T) {
	app := newTestApp(t)
	userToken, userID := app.register(t, "user@x.com", "pass1")
	adminToken := app.registerAdmin(t, "admin@x.com", "pass2")

	t.Run("List denied for USER", func(t *testing.T) {
		w := app.get(t, "/users", userToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("List allowed for ADMIN", func(t *testing.T) {
		w := app.get(t, "/users", adminToken)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp PaginatedUsersResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(2), resp.Total)
	})

	t.Run("List denied without token", func(t *testing.T) {
		w := app.get(t, "/users", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Ban", func(t *testing.T) {
		w := app.postJSON(t, "/users/ban", adminToken, services.BanInput{UserID: userID, BanReason: "spam"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Banned)
		assert.Equal(t, "spam", resp.BanReason)
	})

	t.Run("Ban unknown user", func(t *testing.T) {
		w := app.postJSON(t, "/users/ban", adminToken, services.BanInput{UserID: 9999, BanReason: "spam"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Assign unknown role", func(t *testing.T) {
		w := app.postJSON(t, "/users/role", adminToken, services.AssignRoleInput{UserID: userID, Value: "MODERATOR"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Assign role denied for USER", func(t *testing.T) {
		w := app.postJSON(t, "/users/role", userToken, services.AssignRoleInput{UserID: userID, Value: database.AdminRoleValue})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRoleEndpoints(t *testing.T) {
	app := newTestApp(t)
	userToken, _ := app.register(t, "user@x.com", "pass1")
	adminToken := app.registerAdmin(t, "admin@x.com", "pass2")

	t.Run("Create requires ADMIN", func(t *testing.T) {
		w := app.postJSON(t, "/roles", userToken, services.CreateRoleInput{Value: "MODERATOR"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Create and fetch", func(t *testing.T) {
		w := app.postJSON(t, "/roles", adminToken, services.CreateRoleInput{Value: "MODERATOR", Description: "Forum moderator"})
		require.Equal(t, http.StatusCreated, w.Code)

		w = app.get(t, "/roles/MODERATOR", userToken)
		require.Equal(t, http.StatusOK, w.Code)
		var resp RoleResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Forum moderator", resp.Description)
	})

	t.Run("Unknown role", func(t *testing.T) {
		w := app.get(t, "/roles/NOPE", userToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
