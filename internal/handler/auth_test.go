package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fieldforce-dev/workforce/backend/internal/config"
	"github.com/fieldforce-dev/workforce/backend/internal/domain"
	"github.com/fieldforce-dev/workforce/backend/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginExample(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken(t)

	rec := env.doJSON(t, http.MethodPost, "/api/users", admin, map[string]string{
		"user_id":  "alice",
		"password": "secret123",
	})
	requireSuccess(t, rec)

	rec = env.doJSON(t, http.MethodPost, "/api/login", "", map[string]string{
		"user_id":  "alice",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[LoginResponse](t, rec)
	assert.Equal(t, "EMPLOYEE", resp.Role)
	require.NotEmpty(t, resp.Token)

	claims, err := env.h.issuer.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.UserID)
	assert.Equal(t, domain.RoleEmployee, claims.Role)

	rec = env.doJSON(t, http.MethodPost, "/api/login", "", map[string]string{
		"user_id":  "alice",
		"password": "wrong",
	})
	requireError(t, rec, http.StatusUnauthorized, "Invalid credentials")
}

func TestLoginUnknownUserMatchesWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "bob", "hunter22", domain.RoleEmployee)

	wrong := env.doJSON(t, http.MethodPost, "/api/login", "", map[string]string{"user_id": "bob", "password": "nope"})
	unknown := env.doJSON(t, http.MethodPost, "/api/login", "", map[string]string{"user_id": "nobody", "password": "nope"})

	assert.Equal(t, wrong.Code, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
	requireError(t, unknown, http.StatusUnauthorized, "Invalid credentials")
}

func TestLoginReturnsFullName(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "carol", "pw-carol", domain.RoleAdmin)
	env.store.users[user.ID].FullName = "Carol Jones"

	rec := env.doJSON(t, http.MethodPost, "/api/login", "", map[string]string{"user_id": "carol", "password": "pw-carol"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[LoginResponse](t, rec)
	assert.Equal(t, "Carol Jones", resp.FullName)
	assert.Equal(t, "ADMIN", resp.Role)
}

func TestLoginMissingCredentials(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/login", "", map[string]string{"user_id": "alice"})
	requireError(t, rec, http.StatusBadRequest, "Missing credentials")

	rec = env.do(http.MethodPost, "/api/login", "", nil, "application/json")
	requireError(t, rec, http.StatusBadRequest, "Missing credentials")
	assert.Zero(t, env.store.Calls())
}

func TestLoginDisabledAccount(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "dave", "pw-dave", domain.RoleEmployee)
	require.NoError(t, env.store.UpdateUserStatus(user.ID, false))

	rec := env.doJSON(t, http.MethodPost, "/api/login", "", map[string]string{"user_id": "dave", "password": "pw-dave"})
	requireError(t, rec, http.StatusForbidden, "Account disabled")

	rec = env.doJSON(t, http.MethodPost, "/api/login", "", map[string]string{"user_id": "dave", "password": "bad"})
	requireError(t, rec, http.StatusUnauthorized, "Invalid credentials")
}

var protectedRoutes = []struct {
	method string
	path   string
}{
	{http.MethodPost, "/api/logout"},
	{http.MethodGet, "/api/users"},
	{http.MethodPost, "/api/users"},
	{http.MethodPatch, "/api/users/1/status"},
	{http.MethodDelete, "/api/users/1"},
	{http.MethodGet, "/api/employees"},
	{http.MethodPost, "/api/employees"},
	{http.MethodGet, "/api/customers"},
	{http.MethodPost, "/api/customers/import"},
	{http.MethodPatch, "/api/customers/allocate"},
	{http.MethodPatch, "/api/customers/deallocate"},
	{http.MethodGet, "/api/feedback"},
	{http.MethodPost, "/api/feedback"},
	{http.MethodPut, "/api/feedback/1"},
	{http.MethodDelete, "/api/feedback/1"},
	{http.MethodGet, "/api/attendance"},
	{http.MethodPost, "/api/attendance/checkin"},
	{http.MethodPost, "/api/attendance/checkout"},
	{http.MethodGet, "/api/ads"},
	{http.MethodPost, "/api/ads"},
	{http.MethodPatch, "/api/ads/1/toggle"},
	{http.MethodDelete, "/api/ads/1"},
}

func TestProtectedRoutesWithoutToken(t *testing.T) {
	env := newTestEnv(t)

	for _, route := range protectedRoutes {
		rec := env.do(route.method, route.path, "", nil, "")
		requireError(t, rec, http.StatusUnauthorized, "No token")
	}

	// 非 Bearer 方案同样视为没有 token
	req := httptest.NewRequest(http.MethodGet, "/api/ads", nil)
	req.Header.Set("Authorization", "Basic YWxpY2U6c2VjcmV0")
	rec := httptest.NewRecorder()
	env.h.Mux.ServeHTTP(rec, req)
	requireError(t, rec, http.StatusUnauthorized, "No token")

	assert.Zero(t, env.store.Calls())
}

func TestProtectedRoutesWithBadToken(t *testing.T) {
	env := newTestEnv(t)
	user := &domain.User{ID: 7, UserID: "eve", Role: domain.RoleAdmin}

	expired, _, err := token.NewIssuer(env.cfg.JWT.Secret, -time.Minute).Issue(user)
	require.NoError(t, err)
	wrongKey, _, err := token.NewIssuer("another-secret", time.Hour).Issue(user)
	require.NoError(t, err)

	for _, bad := range []string{expired, wrongKey, "garbage"} {
		for _, route := range protectedRoutes {
			rec := env.do(route.method, route.path, bad, nil, "")
			requireError(t, rec, http.StatusUnauthorized, "Invalid token")
		}
	}

	assert.Zero(t, env.store.Calls())
}

func TestLogoutRevokesToken(t *testing.T) {
	env := newTestEnv(t)
	bearer := env.tokenFor(t, env.seedUser(t, "frank", "pw", domain.RoleEmployee))

	require.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/ads", bearer, nil, "").Code)

	requireSuccess(t, env.do(http.MethodPost, "/api/logout", bearer, nil, ""))

	rec := env.do(http.MethodGet, "/api/ads", bearer, nil, "")
	requireError(t, rec, http.StatusUnauthorized, "Invalid token")
}

func TestRequiredRole(t *testing.T) {
	env := newTestEnv(t)
	employee := env.tokenFor(t, env.seedUser(t, "grace", "pw", domain.RoleEmployee))

	requireError(t, env.do(http.MethodGet, "/api/users", employee, nil, ""), http.StatusForbidden, "Forbidden")
	requireError(t, env.do(http.MethodPatch, "/api/ads/1/toggle", employee, nil, ""), http.StatusForbidden, "Forbidden")

	// 所有角色都可以访问的接口
	require.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/customers", employee, nil, "").Code)
	requireSuccess(t, env.do(http.MethodPost, "/api/attendance/checkin", employee, nil, ""))
}

func TestRequiredRoleDisabled(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) { cfg.Auth.EnforceRoles = false })
	employee := env.tokenFor(t, env.seedUser(t, "heidi", "pw", domain.RoleEmployee))

	rec := env.do(http.MethodGet, "/api/users", employee, nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

type failingStore struct {
	*memStore
	err error
}

func (s failingStore) GetActiveAds() ([]*domain.Ad, error) {
	return nil, s.err
}

func TestDatastoreTimeoutIsOverloaded(t *testing.T) {
	env := newTestEnv(t)
	bearer := env.tokenFor(t, &domain.User{ID: 1, UserID: "ivan", Role: domain.RoleEmployee})

	env.h.repository = failingStore{memStore: env.store, err: context.DeadlineExceeded}
	requireError(t, env.do(http.MethodGet, "/api/ads", bearer, nil, ""), http.StatusServiceUnavailable, "Server overloaded")

	env.h.repository = failingStore{memStore: env.store, err: assert.AnError}
	requireError(t, env.do(http.MethodGet, "/api/ads", bearer, nil, ""), http.StatusInternalServerError, "Internal server error")
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/health", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody[map[string]string](t, rec)["status"])

	env.store.err = assert.AnError
	rec = env.do(http.MethodGet, "/api/health", "", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRecovererReturns500(t *testing.T) {
	env := newTestEnv(t)
	env.h.Mux.Get("/panic", func(w http.ResponseWriter, r *http.Request) { panic("boom") })

	requireError(t, env.do(http.MethodGet, "/panic", "", nil, ""), http.StatusInternalServerError, "Internal server error")
}
