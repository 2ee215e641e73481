package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fieldforce-dev/workforce/backend/internal/config"
	"github.com/fieldforce-dev/workforce/backend/internal/domain"
	"github.com/fieldforce-dev/workforce/backend/internal/storage"
	"github.com/fieldforce-dev/workforce/backend/internal/token"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var _ Store = (*memStore)(nil)

type fakeMail struct {
	mu       sync.Mutex
	messages []domain.MailMessage
}

func (f *fakeMail) Publish(msg domain.MailMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	return nil
}

type testEnv struct {
	h     *Handler
	store *memStore
	blobs *storage.Local
	mail  *fakeMail
	cfg   *config.Config
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 28800
	cfg.Auth.EnforceRoles = true
	cfg.Upload.Dir = t.TempDir()
	cfg.Upload.ImportDir = t.TempDir()
	cfg.Upload.MaxMemory = 1 << 20
	cfg.Upload.MaxSize = 4 << 20
	cfg.Attendance.TimeZone = "UTC"
	cfg.InitialAdmin.UserID = "admin"
	cfg.CORS.AllowedOrigins = []string{"*"}
	return cfg
}

func newTestEnv(t *testing.T, configure ...func(*config.Config)) *testEnv {
	t.Helper()

	cfg := testConfig(t)
	for _, fn := range configure {
		fn(cfg)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	env := &testEnv{
		store: newMemStore(),
		blobs: storage.NewLocal(cfg.Upload.Dir, cfg.Upload.ImportDir),
		mail:  &fakeMail{},
		cfg:   cfg,
	}

	h, err := NewHandler(cfg, env.store, env.blobs, token.NewDenylist(rdb, time.Second), env.mail)
	require.NoError(t, err)
	h.RegisterRoutes()
	env.h = h

	return env
}

// seedUser 直接向存储中写入用户，返回写入后的用户
func (e *testEnv) seedUser(t *testing.T, userID, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{UserID: userID, PasswordHash: string(hash), FullName: userID, Role: role}
	require.NoError(t, e.store.CreateUser(user))
	return user
}

func (e *testEnv) tokenFor(t *testing.T, user *domain.User) string {
	t.Helper()
	ss, _, err := e.h.issuer.Issue(user)
	require.NoError(t, err)
	return ss
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	return e.tokenFor(t, e.seedUser(t, "admin", "admin-pass", domain.RoleAdmin))
}

func (e *testEnv) do(method, path, bearer string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	recorder := httptest.NewRecorder()
	e.h.Mux.ServeHTTP(recorder, req)
	return recorder
}

func (e *testEnv) doJSON(t *testing.T, method, path, bearer string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}
	return e.do(method, path, bearer, body, "application/json")
}

type upload struct {
	field    string
	filename string
	content  string
}

func multipartBody(t *testing.T, fields map[string]string, files ...upload) (io.Reader, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = io.WriteString(fw, f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&v), recorder.Body.String())
	return v
}

func requireError(t *testing.T, recorder *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	require.Equal(t, status, recorder.Code, recorder.Body.String())
	require.Equal(t, msg, decodeBody[ErrorResponse](t, recorder).Error)
}

func requireSuccess(t *testing.T, recorder *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	require.True(t, decodeBody[SuccessResponse](t, recorder).Success)
}
