package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"agora/internal/cache"
	"agora/internal/config"
	"agora/internal/middleware"
	"agora/internal/router"
	"agora/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	t     *testing.T
	r     *gin.Engine
	conn  *gorm.DB
	cfg   *config.Config
	store cache.Store
}

func newServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AppEnv:    "test",
		JWTSecret: "test-secret",
		AppURL:    "http://localhost:4000",
		Origin:    "http://localhost:3000",
		UploadDir: t.TempDir(),
	}
	conn := testutil.NewDB(t)
	store := cache.NewLRU(16)

	r := gin.New()
	r.Use(middleware.CORS(cfg.Origin), middleware.LoadUser(cfg.JWTSecret))
	router.RegisterRoutes(r, cfg, store)

	return &testServer{t: t, r: r, conn: conn, cfg: cfg, store: store}
}

// token signs a session for username without going through /login.
func (s *testServer) token(username string) string {
	s.t.Helper()
	tok, err := middleware.IssueToken(s.cfg.JWTSecret, username)
	require.NoError(s.t, err)
	return tok
}

// do sends body as JSON. token, when set, is sent as the session cookie.
func (s *testServer) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	s.t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	}
	return s.send(req)
}

func (s *testServer) send(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type object = map[string]any
