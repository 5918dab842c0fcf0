package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/server/ratelimit"
	"github.com/jonathan/cv-builder/internal/session"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func whitePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// stubCapturer returns a fixed PNG, or err.
type stubCapturer struct {
	png []byte
	err error
}

func (c *stubCapturer) Capture(context.Context, string, string) (*export.Snapshot, error) {
	if c.err != nil {
		return nil, c.err
	}
	return export.NewSnapshot(c.png)
}

type testServer struct {
	*Server
	capturer *stubCapturer
	outDir   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := session.OpenSQLite(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)

	capturer := &stubCapturer{png: whitePNG(t, 140, 495)}
	outDir := t.TempDir()

	srv, err := New(Config{Port: 0, MaxPhotoBytes: 1 << 20, RateLimit: &ratelimit.Config{Enabled: false}}, Deps{
		Store:    store,
		Exporter: export.NewExporter(capturer, export.NewFileStore(outDir)),
		Password: &config.PasswordConfig{BcryptCost: config.MinBcryptCost},
		JWT:      &config.JWTConfig{Secret: "test-secret-key-for-jwt-signing-minimum-32-bytes", Expiration: time.Hour},
	})
	require.NoError(t, err)
	t.Cleanup(srv.release)

	return &testServer{Server: srv, capturer: capturer, outDir: outDir}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.RemoteAddr = "192.0.2.1:1234"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) doJSON(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return ts.do(t, method, path, token, bytes.NewReader(body))
}

// register creates an account and returns its token.
func (ts *testServer) register(t *testing.T, email string) string {
	t.Helper()
	rec := ts.doJSON(t, http.MethodPost, "/auth/register", "", types.RegisterRequest{
		FullName: "Ada Lovelace",
		Email:    email,
		Password: "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeDocument(t *testing.T, rec *httptest.ResponseRecorder) types.Document {
	t.Helper()
	var doc types.Document
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&doc))
	return doc
}

func TestNew_RequiresDeps(t *testing.T) {
	_, err := New(Config{}, Deps{})
	assert.Error(t, err)
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodOptions, "/document", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t)
	ts.rateLimiter.Stop()
	limiter, err := ratelimit.NewLimiter(&ratelimit.Config{
		Enabled: true,
		Default: ratelimit.Rule{Limit: 1, Window: time.Minute},
		Exempt:  []string{"GET /health"},
	})
	require.NoError(t, err)
	ts.rateLimiter = limiter
	ts.httpServer.Handler = ts.withRateLimit(ts.withLogging(ts.withCORS(ts.routes())))

	first := ts.do(t, http.MethodGet, "/document", "", nil)
	assert.Equal(t, http.StatusUnauthorized, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := ts.do(t, http.MethodGet, "/document", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "rate_limit_exceeded")
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	health := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestDocumentRoutes_RequireAuth(t *testing.T) {
	ts := newTestServer(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/document"},
		{http.MethodPut, "/document/personal-info"},
		{http.MethodPut, "/document/photo"},
		{http.MethodPost, "/document/sections/skills/entries"},
		{http.MethodPatch, "/document/sections/skills/entries/x"},
		{http.MethodDelete, "/document/sections/skills/entries/x"},
		{http.MethodGet, "/document/preview"},
		{http.MethodPost, "/document/export"},
		{http.MethodPost, "/auth/logout"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := ts.do(t, rt.method, rt.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestExport_Success(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "ada@example.com")

	ts.doJSON(t, http.MethodPut, "/document/personal-info", token, types.PersonalInfo{FullName: "Ada Lovelace"})

	rec := ts.do(t, http.MethodPost, "/document/export", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=Ada_Lovelace_CV.pdf", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "3", rec.Header().Get("X-CV-Pages"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
	assert.FileExists(t, filepath.Join(ts.outDir, "Ada_Lovelace_CV.pdf"))
}

func TestExport_Filename(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "ada@example.com")

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{name: "plain name", query: "custom.pdf", status: http.StatusOK},
		{name: "nested path", query: "a/b.pdf", status: http.StatusBadRequest},
		{name: "parent dir", query: "..", status: http.StatusBadRequest},
		{name: "escape", query: "../escape.pdf", status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/document/export?filename="+url.QueryEscape(tt.query), token, nil)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
	assert.FileExists(t, filepath.Join(ts.outDir, "custom.pdf"))
	assert.NoFileExists(t, filepath.Join(filepath.Dir(ts.outDir), "escape.pdf"))
}

func TestExport_FailureLeavesDocumentIntact(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "ada@example.com")

	added := ts.do(t, http.MethodPost, "/document/sections/skills/entries", token, nil)
	require.Equal(t, http.StatusCreated, added.Code)
	before := ts.do(t, http.MethodGet, "/document", token, nil).Body.String()

	ts.capturer.err = errors.New("browser crashed")
	rec := ts.do(t, http.MethodPost, "/document/export", token, nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body["error"], "browser crashed")

	after := ts.do(t, http.MethodGet, "/document", token, nil).Body.String()
	assert.JSONEq(t, before, after)
	assert.NoFileExists(t, filepath.Join(ts.outDir, "My_CV.pdf"))
}
