package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jrsteele09/go-discord-activity/discord"
	"github.com/jrsteele09/go-discord-activity/internal/config"
	apperrors "github.com/jrsteele09/go-discord-activity/internal/errors"
	"github.com/jrsteele09/go-discord-activity/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testClientID     = "1234567890"
	testClientSecret = "super-secret-value"
)

func newConfig(t *testing.T, values map[string]string) config.Config {
	t.Helper()
	env := map[string]string{
		"VITE_CLIENT_ID": testClientID,
		"CLIENT_SECRET":  testClientSecret,
	}
	for k, v := range values {
		env[k] = v
	}
	c, err := config.FromEnv(func(envVar, defaultValue string) string {
		if v, ok := env[envVar]; ok && v != "" {
			return v
		}
		return defaultValue
	})
	require.NoError(t, err)
	return c
}

// testFixture wires a server to a real exchanger talking to a fake Discord token endpoint
type testFixture struct {
	server   *server.Server
	upstream *httptest.Server
	logs     *bytes.Buffer
}

func setupTestFixture(t *testing.T, env map[string]string, upstream http.HandlerFunc) *testFixture {
	t.Helper()

	up := httptest.NewServer(upstream)
	t.Cleanup(up.Close)

	c := newConfig(t, env)
	exchanger, err := discord.NewTokenExchanger(c.GetClientID(), c.GetClientSecret(), discord.WithBaseURL(up.URL))
	require.NoError(t, err)

	logs := &bytes.Buffer{}
	s, err := server.New(c, exchanger, server.WithLogger(zerolog.New(logs)))
	require.NoError(t, err)

	return &testFixture{server: s, upstream: up, logs: logs}
}

func (f *testFixture) post(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func jsonUpstream(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestToken_Success(t *testing.T) {
	f := setupTestFixture(t, nil, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "abc123", r.PostForm.Get("code"))
		assert.Equal(t, testClientSecret, r.PostForm.Get("client_secret"))
		jsonUpstream(http.StatusOK, `{"access_token":"tok1","token_type":"Bearer","expires_in":604800,"refresh_token":"refresh-1","scope":"identify guilds rpc.voice.read"}`)(w, r)
	})

	rec := f.post("/token", `{"code":"abc123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, map[string]any{"access_token": "tok1"}, body)
	require.NotContains(t, f.logs.String(), testClientSecret)
}

func TestToken_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name         string
		upstream     http.HandlerFunc
		wantCategory string
		wantInLog    string
	}{
		{
			name:         "upstream 400",
			upstream:     jsonUpstream(http.StatusBadRequest, `{"error":"invalid_grant","error_description":"Invalid \"code\" in request."}`),
			wantCategory: "exchange_rejected",
			wantInLog:    `"upstream_status":400`,
		},
		{
			name:         "upstream 500",
			upstream:     jsonUpstream(http.StatusInternalServerError, `{"message":"internal provider diagnostics"}`),
			wantCategory: "exchange_rejected",
			wantInLog:    `"upstream_status":500`,
		},
		{
			name:         "missing access token",
			upstream:     jsonUpstream(http.StatusOK, `{"token_type":"Bearer","scope":"identify"}`),
			wantCategory: "malformed_upstream_response",
		},
		{
			name:         "undecodable body",
			upstream:     jsonUpstream(http.StatusOK, `<html>provider diagnostics</html>`),
			wantCategory: "malformed_upstream_response",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := setupTestFixture(t, nil, tc.upstream)

			rec := f.post("/token", `{"code":"bad"}`)
			require.Equal(t, http.StatusInternalServerError, rec.Code)
			require.Equal(t, "Error exchanging code for token\n", rec.Body.String())
			require.NotContains(t, rec.Body.String(), "invalid_grant")
			require.NotContains(t, rec.Body.String(), "diagnostics")

			logs := f.logs.String()
			require.Contains(t, logs, `"category":"`+tc.wantCategory+`"`)
			if tc.wantInLog != "" {
				require.Contains(t, logs, tc.wantInLog)
			}
			require.NotContains(t, logs, testClientSecret)
		})
	}
}

func TestToken_UpstreamUnavailable(t *testing.T) {
	f := setupTestFixture(t, nil, jsonUpstream(http.StatusOK, `{}`))
	f.upstream.Close()

	rec := f.post("/token", `{"code":"abc123"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Error exchanging code for token\n", rec.Body.String())
	require.Contains(t, f.logs.String(), `"category":"upstream_unavailable"`)
}

func TestToken_InvalidRequest(t *testing.T) {
	called := false
	f := setupTestFixture(t, nil, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	for _, body := range []string{`not json`, `{}`, `{"code":""}`} {
		f.logs.Reset()
		rec := f.post("/token", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		require.Equal(t, "invalid request\n", rec.Body.String(), body)
		require.Contains(t, f.logs.String(), `: invalid request"`, body)
	}
	require.False(t, called, "no upstream call for invalid requests")
}

func TestToken_ProductionRoute(t *testing.T) {
	dist := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dist, "index.html"), []byte("<div id=\"app\"></div>"), 0o600))

	f := setupTestFixture(t, map[string]string{"NODE_ENV": "production", "CLIENT_DIST": dist},
		jsonUpstream(http.StatusOK, `{"access_token":"tok1"}`))

	rec := f.post("/api/token", `{"code":"abc123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"access_token":"tok1"}`, rec.Body.String())

	rec = f.post("/token", `{"code":"abc123"}`)
	require.NotEqual(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	getRec := httptest.NewRecorder()
	f.server.ServeHTTP(getRec, req)
	require.Equal(t, http.StatusOK, getRec.Code)
	require.Contains(t, getRec.Body.String(), `<div id="app">`)
	require.Equal(t, "no-cache", getRec.Header().Get("Cache-Control"))
}

// stubExchanger lets handler tests control the exchanger result directly
type stubExchanger struct {
	token string
	err   error
}

func (s stubExchanger) Exchange(context.Context, string) (string, error) {
	return s.token, s.err
}

func TestToken_EmptyTokenFromExchanger(t *testing.T) {
	logs := &bytes.Buffer{}
	s, err := server.New(newConfig(t, nil), stubExchanger{}, server.WithLogger(zerolog.New(logs)))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(`{"code":"abc123"}`))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, logs.String(), "malformed_upstream_response")
}

func TestNew_RequiresExchanger(t *testing.T) {
	_, err := server.New(newConfig(t, nil), nil)
	require.ErrorIs(t, err, apperrors.ErrMissingClientSecret)
}
