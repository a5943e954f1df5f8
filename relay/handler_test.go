package relay

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/embeddemo/config"
	"github.com/xiaot623/embeddemo/domain"
)

func newTestHandler(upstreamURL string) *Handler {
	return NewHandler(NewClient(upstreamURL, "secret", time.Second))
}

func TestGenerateSessionForwardsSuccess(t *testing.T) {
	var gotBody []byte
	var gotAuth string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"sessionId":"abc123"}`))
	}))
	defer upstream.Close()

	e := echo.New()
	h := newTestHandler(upstream.URL)

	body := `{"deploymentId":32,"externalId":"u1","creatorMode":true}`
	req := httptest.NewRequest(http.MethodPost, GenerateSessionPath, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.GenerateSession(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"sessionId":"abc123"}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, body, string(gotBody))
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestGenerateSessionForwardsUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte("externalId is invalid"))
	}))
	defer upstream.Close()

	e := echo.New()
	h := newTestHandler(upstream.URL)

	req := httptest.NewRequest(http.MethodPost, GenerateSessionPath, bytes.NewBufferString(`{"deploymentId":1}`))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.GenerateSession(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "externalId is invalid", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get(echo.HeaderContentType))
}

func TestGenerateSessionUpstreamUnreachable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := upstream.URL
	upstream.Close()

	e := echo.New()
	h := newTestHandler(url)

	req := httptest.NewRequest(http.MethodPost, GenerateSessionPath, bytes.NewBufferString(`{"deploymentId":1}`))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.GenerateSession(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")

	var resp domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "failed to generate session", resp.Error)
}

func TestNewServerRoutes(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sessionId":"s1"}`))
	}))
	defer upstream.Close()

	e := NewServer(&config.Config{UpstreamURL: upstream.URL, APIKey: "secret", UpstreamTimeout: time.Second})

	req := httptest.NewRequest(http.MethodPost, GenerateSessionPath, bytes.NewBufferString(`{"deploymentId":1}`))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"sessionId":"s1"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, GenerateSessionPath, nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestNewServerRejectsOversizedBody(t *testing.T) {
	calls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer upstream.Close()

	e := NewServer(&config.Config{UpstreamURL: upstream.URL, APIKey: "secret", UpstreamTimeout: time.Second})

	body := bytes.Repeat([]byte("a"), 65*1024)
	req := httptest.NewRequest(http.MethodPost, GenerateSessionPath, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, 0, calls)
}

func TestNewServerLogLevel(t *testing.T) {
	e := NewServer(&config.Config{UpstreamURL: "http://upstream", LogLevel: "error"})
	assert.Equal(t, log.ERROR, e.Logger.Level())
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Lvl
	}{
		{"debug", log.DEBUG},
		{"info", log.INFO},
		{"WARN", log.WARN},
		{"warning", log.WARN},
		{"error", log.ERROR},
		{"off", log.OFF},
		{"", log.INFO},
		{"verbose", log.INFO},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in))
		})
	}
}
