package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-activity/cmd/server"
	"campus-activity/internal/global/app"
	"campus-activity/internal/global/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Response 与 response.ResponseBody 对应，Data 延迟解析
type Response struct {
	Status  int             `json:"-"`
	Code    int32           `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (r Response) Decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, v), string(r.Data))
}

type Server struct {
	App    *app.App
	Engine *gin.Engine
}

func NewServer(t *testing.T) *Server {
	t.Helper()
	a := NewApp(t)
	return &Server{App: a, Engine: server.NewEngine(a)}
}

// Raw 发送请求并返回原始响应，path 不带 /api 前缀
func (s *Server) Raw(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, "/"+s.App.Config.Prefix+path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, req)
	return w
}

func (s *Server) Do(t *testing.T, method, path, token string, body any) Response {
	t.Helper()
	w := s.Raw(method, path, token, body)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	resp.Status = w.Code
	return resp
}

func ErrorEqual(t *testing.T, expected *response.Error, resp Response) {
	t.Helper()
	require.Equal(t, expected.Code, resp.Code, resp.Message)
	require.Equal(t, expected.Status(), resp.Status)
}

func NoError(t *testing.T, resp Response) {
	t.Helper()
	require.Equal(t, int32(200), resp.Code, resp.Message)
	require.Equal(t, http.StatusOK, resp.Status)
}
