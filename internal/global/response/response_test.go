package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorIsComparesCode(t *testing.T) {
	wrapped := ErrCapacityExceeded.WithOrigin(errors.New("full")).WithTips("活动1")
	require.ErrorIs(t, wrapped, ErrCapacityExceeded)
	require.NotErrorIs(t, wrapped, ErrDuplicateRegistration)
	require.Equal(t, http.StatusConflict, wrapped.Status())
	require.NotNil(t, wrapped.StackTrace())
}

func TestFailWritesEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Fail(c, ErrActivityNotFound)

	require.Equal(t, http.StatusNotFound, w.Code)
	var body ResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, int32(40401), body.Code)
	require.Equal(t, ErrActivityNotFound.Message, body.Message)
	require.Nil(t, body.Data)
	require.True(t, c.IsAborted())
}

func TestFailWrapsPlainError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Fail(c, errors.New("boom"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body ResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, int32(500), body.Code)
	require.Empty(t, body.Origin)
}

func TestFailOriginOnlyWhenExposed(t *testing.T) {
	r := gin.New()
	r.GET("/hidden", func(c *gin.Context) { Fail(c, errors.New("boom")) })
	r.GET("/debug", ExposeOrigin(), func(c *gin.Context) { Fail(c, errors.New("boom")) })

	var body ResponseBody
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hidden", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Empty(t, body.Origin)

	body = ResponseBody{}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Contains(t, body.Origin, "boom")
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		defer Recovery(c)
		c.Next()
	})
	r.GET("/panic", func(c *gin.Context) { panic("oops") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body ResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, int32(500), body.Code)
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, gin.H{"id": 1})

	var body ResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, int32(200), body.Code)
	require.Equal(t, map[string]any{"id": float64(1)}, body.Data)
}
