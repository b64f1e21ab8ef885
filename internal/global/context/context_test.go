package context

import (
	"net/http/httptest"
	"testing"

	"campus-activity/internal/global/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPayload(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Zero(t, GetUserID(c))
	assert.Empty(t, GetUserRole(c))

	c.Set(PayloadKey, &jwt.Claims{Identity: jwt.Identity{ID: 9, Role: "admin"}})
	assert.Equal(t, uint(9), GetUserID(c))
	assert.Equal(t, "admin", GetUserRole(c))
}

func TestParamID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "12"}, {Key: "bad", Value: "x"}, {Key: "zero", Value: "0"}}

	id, err := ParamID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)

	_, err = ParamID(c, "bad")
	assert.Error(t, err)
	_, err = ParamID(c, "zero")
	assert.Error(t, err)
}
