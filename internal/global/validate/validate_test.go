package validate

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusReq struct {
	Status string `validate:"required,registration_status"`
	Role   string `validate:"omitempty,role"`
}

func TestRegister(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	assert.NoError(t, v.Struct(statusReq{Status: "approved", Role: "teacher"}))
	assert.Error(t, v.Struct(statusReq{Status: "maybe"}))
	assert.Error(t, v.Struct(statusReq{Status: "pending", Role: "root"}))
	assert.NoError(t, v.Var("published", "activity_status"))
	assert.Error(t, v.Var("archived", "activity_status"))
}

func TestInitOnGin(t *testing.T) {
	require.NoError(t, Init())
	require.NoError(t, Init())
}
