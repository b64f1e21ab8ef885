package sentry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type coded int32

func (c coded) Error() string  { return "coded" }
func (c coded) GetCode() int32 { return int32(c) }

func TestShouldReport(t *testing.T) {
	assert.True(t, shouldReport(errors.New("plain")))
	assert.True(t, shouldReport(coded(500)))
	assert.True(t, shouldReport(coded(50001)))
	assert.False(t, shouldReport(coded(404)))
	assert.False(t, shouldReport(coded(40904)))
	assert.False(t, Enabled())
}
