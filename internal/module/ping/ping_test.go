package ping_test

import (
	"net/http"
	"testing"

	"campus-activity/test"

	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	s := test.NewServer(t)
	resp := s.Do(t, http.MethodGet, "/ping", "", nil)
	test.NoError(t, resp)

	var data map[string]string
	resp.Decode(t, &data)
	require.Equal(t, "pong", data["message"])
	require.Equal(t, "1.0.0", data["version"])
}
