package tracing

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestPipelineDescription(t *testing.T) {
	ctx := context.Background()
	require.Equal(t, "PIPELINE (empty)", pipelineDescription(nil))
	require.Equal(t, "PIPELINE: SET", pipelineDescription([]redis.Cmder{redis.NewStatusCmd(ctx, "set", "k", "v")}))

	cmds := []redis.Cmder{
		redis.NewStatusCmd(ctx, "set", "a", "1"),
		redis.NewStringCmd(ctx, "get", "a"),
		redis.NewIntCmd(ctx, "del", "a"),
		redis.NewIntCmd(ctx, "exists", "a"),
	}
	require.Equal(t, "PIPELINE: SET, GET, DEL...", pipelineDescription(cmds))
}
