package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// A nil client disables caching; every read is a miss and writes are no-ops.
func TestNilClientIsSafe(t *testing.T) {
	var c *Client
	ctx := context.Background()

	_, err := c.GetMetrics(ctx)
	require.True(t, IsMiss(err))

	_, err = c.GetChart(ctx)
	require.True(t, IsMiss(err))

	require.NoError(t, c.SetMetrics(ctx, "{}", time.Minute))
	require.NoError(t, c.SetChart(ctx, "[]", time.Minute))
	require.NoError(t, c.InvalidateDashboard(ctx))
	require.NoError(t, c.Close())
}
