package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_EmptyAddrDisablesCache(t *testing.T) {
	assert.Nil(t, New("", "", 0))
}

func TestNilClient_FailsSafe(t *testing.T) {
	ctx := context.Background()
	var c *Client

	c.Set(ctx, "k", []byte("v"), time.Minute)
	c.SetJSON(ctx, "j", map[string]int{"a": 1}, time.Minute)
	c.Delete(ctx, "k")

	assert.Nil(t, c.Get(ctx, "k"))
	var dst map[string]int
	assert.False(t, c.GetJSON(ctx, "j", &dst))
	assert.Error(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}
