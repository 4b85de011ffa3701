package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowLocal_EnforcesLimit(t *testing.T) {
	l := New(nil, 3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(ctx, "signup:10.0.0.1"), "request %d should pass", i+1)
	}
	assert.False(t, l.Allow(ctx, "signup:10.0.0.1"), "burst exhausted")
}

func TestAllowLocal_KeysAreIndependent(t *testing.T) {
	l := New(nil, 1, time.Hour)
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "signup:10.0.0.1"))
	assert.False(t, l.Allow(ctx, "signup:10.0.0.1"))
	assert.True(t, l.Allow(ctx, "signup:10.0.0.2"), "a different client keeps its own budget")
}
