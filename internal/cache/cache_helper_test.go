package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name string `json:"name"`
}

func newTestManager(t *testing.T) (*CacheManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheManager(client), mr
}

func TestCacheOrExecute_ReadThrough(t *testing.T) {
	cm, mr := newTestManager(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return []row{{Name: "Ana"}}, nil
	}

	var first []row
	require.NoError(t, cm.Session.CacheOrExecute(ctx, "query:a", &first, time.Minute, fetch))
	var second []row
	require.NoError(t, cm.Session.CacheOrExecute(ctx, "query:a", &second, time.Minute, fetch))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists(SessionCacheConfig.Prefix+"query:a"))
}

func TestCacheOrExecute_FetchErrorNotCached(t *testing.T) {
	cm, mr := newTestManager(t)
	boom := errors.New("boom")

	var out []row
	err := cm.Session.CacheOrExecute(context.Background(), "query:b", &out, time.Minute, func() (interface{}, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists(SessionCacheConfig.Prefix+"query:b"))
}

func TestInvalidateSessionCache(t *testing.T) {
	cm, mr := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, cm.Session.Set(ctx, "query:a", row{Name: "a"}, time.Minute))
	require.NoError(t, cm.Session.Set(ctx, "query:b", row{Name: "b"}, time.Minute))
	require.NoError(t, cm.Member.Set(ctx, "list:all", row{Name: "m"}, time.Minute))

	InvalidateSessionCache(ctx, cm)

	assert.False(t, mr.Exists(SessionCacheConfig.Prefix+"query:a"))
	assert.False(t, mr.Exists(SessionCacheConfig.Prefix+"query:b"))
	assert.True(t, mr.Exists(MemberCacheConfig.Prefix+"list:all"))
}

func TestSafeDelete(t *testing.T) {
	cm, mr := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, cm.Member.Set(ctx, "list:a", row{Name: "a"}, time.Minute))
	require.NoError(t, cm.Member.Set(ctx, "list:b", row{Name: "b"}, time.Minute))

	SafeDelete(ctx, cm.Member, "list:a", "list:missing")

	assert.False(t, mr.Exists(MemberCacheConfig.Prefix+"list:a"))
	assert.True(t, mr.Exists(MemberCacheConfig.Prefix+"list:b"))

	mr.Close()
	SafeDelete(ctx, cm.Member, "list:b")
	SafeDelete(ctx, NewCacheManager(nil).Member, "list:b")
}

func TestCacheHelper_WithoutClient(t *testing.T) {
	cm := NewCacheManager(nil)
	ctx := context.Background()

	assert.False(t, cm.Session.Enabled())
	assert.NoError(t, cm.Session.Set(ctx, "k", row{}, time.Minute))
	assert.ErrorIs(t, cm.Session.Get(ctx, "k", &row{}), ErrCacheNotAvailable)
	assert.ErrorIs(t, cm.HealthCheck(ctx), ErrCacheNotAvailable)

	calls := 0
	var out row
	for i := 0; i < 2; i++ {
		require.NoError(t, cm.Session.CacheOrExecute(ctx, "k", &out, time.Minute, func() (interface{}, error) {
			calls++
			return row{Name: "x"}, nil
		}))
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, "x", out.Name)
}

func TestCacheManager_WithTTL(t *testing.T) {
	cm := NewCacheManager(nil).WithTTL(0)
	assert.Equal(t, SessionCacheConfig.TTL, cm.SessionTTL)

	cm.WithTTL(30 * time.Second)
	assert.Equal(t, 30*time.Second, cm.SessionTTL)
	assert.Equal(t, 30*time.Second, cm.MemberTTL)
}
