package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestNilCache_LoadsThrough(t *testing.T) {
	var c *Cache
	calls := 0
	got, err := GetOrLoadJSON(c, context.Background(), "k", time.Minute, func(context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || calls != 1 {
		t.Fatalf("got %v after %d calls", got, calls)
	}
	if err := c.Delete(context.Background(), "k"); err != nil {
		t.Fatalf("delete on nil cache: %v", err)
	}
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("ping on nil cache: %v", err)
	}
}

func TestNilCache_PropagatesError(t *testing.T) {
	var c *Cache
	boom := errors.New("boom")
	_, err := GetOrLoadJSON(c, context.Background(), "k", time.Minute, func(context.Context) (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestKeyPrefix(t *testing.T) {
	c := &Cache{Prefix: "booking:"}
	if got := c.key("user:1"); got != "booking:user:1" {
		t.Fatalf("key = %q", got)
	}
}

func newRedisCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0, "test:")
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestGetOrLoadJSON_HitsAfterFirstLoad(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"a"}, nil
	}
	for i := 0; i < 3; i++ {
		got, err := GetOrLoadJSON(c, ctx, "k", time.Minute, load)
		if err != nil || len(got) != 1 || got[0] != "a" {
			t.Fatalf("round %d: %v, %v", i, got, err)
		}
	}
	if calls != 1 {
		t.Fatalf("load called %d times, want 1", calls)
	}
	if !mr.Exists("test:k") {
		t.Fatal("value not stored under prefixed key")
	}
	if ttl := mr.TTL("test:k"); ttl != time.Minute {
		t.Fatalf("ttl = %v", ttl)
	}
}

func TestDelete_ForcesReload(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()
	calls := 0
	load := func(context.Context) ([]byte, error) {
		calls++
		return []byte("v"), nil
	}
	if _, err := c.GetOrLoad(ctx, "k", time.Minute, load); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := c.Delete(ctx, "k", "other"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("test:k") {
		t.Fatal("key still present after delete")
	}
	if _, err := c.GetOrLoad(ctx, "k", time.Minute, load); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if calls != 2 {
		t.Fatalf("load called %d times, want 2", calls)
	}
}

func TestGetOrLoad_DeleteDuringLoadIsNotCached(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan string, 1)
	go func() {
		b, _ := c.GetOrLoad(ctx, "k", time.Minute, func(context.Context) ([]byte, error) {
			close(started)
			<-release
			return []byte("old"), nil
		})
		done <- string(b)
	}()

	<-started
	// 回源读到旧数据之后发生写入并失效
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	close(release)
	if got := <-done; got != "old" {
		t.Fatalf("in-flight caller got %q", got)
	}
	if mr.Exists("test:k") {
		v, _ := mr.Get("test:k")
		t.Fatalf("stale value %q written back after delete", v)
	}

	b, err := c.GetOrLoad(ctx, "k", time.Minute, func(context.Context) ([]byte, error) {
		return []byte("new"), nil
	})
	if err != nil || string(b) != "new" {
		t.Fatalf("after delete: %q, %v", b, err)
	}
}

func TestGetOrLoad_LoadOutlivesCallerCancel(t *testing.T) {
	c, mr := newRedisCache(t)
	c.LoadTimeout = time.Second
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b, err := c.GetOrLoad(ctx, "k", time.Minute, func(lctx context.Context) ([]byte, error) {
		if err := lctx.Err(); err != nil {
			return nil, err
		}
		if _, ok := lctx.Deadline(); !ok {
			return nil, errors.New("load context has no deadline")
		}
		return []byte("v"), nil
	})
	if err != nil || string(b) != "v" {
		t.Fatalf("got %q, %v", b, err)
	}
	if !mr.Exists("test:k") {
		t.Fatal("value not cached")
	}
}

func TestGetOrLoad_RedisDownFallsBack(t *testing.T) {
	c, mr := newRedisCache(t)
	mr.Close()
	b, err := c.GetOrLoad(context.Background(), "k", time.Minute, func(context.Context) ([]byte, error) {
		return []byte("db"), nil
	})
	if err != nil || string(b) != "db" {
		t.Fatalf("got %q, %v", b, err)
	}
}
