package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const defaultLoadTimeout = 5 * time.Second

// Cache 为 nil 时所有方法直接回源，调用方不必判断是否启用了 Redis
type Cache struct {
	RDB         *redis.Client
	Prefix      string
	LoadTimeout time.Duration // 回源超时，默认 5s

	sf singleflight.Group

	mu  sync.Mutex
	gen map[string]uint64 // Delete 时递增；回源期间版本变化则不回写
}

func New(addr, pass string, db int, prefix string) *Cache {
	return &Cache{
		RDB:    redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		Prefix: prefix,
	}
}

func (c *Cache) key(k string) string { return c.Prefix + k }

func (c *Cache) version(full string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen[full]
}

func (c *Cache) bump(full string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen == nil {
		c.gen = make(map[string]uint64)
	}
	c.gen[full]++
}

func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.RDB.Ping(ctx).Err()
}

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if c == nil {
		return load(ctx)
	}
	full := c.key(key)
	// 先读缓存；Redis 不可用时当作未命中
	if b, err := c.RDB.Get(ctx, full).Bytes(); err == nil {
		return b, nil
	}
	// single flight 合并回源；key 带上版本，失效之后的请求不会复用旧的回源
	ver := c.version(full)
	v, err, _ := c.sf.Do(full+"#"+strconv.FormatUint(ver, 10), func() (any, error) {
		// 回源不跟随首个请求的取消，避免拖垮同一批等待者
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout())
		defer cancel()
		b, e := load(lctx)
		if e != nil {
			return nil, e
		}
		if c.version(full) != ver {
			return b, nil
		}
		_ = c.RDB.Set(lctx, full, b, ttl).Err()
		// Set 与并发的 Delete 交错时再删一次
		if c.version(full) != ver {
			_ = c.RDB.Del(lctx, full).Err()
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Cache) loadTimeout() time.Duration {
	if c.LoadTimeout > 0 {
		return c.LoadTimeout
	}
	return defaultLoadTimeout
}

// Delete 写操作后失效相关 key；失败只影响命中率，不返回错误给业务
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		fk := c.key(k)
		c.bump(fk)
		full = append(full, fk)
	}
	return c.RDB.Del(ctx, full...).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.RDB.Close()
}
