package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// load 返回 nil 时用它跳过回写
var errAbsent = errors.New("cache: value absent")

// GetOrLoadJSON 以 JSON 形式缓存 *T。
// 只缓存找到的值：load 返回 (nil, nil) 或出错时都不写 redis
func GetOrLoadJSON[T any](
	c *Cache,
	ctx context.Context,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	b, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		switch {
		case err != nil:
			return nil, err
		case v == nil:
			return nil, errAbsent
		}
		return json.Marshal(v)
	})
	if errors.Is(err, errAbsent) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := new(T)
	if err := json.Unmarshal(b, out); err != nil {
		// 缓存里是坏数据：当作未命中，直接回源
		return load(ctx)
	}
	return out, nil
}
