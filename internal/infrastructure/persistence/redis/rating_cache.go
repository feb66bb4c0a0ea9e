package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookshop/internal/domain/review"
)

// ratingTTL 评分缓存有效期
// 评分聚合是读多写少的热点数据,短TTL兜底避免长期脏读
const ratingTTL = 10 * time.Minute

// RatingCache 图书评分缓存
// Key设计:rating:{book_id},值为JSON序列化的评分汇总;
// 写书评时主动失效,缓存不可用时调用方直接回源数据库
type RatingCache struct {
	client *goredis.Client
}

// NewRatingCache 创建评分缓存
func NewRatingCache(client *goredis.Client) *RatingCache {
	return &RatingCache{client: client}
}

// Get 读取评分缓存,未命中或解码失败返回nil
func (c *RatingCache) Get(ctx context.Context, bookID uint) (*review.Rating, error) {
	key := fmt.Sprintf("rating:%d", bookID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var rating review.Rating
	if err := json.Unmarshal(data, &rating); err != nil {
		// 脏数据当未命中处理,下次Set覆盖
		return nil, nil
	}
	return &rating, nil
}

// Set 写入评分缓存
func (c *RatingCache) Set(ctx context.Context, bookID uint, rating *review.Rating) error {
	key := fmt.Sprintf("rating:%d", bookID)

	data, err := json.Marshal(rating)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ratingTTL).Err()
}

// Invalidate 失效评分缓存(写书评后调用)
func (c *RatingCache) Invalidate(ctx context.Context, bookID uint) error {
	key := fmt.Sprintf("rating:%d", bookID)
	return c.client.Del(ctx, key).Err()
}
