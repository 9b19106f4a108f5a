package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/config"
)

// Client bọc kết nối Redis
// Hiện dùng cho blacklist token và rate limit
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient tạo kết nối Redis kèm kiểm tra Ping
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("kết nối Redis thất bại: %w", err)
	}

	logger.Info("kết nối Redis thành công", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// Close đóng kết nối
func (c *Client) Close() error {
	return c.rdb.Close()
}

// ── Blacklist token ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken đưa JWT ID vào blacklist với TTL bằng thời gian còn hiệu lực
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // token đã hết hạn, không cần blacklist
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsTokenBlacklisted kiểm tra JWT ID có trong blacklist không
func (c *Client) IsTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── Rate limit ──

// CheckRateLimit đếm số request trong cửa sổ trượt, trả về false nếu vượt limit
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}
