package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yfdecor/storefront/internal/cache"
	"github.com/yfdecor/storefront/internal/gateway"
	"github.com/yfdecor/storefront/internal/logger"
)

const defaultTTL = 5 * time.Minute

// Service 目录读缓存：分类与商品的读穿透缓存，只反映最近一次成功响应。
// 缓存不可用时直接回源，不影响读取。
type Service struct {
	gateway *gateway.Client
	ttl     time.Duration
}

// NewService 创建目录服务
func NewService(gw *gateway.Client, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Service{gateway: gw, ttl: ttl}
}

// Categories 获取分类列表
func (s *Service) Categories(ctx context.Context) ([]gateway.Category, error) {
	const key = "catalog:categories"

	var cached []gateway.Category
	if found, err := cache.GetJSON(ctx, key, &cached); err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", key, "error", err)
	} else if found {
		return cached, nil
	}

	categories, err := s.gateway.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, key, categories, s.ttl); err != nil {
		logger.Warnw("catalog_cache_write_failed", "key", key, "error", err)
	}
	return categories, nil
}

// Products 获取商品列表，category 为空时返回全部
func (s *Service) Products(ctx context.Context, category string) ([]gateway.Product, error) {
	key := "catalog:products"
	if trimmed := strings.TrimSpace(category); trimmed != "" {
		key = fmt.Sprintf("catalog:products:%s", trimmed)
	}

	var cached []gateway.Product
	if found, err := cache.GetJSON(ctx, key, &cached); err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", key, "error", err)
	} else if found {
		return cached, nil
	}

	products, err := s.gateway.Products(ctx, category)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, key, products, s.ttl); err != nil {
		logger.Warnw("catalog_cache_write_failed", "key", key, "error", err)
	}
	return products, nil
}
