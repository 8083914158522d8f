package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskhive/project-api/internal/api/metrics"
	"github.com/taskhive/project-api/internal/core/domain"
)

const reportTTL = 5 * time.Minute

// ReportCache caches generated project reports in Redis.
// Key format: report:<project_slug>
type ReportCache struct {
	client *redis.Client
}

// NewReportCache creates a ReportCache wrapping the given Redis client.
func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{client: client}
}

// Get returns the cached report for slug, or (nil, nil) on a miss.
func (c *ReportCache) Get(ctx context.Context, slug string) (*domain.ProjectReport, error) {
	raw, err := c.client.Get(ctx, c.key(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ReportCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("report cache get: %w", err)
	}

	var report domain.ProjectReport
	if err := json.Unmarshal(raw, &report); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		metrics.ReportCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}

	metrics.ReportCacheTotal.WithLabelValues("hit").Inc()
	return &report, nil
}

// Set stores the report under slug for reportTTL.
func (c *ReportCache) Set(ctx context.Context, slug string, report *domain.ProjectReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("report cache marshal: %w", err)
	}
	return c.client.Set(ctx, c.key(slug), raw, reportTTL).Err()
}

// Invalidate drops the cached report for slug after a project mutation.
func (c *ReportCache) Invalidate(ctx context.Context, slug string) error {
	return c.client.Del(ctx, c.key(slug)).Err()
}

func (c *ReportCache) key(slug string) string {
	return "report:" + slug
}
