package staff

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const optionsCacheTTL = 5 * time.Minute

// StaffOption is the dropdown-sized projection of a member.
type StaffOption struct {
	CompanyUserID string `json:"company_user_id"`
	FullName      string `json:"full_name"`
	Role          string `json:"role"`
}

// OptionsCache keeps the per-company staff option list in Redis. Concurrent
// misses for the same company collapse into one loader call.
type OptionsCache struct {
	rdb    *redis.Client
	group  singleflight.Group
	logger *zap.Logger
}

func NewOptionsCache(rdb *redis.Client, logger ...*zap.Logger) *OptionsCache {
	l := zap.L().Named("staff.options_cache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staff.options_cache")
	}
	return &OptionsCache{rdb: rdb, logger: l}
}

func optionsKey(companyID string) string {
	return "staff:options:" + companyID
}

// Get returns the cached options, falling back to loader on a miss. Cache
// failures degrade to the loader, never to an error.
func (c *OptionsCache) Get(ctx context.Context, companyID string, loader func(ctx context.Context) ([]StaffOption, error)) ([]StaffOption, error) {
	if c.rdb != nil {
		raw, err := c.rdb.Get(ctx, optionsKey(companyID)).Bytes()
		if err == nil {
			var opts []StaffOption
			if err := json.Unmarshal(raw, &opts); err == nil {
				return opts, nil
			}
		} else if err != redis.Nil {
			c.logger.Warn("options cache read failed", zap.String("company_id", companyID), zap.Error(err))
		}
	}

	v, err, _ := c.group.Do(optionsKey(companyID), func() (interface{}, error) {
		opts, err := loader(ctx)
		if err != nil {
			return nil, err
		}

		if c.rdb != nil {
			if raw, err := json.Marshal(opts); err == nil {
				if err := c.rdb.Set(ctx, optionsKey(companyID), raw, optionsCacheTTL).Err(); err != nil {
					c.logger.Warn("options cache write failed", zap.String("company_id", companyID), zap.Error(err))
				}
			}
		}
		return opts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]StaffOption), nil
}

// Invalidate drops the cached list after any staff write.
func (c *OptionsCache) Invalidate(ctx context.Context, companyID string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, optionsKey(companyID)).Err(); err != nil {
		c.logger.Warn("options cache invalidate failed", zap.String("company_id", companyID), zap.Error(err))
	}
}
