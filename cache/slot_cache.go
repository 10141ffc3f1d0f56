package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"salonmarket-backend/services"
)

// generationTTL bounds how long a day's generation counter outlives its last bump.
// It must stay longer than any entry TTL.
const generationTTL = 48 * time.Hour

// SlotCache keeps computed availability per salon, day and duration in Redis.
// Entries are keyed by the salon's and the day's generation; invalidating bumps a
// generation so older entries are never read again and expire on their own.
// A nil *SlotCache is valid and caches nothing.
type SlotCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// Entry is where a list computed after a miss should be stored. It pins the generations
// seen by Get, so a Set that races with an invalidation writes somewhere nobody reads.
type Entry struct {
	key string
}

func NewSlotCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *SlotCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if ttl > generationTTL/2 {
		ttl = generationTTL / 2
	}
	return &SlotCache{rdb: rdb, ttl: ttl, logger: logger}
}

func salonGenKey(salonID uuid.UUID) string {
	return fmt.Sprintf("slots:gen:%s", salonID)
}

func dayGenKey(salonID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("slots:gen:%s:%s", salonID, date.Format("2006-01-02"))
}

func slotKey(salonID uuid.UUID, date time.Time, duration int, salonGen, dayGen int64) string {
	return fmt.Sprintf("slots:%s:%s:%d:%d.%d", salonID, date.Format("2006-01-02"), duration, salonGen, dayGen)
}

// Get returns the cached slots and whether there was a hit, plus the Entry to fill on a
// miss. Redis errors count as a miss and yield an Entry that Set ignores.
func (c *SlotCache) Get(ctx context.Context, salonID uuid.UUID, date time.Time, duration int) ([]services.Slot, Entry, bool) {
	if c == nil {
		return nil, Entry{}, false
	}
	gens, err := c.rdb.MGet(ctx, salonGenKey(salonID), dayGenKey(salonID, date)).Result()
	if err != nil {
		c.logger.Warn("slot cache read failed", zap.Error(err))
		return nil, Entry{}, false
	}
	entry := Entry{key: slotKey(salonID, date, duration, generation(gens[0]), generation(gens[1]))}

	raw, err := c.rdb.Get(ctx, entry.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("slot cache read failed", zap.Error(err))
			return nil, Entry{}, false
		}
		return nil, entry, false
	}
	var slots []services.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		c.logger.Warn("slot cache entry is corrupt", zap.Error(err))
		return nil, entry, false
	}
	return slots, entry, true
}

func (c *SlotCache) Set(ctx context.Context, entry Entry, slots []services.Slot) {
	if c == nil || entry.key == "" {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, entry.key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("slot cache write failed", zap.Error(err))
	}
}

// InvalidateDay drops every cached duration for the salon on date.
func (c *SlotCache) InvalidateDay(ctx context.Context, salonID uuid.UUID, date time.Time) {
	if c == nil {
		return
	}
	key := dayGenKey(salonID, date)
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, generationTTL)
		return nil
	})
	if err != nil {
		c.logger.Warn("slot cache invalidation failed", zap.Error(err), zap.String("key", key))
	}
}

// InvalidateSalon drops every cached day for the salon, used when opening hours change.
func (c *SlotCache) InvalidateSalon(ctx context.Context, salonID uuid.UUID) {
	if c == nil {
		return
	}
	if err := c.rdb.Incr(ctx, salonGenKey(salonID)).Err(); err != nil {
		c.logger.Warn("slot cache invalidation failed", zap.Error(err), zap.String("salon", salonID.String()))
	}
}

// generation reads an MGET value; a missing counter is generation 0.
func generation(v interface{}) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
