package entrycache

import (
	"carelog-service/internal/app/contracts"
	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/constvars"
	"carelog-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type entryCache struct {
	redisRepo   contracts.RedisRepository
	sleepClient contracts.SleepApiClient
	ttl         time.Duration
	group       singleflight.Group
	Log         *zap.Logger

	mu          sync.Mutex
	generations map[string]uint64
}

func NewSleepEntryCache(redisRepo contracts.RedisRepository, sleepClient contracts.SleepApiClient, ttl time.Duration, logger *zap.Logger) contracts.SleepEntryCache {
	return &entryCache{
		redisRepo:   redisRepo,
		sleepClient: sleepClient,
		ttl:         ttl,
		Log:         logger,
		generations: make(map[string]uint64),
	}
}

func (c *entryCache) FindEntries(ctx context.Context, session models.AuthSession, residentID string) ([]models.SleepEntry, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	key := cacheKey(residentID)

	cached, err := c.redisRepo.Get(ctx, key)
	if err != nil {
		c.Log.Warn("entryCache.FindEntries error calling redisRepo.Get",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}
	if cached != "" {
		var entries []models.SleepEntry
		if err := json.Unmarshal([]byte(cached), &entries); err == nil {
			return entries, nil
		}
		c.Log.Warn("entryCache.FindEntries dropping undecodable cache value",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
	}

	return c.load(ctx, session, residentID)
}

func (c *entryCache) Refresh(ctx context.Context, session models.AuthSession, residentID string) ([]models.SleepEntry, error) {
	c.bumpGeneration(residentID)
	if err := c.redisRepo.Delete(ctx, cacheKey(residentID)); err != nil {
		return nil, err
	}
	c.group.Forget(flightKey(session, residentID))
	return c.load(ctx, session, residentID)
}

// load collapses concurrent misses of the same caller for a resident into one
// remote fetch. The fetch outlives a cancelled caller so waiters still get a
// result, and it only writes the cache when no Refresh started meanwhile.
func (c *entryCache) load(ctx context.Context, session models.AuthSession, residentID string) ([]models.SleepEntry, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	fetchCtx := context.WithoutCancel(ctx)

	value, err, _ := c.group.Do(flightKey(session, residentID), func() (interface{}, error) {
		generation := c.generation(residentID)
		entries, err := c.sleepClient.FindSleepsByResident(fetchCtx, session, residentID)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []models.SleepEntry{}
		}
		if c.generation(residentID) != generation {
			return entries, nil
		}
		if err := c.redisRepo.Set(fetchCtx, cacheKey(residentID), entries, c.ttl); err != nil {
			c.Log.Warn("entryCache.load error calling redisRepo.Set",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
		return entries, nil
	})
	if err != nil {
		c.Log.Error("entryCache.load error calling sleepClient.FindSleepsByResident",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResidentIDKey, residentID),
			zap.Error(err),
		)
		return nil, err
	}

	entries, ok := value.([]models.SleepEntry)
	if !ok {
		return nil, exceptions.ErrServerProcess(fmt.Errorf("unexpected cache value %T", value))
	}
	return entries, nil
}

func (c *entryCache) generation(residentID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[residentID]
}

func (c *entryCache) bumpGeneration(residentID string) {
	c.mu.Lock()
	c.generations[residentID]++
	c.mu.Unlock()
}

func flightKey(session models.AuthSession, residentID string) string {
	return residentID + "|" + session.UserID + "|" + session.Token
}

func cacheKey(residentID string) string {
	return fmt.Sprintf(constvars.RedisKeySleepEntriesFormat, residentID)
}
