package notices

import (
	"carelog-service/internal/app/contracts"
	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/constvars"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type noticeService struct {
	redisRepo contracts.RedisRepository
	ttl       time.Duration
	now       func() time.Time
	Log       *zap.Logger
}

// NewNoticeService keeps at most one notice per user. Pushing replaces the
// previous notice whatever its kind.
func NewNoticeService(redisRepo contracts.RedisRepository, ttl time.Duration, now func() time.Time, logger *zap.Logger) contracts.NoticeService {
	if now == nil {
		now = time.Now
	}
	return &noticeService{
		redisRepo: redisRepo,
		ttl:       ttl,
		now:       now,
		Log:       logger,
	}
}

func (s *noticeService) Push(ctx context.Context, userID string, kind models.NoticeKind, message string) error {
	notice := &models.Notice{
		Kind:      kind,
		Message:   message,
		CreatedAt: s.now(),
	}
	if err := s.redisRepo.Set(ctx, noticeKey(userID), notice, s.ttl); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		s.Log.Error("noticeService.Push error calling redisRepo.Set",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, userID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Current returns nil once the notice has expired.
func (s *noticeService) Current(ctx context.Context, userID string) (*models.Notice, error) {
	raw, err := s.redisRepo.Get(ctx, noticeKey(userID))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	notice := new(models.Notice)
	if err := json.Unmarshal([]byte(raw), notice); err != nil {
		return nil, nil
	}
	return notice, nil
}

func noticeKey(userID string) string {
	return fmt.Sprintf(constvars.RedisKeyNoticeFormat, userID)
}
