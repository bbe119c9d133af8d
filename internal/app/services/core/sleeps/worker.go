package sleeps

import (
	"context"
	"sync"
	"time"

	"carelog-service/internal/app/contracts"
	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/constvars"
	"carelog-service/internal/pkg/dto/requests"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultReminderCronSpec = "@hourly"

type ReminderWorkerConfig struct {
	CronSpec string
	LockTTL  time.Duration
	// Session is the service identity used to read the records API.
	Session models.AuthSession
}

// ReminderWorker periodically publishes a reminder for every resident with
// missing past slots today. Only the instance holding the leader lock runs.
type ReminderWorker struct {
	log       *zap.Logger
	cfg       ReminderWorkerConfig
	locker    contracts.LockerService
	residents contracts.ResidentApiClient
	sleeps    contracts.SleepApiClient
	publisher contracts.ReminderPublisher
	now       func() time.Time
	cron      *cron.Cron
	runCtx    context.Context
	cancel    context.CancelFunc
	stopOnce  sync.Once
}

func NewReminderWorker(
	log *zap.Logger,
	cfg ReminderWorkerConfig,
	lockerSvc contracts.LockerService,
	residentClient contracts.ResidentApiClient,
	sleepClient contracts.SleepApiClient,
	publisher contracts.ReminderPublisher,
	now func() time.Time,
) *ReminderWorker {
	if now == nil {
		now = time.Now
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 2 * time.Minute
	}
	return &ReminderWorker{
		log:       log,
		cfg:       cfg,
		locker:    lockerSvc,
		residents: residentClient,
		sleeps:    sleepClient,
		publisher: publisher,
		now:       now,
	}
}

// Start schedules the worker. An invalid cron spec falls back to hourly.
func (w *ReminderWorker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	_, err := c.AddFunc(w.cfg.CronSpec, func() { w.RunOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("sleeps.reminder: failed to schedule with provided cron spec; falling back to @hourly",
			zap.String("cron_spec", w.cfg.CronSpec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(defaultReminderCronSpec, func() { w.RunOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop cancels a running pass and waits for it to return.
func (w *ReminderWorker) Stop() {
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
		}
		if w.cron != nil {
			<-w.cron.Stop().Done()
		}
	})
}

// RunOnce performs one reminder pass and reports how many reminders went out.
func (w *ReminderWorker) RunOnce(ctx context.Context) int {
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyReminderLeader, w.cfg.LockTTL)
	if err != nil {
		w.log.Warn("sleeps.reminder: leader lock attempt failed", zap.Error(err))
		return 0
	}
	if !acquired {
		w.log.Info("sleeps.reminder: leader lock not acquired; another instance is running")
		return 0
	}
	defer w.locker.Unlock(context.WithoutCancel(ctx), constvars.RedisKeyReminderLeader, token)

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	var refresher sync.WaitGroup
	refresher.Add(1)
	go func() {
		defer refresher.Done()
		tick := time.NewTicker(w.cfg.LockTTL / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(refreshCtx, constvars.RedisKeyReminderLeader, token, w.cfg.LockTTL); err != nil {
					w.log.Warn("sleeps.reminder: failed to refresh leader lock TTL", zap.Error(err))
				}
			}
		}
	}()
	defer func() {
		cancelRefresh()
		refresher.Wait()
	}()

	residents, err := w.residents.FindResidents(ctx, w.cfg.Session)
	if err != nil {
		w.log.Warn("sleeps.reminder: residents search failed", zap.Error(err))
		return 0
	}

	now := w.now()
	today := now.Format(constvars.DateLayout)
	published := 0
	for _, resident := range residents {
		if ctx.Err() != nil {
			break
		}
		if !resident.Active {
			continue
		}

		entries, err := w.sleeps.FindSleepsByResident(ctx, w.cfg.Session, resident.ID)
		if err != nil {
			w.log.Warn("sleeps.reminder: entries fetch failed",
				zap.String(constvars.LoggingResidentIDKey, resident.ID),
				zap.Error(err),
			)
			continue
		}

		missing := ComputeMissing([]string{today}, entries, now)
		if len(missing) == 0 {
			continue
		}
		slots := make([]string, 0, len(missing))
		for _, slot := range missing {
			slots = append(slots, slot.Slot)
		}

		err = w.publisher.PublishMissingSleepReminder(ctx, &requests.MissingSleepReminder{
			ResidentID:   resident.ID,
			ResidentName: resident.FullName(),
			Date:         today,
			MissingSlots: slots,
			GeneratedAt:  now.Format(time.RFC3339),
		})
		if err != nil {
			w.log.Warn("sleeps.reminder: publish failed",
				zap.String(constvars.LoggingResidentIDKey, resident.ID),
				zap.Error(err),
			)
			continue
		}
		published++
	}

	w.log.Info("sleeps.reminder: pass completed", zap.Int("published", published))
	return published
}
