package sleeps

import (
	"context"
	"errors"
	"testing"
	"time"

	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/constvars"
	"carelog-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var serviceSession = models.AuthSession{Token: "svc-token", Role: "superuser", UserID: "reminder-worker"}

func newTestWorker(locker *mockLocker, residents *mockResidentClient, sleeps *mockSleepClient, publisher *mockPublisher, now time.Time) *ReminderWorker {
	return NewReminderWorker(
		zap.NewNop(),
		ReminderWorkerConfig{CronSpec: "@hourly", LockTTL: time.Hour, Session: serviceSession},
		locker,
		residents,
		sleeps,
		publisher,
		fixedClock(now),
	)
}

func TestReminderWorkerRunOnce(t *testing.T) {
	now := localTime(2025, time.April, 2, 2, 30)

	t.Run("Publishes for active residents with gaps today", func(t *testing.T) {
		locker := new(mockLocker)
		residents := new(mockResidentClient)
		sleeps := new(mockSleepClient)
		publisher := new(mockPublisher)

		locker.On("TryLock", mock.Anything, constvars.RedisKeyReminderLeader, time.Hour).Return(true, "tok", nil)
		locker.On("Unlock", mock.Anything, constvars.RedisKeyReminderLeader, "tok").Return(nil).Once()
		residents.On("FindResidents", mock.Anything, serviceSession).Return([]models.Resident{
			{ID: "r1", FirstName: "Jane", LastName: "Doe", Active: true},
			{ID: "r2", FirstName: "Gone", Active: false},
			{ID: "r3", FirstName: "Full", Active: true},
			{ID: "r4", FirstName: "Broken", Active: true},
		}, nil)
		sleeps.On("FindSleepsByResident", mock.Anything, serviceSession, "r1").Return([]models.SleepEntry{
			{DateTaken: "2025-04-02", MarkedFor: "1:00AM", MarkAs: "S"},
		}, nil)
		sleeps.On("FindSleepsByResident", mock.Anything, serviceSession, "r3").Return([]models.SleepEntry{
			{DateTaken: "2025-04-02", MarkedFor: "12:00AM", MarkAs: "S"},
			{DateTaken: "2025-04-02", MarkedFor: "1:00AM", MarkAs: "S"},
			{DateTaken: "2025-04-02", MarkedFor: "2:00AM", MarkAs: "S"},
		}, nil)
		sleeps.On("FindSleepsByResident", mock.Anything, serviceSession, "r4").Return(nil, errors.New("timeout"))
		publisher.On("PublishMissingSleepReminder", mock.Anything, mock.MatchedBy(func(reminder *requests.MissingSleepReminder) bool {
			return reminder.ResidentID == "r1" &&
				reminder.ResidentName == "Jane Doe" &&
				reminder.Date == "2025-04-02" &&
				assert.ObjectsAreEqual([]string{"12:00AM", "2:00AM"}, reminder.MissingSlots)
		})).Return(nil).Once()

		published := newTestWorker(locker, residents, sleeps, publisher, now).RunOnce(context.Background())

		assert.Equal(t, 1, published)
		publisher.AssertExpectations(t)
		locker.AssertExpectations(t)
		sleeps.AssertNotCalled(t, "FindSleepsByResident", mock.Anything, mock.Anything, "r2")
	})

	t.Run("Skips the pass without the leader lock", func(t *testing.T) {
		locker := new(mockLocker)
		residents := new(mockResidentClient)
		locker.On("TryLock", mock.Anything, constvars.RedisKeyReminderLeader, time.Hour).Return(false, "", nil)

		published := newTestWorker(locker, residents, new(mockSleepClient), new(mockPublisher), now).RunOnce(context.Background())

		assert.Zero(t, published)
		assert.Empty(t, residents.Calls)
		locker.AssertNotCalled(t, "Unlock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Resident listing failure releases the lock", func(t *testing.T) {
		locker := new(mockLocker)
		residents := new(mockResidentClient)
		locker.On("TryLock", mock.Anything, constvars.RedisKeyReminderLeader, time.Hour).Return(true, "tok", nil)
		locker.On("Unlock", mock.Anything, constvars.RedisKeyReminderLeader, "tok").Return(nil).Once()
		residents.On("FindResidents", mock.Anything, serviceSession).Return(nil, errors.New("down"))

		published := newTestWorker(locker, residents, new(mockSleepClient), new(mockPublisher), now).RunOnce(context.Background())

		assert.Zero(t, published)
		locker.AssertExpectations(t)
	})
}

func TestReminderWorkerStartStop(t *testing.T) {
	t.Run("Valid spec", func(t *testing.T) {
		worker := newTestWorker(new(mockLocker), new(mockResidentClient), new(mockSleepClient), new(mockPublisher), time.Now())
		worker.Start(context.Background())
		worker.Stop()
		worker.Stop()
	})

	t.Run("Invalid spec falls back", func(t *testing.T) {
		worker := NewReminderWorker(zap.NewNop(), ReminderWorkerConfig{CronSpec: "not a spec"}, new(mockLocker), new(mockResidentClient), new(mockSleepClient), new(mockPublisher), nil)
		worker.Start(context.Background())
		worker.Stop()
	})

	t.Run("Stop before Start", func(t *testing.T) {
		worker := newTestWorker(new(mockLocker), new(mockResidentClient), new(mockSleepClient), new(mockPublisher), time.Now())
		worker.Stop()
	})
}
