package sleeps

import (
	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/dto/requests"
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

type mockSleepClient struct {
	mock.Mock
}

func (m *mockSleepClient) FindSleepsByResident(ctx context.Context, session models.AuthSession, residentID string) ([]models.SleepEntry, error) {
	args := m.Called(ctx, session, residentID)
	entries, _ := args.Get(0).([]models.SleepEntry)
	return entries, args.Error(1)
}

func (m *mockSleepClient) CreateSleep(ctx context.Context, session models.AuthSession, request *requests.CreateSleepEntry) (*models.SleepEntry, error) {
	args := m.Called(ctx, session, request)
	entry, _ := args.Get(0).(*models.SleepEntry)
	return entry, args.Error(1)
}

type mockResidentClient struct {
	mock.Mock
}

func (m *mockResidentClient) FindResidents(ctx context.Context, session models.AuthSession) ([]models.Resident, error) {
	args := m.Called(ctx, session)
	residents, _ := args.Get(0).([]models.Resident)
	return residents, args.Error(1)
}

func (m *mockResidentClient) FindResidentByID(ctx context.Context, session models.AuthSession, residentID string) (*models.Resident, error) {
	args := m.Called(ctx, session, residentID)
	resident, _ := args.Get(0).(*models.Resident)
	return resident, args.Error(1)
}

type mockEntryCache struct {
	mock.Mock
}

func (m *mockEntryCache) FindEntries(ctx context.Context, session models.AuthSession, residentID string) ([]models.SleepEntry, error) {
	args := m.Called(ctx, session, residentID)
	entries, _ := args.Get(0).([]models.SleepEntry)
	return entries, args.Error(1)
}

func (m *mockEntryCache) Refresh(ctx context.Context, session models.AuthSession, residentID string) ([]models.SleepEntry, error) {
	args := m.Called(ctx, session, residentID)
	entries, _ := args.Get(0).([]models.SleepEntry)
	return entries, args.Error(1)
}

type mockJournal struct {
	mock.Mock
}

func (m *mockJournal) Record(ctx context.Context, record *models.SubmissionRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *mockJournal) FindByResident(ctx context.Context, residentID string, limit int64) ([]models.SubmissionRecord, error) {
	args := m.Called(ctx, residentID, limit)
	records, _ := args.Get(0).([]models.SubmissionRecord)
	return records, args.Error(1)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) UploadBytes(ctx context.Context, content []byte, bucketName, objectName, contentType string) (string, error) {
	args := m.Called(ctx, content, bucketName, objectName, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiryTime)
	return args.String(0), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishMissingSleepReminder(ctx context.Context, reminder *requests.MissingSleepReminder) error {
	return m.Called(ctx, reminder).Error(0)
}

type mockLocker struct {
	mock.Mock
}

func (m *mockLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *mockLocker) Unlock(ctx context.Context, key, lockValue string) error {
	return m.Called(ctx, key, lockValue).Error(0)
}

func (m *mockLocker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return m.Called(ctx, key, lockValue, expiration).Error(0)
}

// memoryNotices keeps the latest notice per user.
type memoryNotices struct {
	mu      sync.Mutex
	notices map[string]models.Notice
}

func newMemoryNotices() *memoryNotices {
	return &memoryNotices{notices: map[string]models.Notice{}}
}

func (n *memoryNotices) Push(ctx context.Context, userID string, kind models.NoticeKind, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices[userID] = models.Notice{Kind: kind, Message: message}
	return nil
}

func (n *memoryNotices) Current(ctx context.Context, userID string) (*models.Notice, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	notice, ok := n.notices[userID]
	if !ok {
		return nil, nil
	}
	return &notice, nil
}

// memorySelections keeps selection state per user.
type memorySelections struct {
	mu     sync.Mutex
	states map[string]models.SelectionState
}

func newMemorySelections() *memorySelections {
	return &memorySelections{states: map[string]models.SelectionState{}}
}

func (s *memorySelections) Find(ctx context.Context, userID string) (*models.SelectionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[userID]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (s *memorySelections) Save(ctx context.Context, userID string, state *models.SelectionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = *state
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func localTime(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.Local)
}

var (
	careGiver = models.AuthSession{Token: "cg-token", Role: "caregiver", UserID: "cg-1"}
	manager   = models.AuthSession{Token: "mgr-token", Role: "manager", UserID: "mgr-1"}
)
