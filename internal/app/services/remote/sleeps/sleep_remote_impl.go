package sleeps

import (
	"context"
	"sync"

	"carelog-service/internal/app/contracts"
	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/constvars"
	"carelog-service/internal/pkg/dto/requests"
	"carelog-service/internal/pkg/dto/responses"

	"go.uber.org/zap"
)

var (
	sleepApiClientInstance contracts.SleepApiClient
	onceSleepApiClient     sync.Once
)

type sleepApiClient struct {
	Client contracts.RemoteClient
	Log    *zap.Logger
}

func NewSleepApiClient(client contracts.RemoteClient, logger *zap.Logger) contracts.SleepApiClient {
	onceSleepApiClient.Do(func() {
		sleepApiClientInstance = newSleepApiClient(client, logger)
	})
	return sleepApiClientInstance
}

func newSleepApiClient(client contracts.RemoteClient, logger *zap.Logger) *sleepApiClient {
	return &sleepApiClient{Client: client, Log: logger}
}

func (c *sleepApiClient) FindSleepsByResident(ctx context.Context, session models.AuthSession, residentID string) ([]models.SleepEntry, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("sleepApiClient.FindSleepsByResident called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResidentIDKey, residentID),
	)

	var remoteEntries []responses.RemoteSleepEntry
	err := c.Client.GetData(ctx, session, constvars.ResourceSleeps, map[string]string{"resident": residentID}, &remoteEntries)
	if err != nil {
		c.Log.Error("sleepApiClient.FindSleepsByResident error calling Client.GetData",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	entries := make([]models.SleepEntry, 0, len(remoteEntries))
	for _, remoteEntry := range remoteEntries {
		entry, ok := narrowSleepEntry(remoteEntry, residentID)
		if !ok {
			c.Log.Warn("sleepApiClient.FindSleepsByResident dropping malformed entry",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("entry_id", remoteEntry.ID),
				zap.String(constvars.LoggingSlotKey, remoteEntry.MarkedFor),
				zap.String(constvars.LoggingStatusKey, remoteEntry.MarkAs),
			)
			continue
		}
		entries = append(entries, entry)
	}

	c.Log.Info("sleepApiClient.FindSleepsByResident succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("entry_count", len(entries)),
	)
	return entries, nil
}

func (c *sleepApiClient) CreateSleep(ctx context.Context, session models.AuthSession, request *requests.CreateSleepEntry) (*models.SleepEntry, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("sleepApiClient.CreateSleep called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResidentIDKey, request.Resident),
		zap.String(constvars.LoggingDateKey, request.DateTaken),
		zap.String(constvars.LoggingSlotKey, request.MarkedFor),
	)

	var created responses.RemoteSleepEntry
	err := c.Client.CreateData(ctx, session, constvars.ResourceSleeps, request, &created)
	if err != nil {
		c.Log.Error("sleepApiClient.CreateSleep error calling Client.CreateData",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	entry := &models.SleepEntry{
		ID:               created.ID,
		ResidentID:       request.Resident,
		DateTaken:        request.DateTaken,
		MarkedFor:        request.MarkedFor,
		MarkAs:           request.MarkAs,
		ReasonFilledLate: request.ReasonFilledLate,
	}

	c.Log.Info("sleepApiClient.CreateSleep succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("entry_id", entry.ID),
	)
	return entry, nil
}

// narrowSleepEntry keeps only entries with a known slot label and status code.
func narrowSleepEntry(remoteEntry responses.RemoteSleepEntry, residentID string) (models.SleepEntry, bool) {
	if !models.IsValidTimeSlot(remoteEntry.MarkedFor) || !models.IsValidSleepStatus(remoteEntry.MarkAs) {
		return models.SleepEntry{}, false
	}
	date := models.NormalizeDate(remoteEntry.DateTaken)
	if len(date) != len(constvars.DateLayout) {
		return models.SleepEntry{}, false
	}

	resident := remoteEntry.Resident
	if resident == "" {
		resident = residentID
	}
	return models.SleepEntry{
		ID:               remoteEntry.ID,
		ResidentID:       resident,
		DateTaken:        date,
		MarkedFor:        remoteEntry.MarkedFor,
		MarkAs:           remoteEntry.MarkAs,
		ReasonFilledLate: remoteEntry.ReasonFilledLate,
	}, true
}
