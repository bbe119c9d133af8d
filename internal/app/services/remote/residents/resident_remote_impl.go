package residents

import (
	"context"
	"sync"

	"carelog-service/internal/app/contracts"
	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/constvars"
	"carelog-service/internal/pkg/dto/responses"

	"go.uber.org/zap"
)

var (
	residentApiClientInstance contracts.ResidentApiClient
	onceResidentApiClient     sync.Once
)

type residentApiClient struct {
	Client contracts.RemoteClient
	Log    *zap.Logger
}

func NewResidentApiClient(client contracts.RemoteClient, logger *zap.Logger) contracts.ResidentApiClient {
	onceResidentApiClient.Do(func() {
		residentApiClientInstance = newResidentApiClient(client, logger)
	})
	return residentApiClientInstance
}

func newResidentApiClient(client contracts.RemoteClient, logger *zap.Logger) *residentApiClient {
	return &residentApiClient{Client: client, Log: logger}
}

func (c *residentApiClient) FindResidents(ctx context.Context, session models.AuthSession) ([]models.Resident, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("residentApiClient.FindResidents called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var remoteResidents []responses.RemoteResident
	err := c.Client.GetData(ctx, session, constvars.ResourceResidents, nil, &remoteResidents)
	if err != nil {
		c.Log.Error("residentApiClient.FindResidents error calling Client.GetData",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	residents := make([]models.Resident, 0, len(remoteResidents))
	for _, remoteResident := range remoteResidents {
		if remoteResident.ID == "" {
			continue
		}
		residents = append(residents, toResident(remoteResident))
	}

	c.Log.Info("residentApiClient.FindResidents succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("resident_count", len(residents)),
	)
	return residents, nil
}

func (c *residentApiClient) FindResidentByID(ctx context.Context, session models.AuthSession, residentID string) (*models.Resident, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("residentApiClient.FindResidentByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResidentIDKey, residentID),
	)

	var remoteResident responses.RemoteResident
	err := c.Client.GetData(ctx, session, constvars.ResourceResidents+"/"+residentID, nil, &remoteResident)
	if err != nil {
		c.Log.Error("residentApiClient.FindResidentByID error calling Client.GetData",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if remoteResident.ID == "" {
		remoteResident.ID = residentID
	}

	resident := toResident(remoteResident)
	c.Log.Info("residentApiClient.FindResidentByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return &resident, nil
}

func toResident(remoteResident responses.RemoteResident) models.Resident {
	active := true
	if remoteResident.Active != nil {
		active = *remoteResident.Active
	}
	return models.Resident{
		ID:        remoteResident.ID,
		FirstName: remoteResident.FirstName,
		LastName:  remoteResident.LastName,
		Active:    active,
	}
}
