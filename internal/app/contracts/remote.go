package contracts

import (
	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/dto/requests"
	"context"
)

// RemoteClient is the generic JSON wrapper every remote resource client uses.
// result receives the envelope's responseObject.
type RemoteClient interface {
	GetData(ctx context.Context, session models.AuthSession, resource string, query map[string]string, result interface{}) error
	CreateData(ctx context.Context, session models.AuthSession, resource string, body interface{}, result interface{}) error
	UpdateData(ctx context.Context, session models.AuthSession, resource string, body interface{}, result interface{}) error
}

type SleepApiClient interface {
	FindSleepsByResident(ctx context.Context, session models.AuthSession, residentID string) ([]models.SleepEntry, error)
	CreateSleep(ctx context.Context, session models.AuthSession, request *requests.CreateSleepEntry) (*models.SleepEntry, error)
}

type ResidentApiClient interface {
	FindResidents(ctx context.Context, session models.AuthSession) ([]models.Resident, error)
	FindResidentByID(ctx context.Context, session models.AuthSession, residentID string) (*models.Resident, error)
}
