package residents

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carelog-service/internal/app/models"
	"carelog-service/internal/app/services/remote"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResidentApiClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/patients":
			io.WriteString(w, `{"responseObject":[
				{"_id":"r1","firstName":"Ada","lastName":"Lovelace"},
				{"_id":"r2","firstName":"Alan","lastName":"Turing","active":false},
				{"firstName":"No","lastName":"Id"}
			]}`)
		case "/patients/r1":
			io.WriteString(w, `{"responseObject":{"_id":"r1","firstName":"Ada","lastName":"Lovelace"}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newResidentApiClient(remote.NewRemoteClient(server.URL, 5*time.Second, nil, zap.NewNop()), zap.NewNop())

	residents, err := client.FindResidents(context.Background(), models.AuthSession{})
	require.NoError(t, err)
	require.Len(t, residents, 2)
	assert.True(t, residents[0].Active)
	assert.False(t, residents[1].Active)
	assert.Equal(t, "Alan Turing", residents[1].FullName())

	resident, err := client.FindResidentByID(context.Background(), models.AuthSession{}, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", resident.FullName())

	_, err = client.FindResidentByID(context.Background(), models.AuthSession{}, "missing")
	assert.Error(t, err)
}
