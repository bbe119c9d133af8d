package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"carelog-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct_SleepTags(t *testing.T) {
	t.Run("Valid Entry", func(t *testing.T) {
		err := ValidateStruct(&requests.SubmitSleepEntry{
			ResidentID: "r1",
			Status:     "N/A",
			Date:       "2025-04-02",
			Slot:       "12:00AM",
		})
		assert.NoError(t, err)
	})

	t.Run("Invalid Status", func(t *testing.T) {
		err := ValidateStruct(&requests.SubmitSleepEntry{
			ResidentID: "r1",
			Status:     "X",
			Date:       "2025-04-02",
			Slot:       "1:00AM",
		})
		assert.Error(t, err)
	})

	t.Run("Non Canonical Slot", func(t *testing.T) {
		for _, slot := range []string{"01:00AM", "1:30AM", "13:00PM", "1:00 AM", ""} {
			err := ValidateStruct(&requests.SubmitSleepEntry{
				ResidentID: "r1",
				Status:     "A",
				Date:       "2025-04-02",
				Slot:       slot,
			})
			assert.Error(t, err, slot)
		}
	})

	t.Run("Invalid Date", func(t *testing.T) {
		for _, date := range []string{"2025-4-2", "2025-02-30", "02/04/2025"} {
			err := ValidateStruct(&requests.SubmitSleepEntry{
				ResidentID: "r1",
				Status:     "S",
				Date:       date,
				Slot:       "11:00PM",
			})
			assert.Error(t, err, date)
		}
	})
}

func TestParseJWT(t *testing.T) {
	secret := "test-secret"

	t.Run("Valid Token", func(t *testing.T) {
		token, err := GenerateSessionJWT("u1", "caregiver", secret, time.Hour)
		require.NoError(t, err)

		claims, err := ParseJWT(token, secret)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, "caregiver", claims.Role)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		token, err := GenerateSessionJWT("u1", "caregiver", secret, time.Hour)
		require.NoError(t, err)

		_, err = ParseJWT(token, "other")
		assert.Error(t, err)
	})

	t.Run("Expired Token", func(t *testing.T) {
		token, err := GenerateSessionJWT("u1", "caregiver", secret, -time.Hour)
		require.NoError(t, err)

		_, err = ParseJWT(token, secret)
		assert.Error(t, err)
	})

	t.Run("Missing Role Claim", func(t *testing.T) {
		token, err := GenerateSessionJWT("u1", "", secret, time.Hour)
		require.NoError(t, err)

		_, err = ParseJWT(token, secret)
		assert.Error(t, err)
	})
}

func TestCheckAPIKeyHash(t *testing.T) {
	hash, err := HashAPIKey("service-key")
	require.NoError(t, err)

	assert.True(t, CheckAPIKeyHash("service-key", hash))
	assert.False(t, CheckAPIKeyHash("other-key", hash))
	assert.False(t, CheckAPIKeyHash("service-key", ""))
}

func TestParseReportPeriod(t *testing.T) {
	now := time.Date(2025, time.April, 2, 0, 30, 0, 0, time.UTC)

	r := httptest.NewRequest("GET", "/report", nil)
	month, year, err := ParseReportPeriod(r, now)
	require.NoError(t, err)
	assert.Equal(t, 4, month)
	assert.Equal(t, 2025, year)

	r = httptest.NewRequest("GET", "/report?month=2&year=2024", nil)
	month, year, err = ParseReportPeriod(r, now)
	require.NoError(t, err)
	assert.Equal(t, 2, month)
	assert.Equal(t, 2024, year)

	r = httptest.NewRequest("GET", "/report?month=feb", nil)
	_, _, err = ParseReportPeriod(r, now)
	assert.Error(t, err)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("CARELOG_TEST_INT", "42")
	t.Setenv("CARELOG_TEST_BAD_INT", "x")
	t.Setenv("CARELOG_TEST_BOOL", "true")
	t.Setenv("CARELOG_TEST_BAD_BOOL", "maybe")
	t.Setenv("CARELOG_TEST_EMPTY", "")

	assert.Equal(t, 42, GetEnvInt("CARELOG_TEST_INT", 1))
	assert.Equal(t, 1, GetEnvInt("CARELOG_TEST_BAD_INT", 1))
	assert.Equal(t, "fallback", GetEnvString("CARELOG_TEST_UNSET", "fallback"))
	assert.Equal(t, "", GetEnvString("CARELOG_TEST_EMPTY", "fallback"))
	assert.True(t, GetEnvBool("CARELOG_TEST_BOOL", false))
	assert.True(t, GetEnvBool("CARELOG_TEST_BAD_BOOL", true))
}
