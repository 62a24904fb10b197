package utils

import (
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRoundToTwoDecimals(t *testing.T) {
	assert.Equal(t, 33.33, RoundToTwoDecimals(100.0/3))
	assert.Equal(t, 0.0, RoundToTwoDecimals(0))
	assert.Equal(t, -50.0, RoundToTwoDecimals(-50))
	assert.Equal(t, 0.29, RoundToTwoDecimals(0.2857))
}

func TestFormatHourTimestamp(t *testing.T) {
	assert.Equal(t, "12:00 AM", FormatHourTimestamp(0))
	assert.Equal(t, "9:00 AM", FormatHourTimestamp(9))
	assert.Equal(t, "12:00 PM", FormatHourTimestamp(12))
	assert.Equal(t, "2:00 PM", FormatHourTimestamp(14))
	assert.Equal(t, "11:00 PM", FormatHourTimestamp(23))
}

func TestDayStartUTC(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*60*60)
	local := time.Date(2025, 7, 1, 23, 30, 0, 0, loc) // 2025-07-02 07:30 UTC

	assert.Equal(t, time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC), DayStartUTC(local))
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, DaysBetween(start, start))
	assert.Equal(t, 3, DaysBetween(start, start.AddDate(0, 0, 2)))
	assert.Equal(t, 0, DaysBetween(start, start.AddDate(0, 0, -1)))
}

func TestGenerateAndValidateToken(t *testing.T) {
	id := uuid.Must(uuid.NewV4())

	token, err := GenerateToken(id, "dana")
	assert.NoError(t, err)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, id.String(), claims["user_id"])
	assert.Equal(t, "dana", claims["username"])
}
