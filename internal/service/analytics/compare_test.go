package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aibekz/productivity-backend/internal/entity"
)

func TestComparePeriods(t *testing.T) {
	this := entity.PeriodAggregate{
		FocusMinutes:      400,
		TotalSessions:     10,
		CompletedSessions: 8,
		TaskTotal:         4,
		TaskCompleted:     3,
	}
	last := entity.PeriodAggregate{
		FocusMinutes:      300,
		TotalSessions:     10,
		CompletedSessions: 5,
		TaskTotal:         4,
		TaskCompleted:     2,
	}

	cmp := ComparePeriods(this, last)

	assert.Equal(t, this, cmp.ThisWeek)
	assert.Equal(t, last, cmp.LastWeek)
	assert.Equal(t, 100.0, cmp.Delta.FocusMinutes)
	assert.Equal(t, 33.33, cmp.Delta.FocusMinutesPercent)
	assert.Equal(t, 30.0, cmp.Delta.CompletionRatePoints)
	assert.Equal(t, 25.0, cmp.Delta.TaskCompletionRatePoints)
}

func TestComparePeriods_ZeroDenominators(t *testing.T) {
	this := entity.PeriodAggregate{
		FocusMinutes:      120,
		TotalSessions:     2,
		CompletedSessions: 2,
	}
	last := entity.PeriodAggregate{}

	cmp := ComparePeriods(this, last)

	assert.Equal(t, 120.0, cmp.Delta.FocusMinutes)
	assert.Zero(t, cmp.Delta.FocusMinutesPercent)
	assert.Equal(t, 100.0, cmp.Delta.CompletionRatePoints)
	assert.Zero(t, cmp.Delta.TaskCompletionRatePoints)
}

func TestComparePeriods_Decline(t *testing.T) {
	this := entity.PeriodAggregate{FocusMinutes: 150}
	last := entity.PeriodAggregate{FocusMinutes: 300}

	cmp := ComparePeriods(this, last)

	assert.Equal(t, -150.0, cmp.Delta.FocusMinutes)
	assert.Equal(t, -50.0, cmp.Delta.FocusMinutesPercent)
}
