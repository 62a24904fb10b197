package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aibekz/productivity-backend/internal/entity"
)

func TestDetectBurnout_NoSessionsIsHealthy(t *testing.T) {
	assessment := DetectBurnout(nil, DefaultBurnoutOptions())

	assert.False(t, assessment.AtRisk)
	assert.Equal(t, 1.0, assessment.CompletionRate)
	assert.Zero(t, assessment.LongSessionsCount)
	assert.Empty(t, assessment.Message)
}

func TestDetectBurnout_LongSessionsAndLowCompletion(t *testing.T) {
	day := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

	sessions := []entity.WorkSession{
		session(entity.SessionModeFocus, day, 90, false),
		session(entity.SessionModeFocus, day.Add(2*time.Hour), 75, false),
		session(entity.SessionModeFocus, day.Add(5*time.Hour), 30, false),
		session(entity.SessionModeFocus, day.Add(7*time.Hour), 20, true),
	}

	assessment := DetectBurnout(sessions, DefaultBurnoutOptions())

	assert.True(t, assessment.AtRisk)
	assert.Equal(t, 2, assessment.LongSessionsCount)
	assert.Equal(t, 0.25, assessment.CompletionRate)
	assert.NotEmpty(t, assessment.Message)
}

func TestDetectBurnout_RequiresBothSignals(t *testing.T) {
	day := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

	t.Run("long sessions but healthy completion", func(t *testing.T) {
		sessions := []entity.WorkSession{
			session(entity.SessionModeFocus, day, 90, true),
			session(entity.SessionModeFocus, day.Add(2*time.Hour), 75, true),
			session(entity.SessionModeFocus, day.Add(5*time.Hour), 60, false),
		}
		assessment := DetectBurnout(sessions, DefaultBurnoutOptions())

		assert.False(t, assessment.AtRisk)
		assert.Equal(t, 3, assessment.LongSessionsCount)
	})

	t.Run("low completion but only one long session", func(t *testing.T) {
		sessions := []entity.WorkSession{
			session(entity.SessionModeFocus, day, 90, false),
			session(entity.SessionModeFocus, day.Add(2*time.Hour), 20, false),
			session(entity.SessionModeFocus, day.Add(5*time.Hour), 15, true),
		}
		assessment := DetectBurnout(sessions, DefaultBurnoutOptions())

		assert.False(t, assessment.AtRisk)
		assert.Equal(t, 1, assessment.LongSessionsCount)
	})
}

func TestDetectBurnout_IgnoresBreakSessions(t *testing.T) {
	day := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

	sessions := []entity.WorkSession{
		session(entity.SessionModeBreak, day, 120, false),
		session(entity.SessionModeBreak, day.Add(3*time.Hour), 90, false),
	}

	assessment := DetectBurnout(sessions, DefaultBurnoutOptions())

	assert.False(t, assessment.AtRisk)
	assert.Equal(t, 1.0, assessment.CompletionRate)
	assert.Zero(t, assessment.LongSessionsCount)
}

func TestDetectBurnout_CustomOptions(t *testing.T) {
	day := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

	sessions := []entity.WorkSession{
		session(entity.SessionModeFocus, day, 45, false),
		session(entity.SessionModeFocus, day.Add(2*time.Hour), 45, false),
		session(entity.SessionModeFocus, day.Add(5*time.Hour), 10, true),
	}

	opts := BurnoutOptions{LongSessionMinutes: 40, LowCompletionThreshold: 0.5}
	assessment := DetectBurnout(sessions, opts)

	assert.True(t, assessment.AtRisk)
	assert.Equal(t, 2, assessment.LongSessionsCount)
}
