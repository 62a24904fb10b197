package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidenceFor(t *testing.T) {
	tests := []struct {
		signal   string
		strength float64
		want     string
	}{
		{signalTrend, 25, "high"},
		{signalTrend, 20, "high"},
		{signalTrend, 12, "medium"},
		{signalTrend, 5, "low"},
		{signalPeakHours, 0.6, "high"},
		{signalPeakHours, 0.35, "medium"},
		{signalPeakHours, 0.1, "low"},
		{signalLowDays, 3, "high"},
		{signalLowDays, 2, "medium"},
		{signalLowDays, 1, "low"},
		{signalCompletion, 0.4, "high"},
		{signalCompletion, 0.2, "medium"},
		{signalSessionLength, 45, "high"},
		{signalGoalGap, 0.3, "medium"},
		{signalNoBreaks, 6, "high"},
		{signalNoBreaks, 1, "low"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, confidenceFor(tt.signal, tt.strength),
			"signal %s strength %v", tt.signal, tt.strength)
	}
}

func TestConfidenceFor_UnknownSignal(t *testing.T) {
	assert.Equal(t, "low", confidenceFor("unheard_of", 1000))
}
