package insights

// Signal names feeding the confidence table.
const (
	signalTrend         = "trend"
	signalPeakHours     = "peak_hours"
	signalLowDays       = "low_days"
	signalCompletion    = "completion_rate"
	signalSessionLength = "session_length"
	signalGoalGap       = "goal_gap"
	signalNoBreaks      = "no_breaks"
)

// confidenceRule maps a signal's strength onto a confidence tag. Strengths at
// or above High read "high", at or above Medium read "medium", anything else
// "low". Keeping the thresholds in one table keeps the decision logic
// auditable apart from the string generation.
type confidenceRule struct {
	Signal string
	High   float64
	Medium float64
}

var confidenceRules = []confidenceRule{
	{Signal: signalTrend, High: 20, Medium: 10},           // |change %|
	{Signal: signalPeakHours, High: 0.5, Medium: 0.3},     // top-hour share of weekly minutes
	{Signal: signalLowDays, High: 3, Medium: 2},           // qualifying day count
	{Signal: signalCompletion, High: 0.3, Medium: 0.15},   // shortfall below 1.0
	{Signal: signalSessionLength, High: 30, Medium: 15},   // minutes beyond the healthy band
	{Signal: signalGoalGap, High: 0.5, Medium: 0.25},      // fraction of daily goal missing
	{Signal: signalNoBreaks, High: 5, Medium: 3},          // focus sessions logged without any break
}

func confidenceFor(signal string, strength float64) string {
	for _, rule := range confidenceRules {
		if rule.Signal != signal {
			continue
		}
		switch {
		case strength >= rule.High:
			return "high"
		case strength >= rule.Medium:
			return "medium"
		default:
			return "low"
		}
	}
	return "low"
}
