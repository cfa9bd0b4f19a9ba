package classify

import "FearGreed/internal/model"

// Thresholds maps the lower bound of each half-open interval to its label,
// checked from the greediest band down.
var Thresholds = []struct {
	MinValue float64
	Status   model.Status
}{
	{75, model.StatusExtremeGreed},
	{55, model.StatusGreed},
	{45, model.StatusNeutral},
	{25, model.StatusFear},
}

// DefaultStatus applies to values below every threshold, negatives included.
const DefaultStatus = model.StatusExtremeFear

// Classify maps an index value to its sentiment label.
// Values outside [0,100] are not rejected; they fall into the outermost bands.
func Classify(value float64) model.Status {
	for _, t := range Thresholds {
		if value >= t.MinValue {
			return t.Status
		}
	}
	return DefaultStatus
}
