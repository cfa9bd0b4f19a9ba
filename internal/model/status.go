package model

// Status is the sentiment label derived from an index value.
type Status string

const (
	StatusExtremeFear  Status = "Extreme Fear"
	StatusFear         Status = "Fear"
	StatusNeutral      Status = "Neutral"
	StatusGreed        Status = "Greed"
	StatusExtremeGreed Status = "Extreme Greed"
)

// Statuses lists every label from most fearful to most greedy.
var Statuses = []Status{
	StatusExtremeFear,
	StatusFear,
	StatusNeutral,
	StatusGreed,
	StatusExtremeGreed,
}

// Rank returns the label's position in Statuses, or -1 for an unknown label.
func (s Status) Rank() int {
	for i, st := range Statuses {
		if st == s {
			return i
		}
	}
	return -1
}

func (s Status) String() string { return string(s) }
