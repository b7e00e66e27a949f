package model

// Verdict classifies the aggregate validation error of a run.
type Verdict int

const (
	VerdictExcellent Verdict = iota
	VerdictGood
	VerdictAcceptable
	VerdictReview
)

func (v Verdict) String() string {
	switch v {
	case VerdictExcellent:
		return "EXCELLENT"
	case VerdictGood:
		return "GOOD"
	case VerdictAcceptable:
		return "ACCEPTABLE"
	case VerdictReview:
		return "REVIEW"
	default:
		return "UNKNOWN"
	}
}
