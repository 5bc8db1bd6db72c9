package checks

// IsInhuman is true for a statistic check whose modified target exceeds 99
func IsInhuman(target, modifier int, kind Kind) bool {
	return kind == KindStat && target+modifier > 99
}

// IsCritical is true for 1, 100 and any repeated-digit roll. An inhuman
// check also crits when the roll would beat the raw statistic.
func IsCritical(total, target, modifier int, inhuman bool) bool {
	if total == 1 || total == 100 || total%11 == 0 {
		return true
	}
	return inhuman && total <= (target+modifier)/5
}

// IsSuccess is true when total is at or under the modified target. 100
// always fails.
func IsSuccess(total, target, modifier int) bool {
	if total == 100 {
		return false
	}
	return total <= target+modifier
}

// Outcome is the classified result of a percentile check
type Outcome int

// Outcomes. OutcomeUnknown means the check has not been evaluated.
const (
	OutcomeUnknown Outcome = iota
	OutcomeSuccess
	OutcomeCriticalSuccess
	OutcomeFailure
	OutcomeCriticalFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeCriticalSuccess:
		return "critical-success"
	case OutcomeFailure:
		return "failure"
	case OutcomeCriticalFailure:
		return "critical-failure"
	default:
		return "unknown"
	}
}

// Succeeded covers both success outcomes
func (o Outcome) Succeeded() bool {
	return o == OutcomeSuccess || o == OutcomeCriticalSuccess
}

// Critical covers both critical outcomes
func (o Outcome) Critical() bool {
	return o == OutcomeCriticalSuccess || o == OutcomeCriticalFailure
}

// Classify combines IsSuccess and IsCritical
func Classify(total, target, modifier int, kind Kind) Outcome {
	critical := IsCritical(total, target, modifier, IsInhuman(target, modifier, kind))
	switch {
	case IsSuccess(total, target, modifier) && critical:
		return OutcomeCriticalSuccess
	case IsSuccess(total, target, modifier):
		return OutcomeSuccess
	case critical:
		return OutcomeCriticalFailure
	default:
		return OutcomeFailure
	}
}
