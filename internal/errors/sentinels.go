package errors

// Sentinels shared by the check pipeline. Compare with errors.Is; any
// error of the same code matches.
var (
	// ErrAlreadyEvaluated is returned when a roll is evaluated twice.
	ErrAlreadyEvaluated = FailedPrecondition("roll has already been evaluated")

	// ErrNotEvaluated is returned when a result is read before evaluation.
	ErrNotEvaluated = FailedPrecondition("roll has not been evaluated")

	// ErrDialogCanceled is returned by a prompter when the user dismisses it.
	ErrDialogCanceled = Canceled("modifier dialog was dismissed")
)
