package usecases

// Setup step numbering. Progress tracks the highest completed step, 0..StepCount.
const (
	FirstStep = 1
	StepCount = 4
)

// CanEnter reports whether a merchant with the given progress may open the
// screen for step. Step 1 is always open; every other step requires the
// previous one to be complete.
func CanEnter(step, progress int) bool {
	return progress >= step-1
}

// RedirectStep is the step a blocked merchant is silently sent back to: the
// last step they completed, or step 1 when nothing is complete yet.
func RedirectStep(progress int) int {
	if progress < FirstStep {
		return FirstStep
	}
	return progress
}

// Advance returns the new progress after completedStep is accepted.
// Re-submitting an already-completed step never regresses progress.
func Advance(progress, completedStep int) int {
	if completedStep > progress {
		return completedStep
	}
	return progress
}

// ShowSaved reports whether a submission should be acknowledged with the
// "settings saved" flash. The first submission that brings progress to 4
// stays silent; only merchants who were already fully set up see the ack.
func ShowSaved(progressBefore int) bool {
	return progressBefore >= StepCount
}
