package resumes

// Outcome is the three-tier result of an upload batch. Storage, webhook and
// record processing fail independently, so a batch can land anywhere between
// full success and failure.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomePartial Outcome = "partial"
	OutcomeFailure Outcome = "failure"
)

// ClassifyOutcome folds the processing count and webhook result into one
// tier. Failure means storage succeeded but nothing else did.
func ClassifyOutcome(processed, total int, webhookOK bool) Outcome {
	switch {
	case processed == total && webhookOK:
		return OutcomeSuccess
	case processed == 0 && !webhookOK:
		return OutcomeFailure
	default:
		return OutcomePartial
	}
}

// Message returns the single user-facing summary for the outcome.
func (o Outcome) Message() string {
	switch o {
	case OutcomeSuccess:
		return "All resumes uploaded and processed successfully."
	case OutcomePartial:
		return "Some resumes were uploaded but not all steps completed. Please review and retry."
	default:
		return "Resume files were stored but processing failed. Please retry."
	}
}
