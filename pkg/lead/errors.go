package lead

import "fmt"

// Reason names why a lead form was rejected
type Reason string

const (
	ReasonMissingName      Reason = "MISSING_NAME"
	ReasonEmailFieldAbsent Reason = "EMAIL_FIELD_ABSENT"
	ReasonMissingEmail     Reason = "MISSING_EMAIL"
	ReasonInvalidEmail     Reason = "INVALID_EMAIL"
	ReasonInvalidPhone     Reason = "INVALID_PHONE"
	ReasonMissingPhone     Reason = "MISSING_PHONE"
	ReasonMissingCity      Reason = "MISSING_CITY"
)

// ValidationError reports the first failed check and the field that should receive focus
type ValidationError struct {
	Reason Reason
	Field  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("lead form rejected: %s (%s)", e.Reason, e.Field)
}

// Structural reports whether the form itself is misconfigured rather than filled in wrong
func (e *ValidationError) Structural() bool {
	return e.Reason == ReasonEmailFieldAbsent
}
