package event

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidSchedule = errors.New("invalid event schedule")

// ScheduleInput is the subset of an event the cross-field rule looks at.
type ScheduleInput struct {
	BeginEnrollment time.Time
	CloseEnrollment time.Time
	BeginEvent      time.Time
	EndEvent        time.Time
	BasePrice       int
	MaxPrice        int
}

type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+" "+v.Message)
	}
	return ErrInvalidSchedule.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidSchedule
}

// ValidateSchedule checks the enrollment window, the event window and the
// price range. Every failing clause is reported, not just the first one.
func ValidateSchedule(in ScheduleInput) error {
	var out []Violation

	if in.CloseEnrollment.Before(in.BeginEnrollment) {
		out = append(out, Violation{
			Field:   "closeEnrollmentDateTime",
			Rule:    "gtefield",
			Param:   "beginEnrollmentDateTime",
			Message: "must not be before beginEnrollmentDateTime",
		})
	}

	if in.EndEvent.Before(in.BeginEvent) {
		out = append(out, Violation{
			Field:   "endEventDateTime",
			Rule:    "gtefield",
			Param:   "beginEventDateTime",
			Message: "must not be before beginEventDateTime",
		})
	}

	// maxPrice == 0 means "no upper bound"
	if in.MaxPrice > 0 && in.BasePrice > in.MaxPrice {
		out = append(out, Violation{
			Field:   "basePrice",
			Rule:    "ltefield",
			Param:   "maxPrice",
			Message: "must not exceed maxPrice",
		})
	}

	if len(out) > 0 {
		return &ValidationError{Violations: out}
	}

	return nil
}
