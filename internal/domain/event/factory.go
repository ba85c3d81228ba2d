package event

import (
	"strings"
	"time"
)

// New builds a DRAFT event from validated params. The store assigns the ID.
func New(p Params, now time.Time) Event {
	e := Event{
		Name:                    strings.TrimSpace(p.Name),
		Description:             p.Description,
		BeginEnrollmentDateTime: p.BeginEnrollmentDateTime,
		CloseEnrollmentDateTime: p.CloseEnrollmentDateTime,
		BeginEventDateTime:      p.BeginEventDateTime,
		EndEventDateTime:        p.EndEventDateTime,
		Location:                p.Location,
		BasePrice:               p.BasePrice,
		MaxPrice:                p.MaxPrice,
		LimitOfEnrollment:       p.LimitOfEnrollment,
		Status:                  StatusDraft,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	e.Recompute()

	return e
}
