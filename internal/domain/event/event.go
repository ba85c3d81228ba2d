package event

import (
	"errors"
	"strings"
	"time"
)

type Status string

const (
	StatusDraft Status = "DRAFT"
)

// Event is the stored entity. It has no JSON form of its own; the HTTP
// representation is handlers.EventResource.
type Event struct {
	ID                      int64
	Name                    string
	Description             string
	BeginEnrollmentDateTime time.Time
	CloseEnrollmentDateTime time.Time
	BeginEventDateTime      time.Time
	EndEventDateTime        time.Time
	Location                string
	BasePrice               int
	MaxPrice                int
	LimitOfEnrollment       int
	Free                    bool
	Offline                 bool
	Status                  Status
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

var ErrNotFound = errors.New("event not found")

// Recompute derives Free and Offline from the price and location fields.
// Call it after anything that touches BasePrice, MaxPrice or Location.
func (e *Event) Recompute() {
	e.Free = e.BasePrice == 0 && e.MaxPrice == 0
	e.Offline = strings.TrimSpace(e.Location) != ""
}

// Apply replaces every mutable field with p. ID, Status and CreatedAt are kept.
func (e *Event) Apply(p Params, now time.Time) {
	e.Name = strings.TrimSpace(p.Name)
	e.Description = p.Description
	e.BeginEnrollmentDateTime = p.BeginEnrollmentDateTime
	e.CloseEnrollmentDateTime = p.CloseEnrollmentDateTime
	e.BeginEventDateTime = p.BeginEventDateTime
	e.EndEventDateTime = p.EndEventDateTime
	e.Location = p.Location
	e.BasePrice = p.BasePrice
	e.MaxPrice = p.MaxPrice
	e.LimitOfEnrollment = p.LimitOfEnrollment
	e.UpdatedAt = now

	e.Recompute()
}

// Params carries already validated input for New and Apply.
type Params struct {
	Name                    string
	Description             string
	BeginEnrollmentDateTime time.Time
	CloseEnrollmentDateTime time.Time
	BeginEventDateTime      time.Time
	EndEventDateTime        time.Time
	Location                string
	BasePrice               int
	MaxPrice                int
	LimitOfEnrollment       int
}

// CreateEventRequest is the POST body. Pointer timestamps let "required" tell absent from zero.
type CreateEventRequest struct {
	Name                    string    `json:"name" binding:"required,notblank,max=200"`
	Description             string    `json:"description" binding:"omitempty,max=2000"`
	BeginEnrollmentDateTime *DateTime `json:"beginEnrollmentDateTime" binding:"required"`
	CloseEnrollmentDateTime *DateTime `json:"closeEnrollmentDateTime" binding:"required"`
	BeginEventDateTime      *DateTime `json:"beginEventDateTime" binding:"required"`
	EndEventDateTime        *DateTime `json:"endEventDateTime" binding:"required"`
	Location                string    `json:"location" binding:"omitempty,max=200"`
	BasePrice               int       `json:"basePrice" binding:"min=0"`
	MaxPrice                int       `json:"maxPrice" binding:"min=0"`
	LimitOfEnrollment       int       `json:"limitOfEnrollment" binding:"required,min=1"`
}

// a full replacement payload, same shape as create.
type UpdateEventRequest CreateEventRequest

func (r CreateEventRequest) Params() Params {
	return Params{
		Name:                    r.Name,
		Description:             r.Description,
		BeginEnrollmentDateTime: r.BeginEnrollmentDateTime.Time(),
		CloseEnrollmentDateTime: r.CloseEnrollmentDateTime.Time(),
		BeginEventDateTime:      r.BeginEventDateTime.Time(),
		EndEventDateTime:        r.EndEventDateTime.Time(),
		Location:                r.Location,
		BasePrice:               r.BasePrice,
		MaxPrice:                r.MaxPrice,
		LimitOfEnrollment:       r.LimitOfEnrollment,
	}
}

func (r UpdateEventRequest) Params() Params {
	return CreateEventRequest(r).Params()
}

func (p Params) Schedule() ScheduleInput {
	return ScheduleInput{
		BeginEnrollment: p.BeginEnrollmentDateTime,
		CloseEnrollment: p.CloseEnrollmentDateTime,
		BeginEvent:      p.BeginEventDateTime,
		EndEvent:        p.EndEventDateTime,
		BasePrice:       p.BasePrice,
		MaxPrice:        p.MaxPrice,
	}
}
