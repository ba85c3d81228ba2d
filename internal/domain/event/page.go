package event

import (
	"errors"
	"math"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var ErrInvalidSort = errors.New("invalid sort")

type SortField string

const (
	SortByID              SortField = "id"
	SortByName            SortField = "name"
	SortByBeginEvent      SortField = "beginEventDateTime"
	SortByBeginEnrollment SortField = "beginEnrollmentDateTime"
	SortByBasePrice       SortField = "basePrice"
)

func (f SortField) IsValid() bool {
	switch f {
	case SortByID, SortByName, SortByBeginEvent, SortByBeginEnrollment, SortByBasePrice:
		return true
	}
	return false
}

type Sort struct {
	Field SortField
	Desc  bool
}

// ParseSort reads "field" or "field,asc|desc". Empty input sorts by id ascending.
func ParseSort(raw string) (Sort, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Sort{Field: SortByID}, nil
	}

	field, dir, _ := strings.Cut(raw, ",")
	s := Sort{Field: SortField(strings.TrimSpace(field))}

	if !s.Field.IsValid() {
		return Sort{}, ErrInvalidSort
	}

	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "asc":
	case "desc":
		s.Desc = true
	default:
		return Sort{}, ErrInvalidSort
	}

	return s, nil
}

func (s Sort) String() string {
	if s.Desc {
		return string(s.Field) + ",desc"
	}
	return string(s.Field) + ",asc"
}

// PageRequest is zero-based: Page 1 with Size 10 covers items 10..19.
type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

// MaxPage is the largest page index whose offset still fits in an int.
func MaxPage(size int) int {
	if size <= 0 {
		return math.MaxInt
	}
	return math.MaxInt/size - 1
}

// Offset saturates at math.MaxInt instead of wrapping.
func (p PageRequest) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

type Page struct {
	Items   []Event
	Total   int
	Request PageRequest
}

func (p Page) TotalPages() int {
	if p.Request.Size <= 0 {
		return 0
	}
	return (p.Total + p.Request.Size - 1) / p.Request.Size
}

func (p Page) HasNext() bool {
	return p.Request.Page >= 0 && p.Request.Page < p.TotalPages()-1
}

func (p Page) HasPrev() bool {
	return p.Request.Page > 0
}
