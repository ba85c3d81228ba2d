package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/geocoder89/eventrest/internal/domain/event"
)

type EventsRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]event.Event
}

func NewEventsRepo() *EventsRepo {
	return &EventsRepo{
		items: make(map[int64]event.Event),
	}
}

func (r *EventsRepo) Create(ctx context.Context, e *event.Event) error {
	r.mu.Lock()
	r.nextID++
	e.ID = r.nextID
	e.Recompute()
	r.items[e.ID] = *e
	r.mu.Unlock()

	return nil
}

func (r *EventsRepo) GetByID(ctx context.Context, id int64) (event.Event, error) {
	r.mu.RLock()
	e, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return event.Event{}, event.ErrNotFound
	}

	e.Recompute()
	return e, nil
}

func (r *EventsRepo) List(ctx context.Context, req event.PageRequest) (event.Page, error) {
	r.mu.RLock()
	all := make([]event.Event, 0, len(r.items))
	for _, e := range r.items {
		all = append(all, e)
	}
	r.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		return less(all[i], all[j], req.Sort)
	})

	total := len(all)
	start := min(req.Offset(), total)
	end := min(start+req.Size, total)

	items := make([]event.Event, 0, end-start)
	for _, e := range all[start:end] {
		e.Recompute()
		items = append(items, e)
	}

	return event.Page{Items: items, Total: total, Request: req}, nil
}

func (r *EventsRepo) Update(ctx context.Context, e event.Event) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[e.ID]; !ok {
		return event.Event{}, event.ErrNotFound
	}

	e.Recompute()
	r.items[e.ID] = e

	return e, nil
}

// less orders by the requested field, then by id so pages stay stable.
func less(a, b event.Event, s event.Sort) bool {
	c := 0

	switch s.Field {
	case event.SortByName:
		c = strings.Compare(a.Name, b.Name)
	case event.SortByBeginEvent:
		c = a.BeginEventDateTime.Compare(b.BeginEventDateTime)
	case event.SortByBeginEnrollment:
		c = a.BeginEnrollmentDateTime.Compare(b.BeginEnrollmentDateTime)
	case event.SortByBasePrice:
		c = a.BasePrice - b.BasePrice
	}

	if c == 0 {
		c = int(a.ID - b.ID)
		if s.Field != event.SortByID && s.Field != "" {
			// tie-break always ascending
			return c < 0
		}
	}

	if s.Desc {
		return c > 0
	}
	return c < 0
}
