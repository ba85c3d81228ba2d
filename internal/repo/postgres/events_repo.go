package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/geocoder89/eventrest/internal/domain/event"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Observer times a logical DB operation. observability.Prom satisfies it.
type Observer interface {
	ObserveDB(op string, fn func() error) error
}

type noopObserver struct{}

func (noopObserver) ObserveDB(_ string, fn func() error) error { return fn() }

type EventsRepo struct {
	pool *pgxpool.Pool
	obs  Observer
}

// constructor function

func NewEventsRepo(pool *pgxpool.Pool, obs Observer) *EventsRepo {
	if obs == nil {
		obs = noopObserver{}
	}

	return &EventsRepo{
		pool: pool,
		obs:  obs,
	}
}

const eventColumns = `id,
	name,
	description,
	begin_enrollment_at,
	close_enrollment_at,
	begin_event_at,
	end_event_at,
	location,
	base_price,
	max_price,
	limit_of_enrollment,
	status,
	created_at,
	updated_at`

// sortColumns maps API sort fields onto columns; only these are ever interpolated.
var sortColumns = map[event.SortField]string{
	event.SortByID:              "id",
	event.SortByName:            "name",
	event.SortByBeginEvent:      "begin_event_at",
	event.SortByBeginEnrollment: "begin_enrollment_at",
	event.SortByBasePrice:       "base_price",
}

func (r *EventsRepo) Create(ctx context.Context, e *event.Event) error {
	return r.obs.ObserveDB("events.create", func() error {
		err := r.pool.QueryRow(ctx,
			`INSERT INTO events(name, description, begin_enrollment_at, close_enrollment_at, begin_event_at, end_event_at,
				location, base_price, max_price, limit_of_enrollment, status, created_at, updated_at)
			VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
			RETURNING id`,
			e.Name, e.Description, e.BeginEnrollmentDateTime, e.CloseEnrollmentDateTime, e.BeginEventDateTime,
			e.EndEventDateTime, e.Location, e.BasePrice, e.MaxPrice, e.LimitOfEnrollment, string(e.Status),
			e.CreatedAt, e.UpdatedAt,
		).Scan(&e.ID)

		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}

		e.Recompute()
		return nil
	})
}

func (r *EventsRepo) GetByID(ctx context.Context, id int64) (event.Event, error) {
	var e event.Event

	err := r.obs.ObserveDB("events.get", func() error {
		row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
		return scanEvent(row, &e)
	})

	if err != nil {
		// if there are no rows matching the id
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, fmt.Errorf("get event %d: %w", id, err)
	}

	return e, nil
}

func (r *EventsRepo) List(ctx context.Context, req event.PageRequest) (event.Page, error) {
	col, ok := sortColumns[req.Sort.Field]
	if !ok {
		col = "id"
	}

	dir := "ASC"
	if req.Sort.Desc {
		dir = "DESC"
	}

	// stable ordering for pagination
	query := `SELECT ` + eventColumns + `, COUNT(*) OVER() AS total
		FROM events
		ORDER BY ` + col + ` ` + dir + `, id ASC
		LIMIT $1 OFFSET $2`

	page := event.Page{Items: make([]event.Event, 0, req.Size), Request: req}

	err := r.obs.ObserveDB("events.list", func() error {
		rows, err := r.pool.Query(ctx, query, req.Size, req.Offset())
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var e event.Event
			var total int

			if err := scanEvent(rows, &e, &total); err != nil {
				return err
			}

			page.Total = total
			page.Items = append(page.Items, e)
		}

		return rows.Err()
	})

	if err != nil {
		return event.Page{}, fmt.Errorf("list events: %w", err)
	}

	// an out-of-range page returns no rows, so the window count is unavailable
	if len(page.Items) == 0 && req.Offset() > 0 {
		total, err := r.count(ctx)
		if err != nil {
			return event.Page{}, err
		}
		page.Total = total
	}

	return page, nil
}

func (r *EventsRepo) count(ctx context.Context) (int, error) {
	var total int

	err := r.obs.ObserveDB("events.count", func() error {
		return r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&total)
	})
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}

	return total, nil
}

func (r *EventsRepo) Update(ctx context.Context, e event.Event) (event.Event, error) {
	var out event.Event

	err := r.obs.ObserveDB("events.update", func() error {
		row := r.pool.QueryRow(
			ctx,
			`UPDATE events
				SET name = $2,
					description = $3,
					begin_enrollment_at = $4,
					close_enrollment_at = $5,
					begin_event_at = $6,
					end_event_at = $7,
					location = $8,
					base_price = $9,
					max_price = $10,
					limit_of_enrollment = $11,
					updated_at = $12
			WHERE id = $1
			RETURNING `+eventColumns,
			e.ID,
			e.Name,
			e.Description,
			e.BeginEnrollmentDateTime,
			e.CloseEnrollmentDateTime,
			e.BeginEventDateTime,
			e.EndEventDateTime,
			e.Location,
			e.BasePrice,
			e.MaxPrice,
			e.LimitOfEnrollment,
			e.UpdatedAt,
		)
		return scanEvent(row, &out)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, fmt.Errorf("update event %d: %w", e.ID, err)
	}

	return out, nil
}

// scanEvent reads eventColumns (plus any extra trailing columns) and
// recomputes the derived flags, which are never stored.
func scanEvent(row pgx.Row, e *event.Event, extra ...any) error {
	var status string

	dest := []any{
		&e.ID,
		&e.Name,
		&e.Description,
		&e.BeginEnrollmentDateTime,
		&e.CloseEnrollmentDateTime,
		&e.BeginEventDateTime,
		&e.EndEventDateTime,
		&e.Location,
		&e.BasePrice,
		&e.MaxPrice,
		&e.LimitOfEnrollment,
		&status,
		&e.CreatedAt,
		&e.UpdatedAt,
	}

	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}

	e.Status = event.Status(status)
	e.Recompute()

	return nil
}
