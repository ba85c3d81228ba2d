package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/geocoder89/eventrest/internal/domain/event"
	"github.com/gin-gonic/gin"
)

type EventsStore interface {
	Create(ctx context.Context, e *event.Event) error
	GetByID(ctx context.Context, id int64) (event.Event, error)
	List(ctx context.Context, req event.PageRequest) (event.Page, error)
	Update(ctx context.Context, e event.Event) (event.Event, error)
}

// RejectionObserver is told about every rejected create/update.
type RejectionObserver interface {
	ObserveRejection(op, rule string)
}

type EventsHandler struct {
	store      EventsStore
	log        *slog.Logger
	rejections RejectionObserver
	now        func() time.Time
}

type EventsHandlerOption func(*EventsHandler)

func WithLogger(log *slog.Logger) EventsHandlerOption {
	return func(h *EventsHandler) { h.log = log }
}

func WithRejectionObserver(o RejectionObserver) EventsHandlerOption {
	return func(h *EventsHandler) { h.rejections = o }
}

func WithClock(now func() time.Time) EventsHandlerOption {
	return func(h *EventsHandler) { h.now = now }
}

func NewEventsHandler(store EventsStore, opts ...EventsHandlerOption) *EventsHandler {
	h := &EventsHandler{
		store: store,
		log:   slog.Default(),
		now:   func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// CreateEvent godoc
// @Summary      Create an event
// @Description  Creates a DRAFT event. free/offline are derived from the prices and location.
// @ID           create-event
// @Tags         events
// @Accept       json
// @Produce      application/hal+json
// @Param        request  body      event.CreateEventRequest  true  "Event to create"
// @Success      201      {object}  handlers.EventResource
// @Header       201      {string}  Location  "URL of the new event"
// @Failure      400      {object}  handlers.ErrorResponse
// @Failure      500      {object}  handlers.ErrorResponse
// @Router       /api/events [post]
func (h *EventsHandler) CreateEvent(ctx *gin.Context) {
	var req event.CreateEventRequest

	if !BindJSON(ctx, &req) {
		h.reject("create", "bind")
		return
	}

	params := req.Params()

	if !h.validateSchedule(ctx, "create", params) {
		return
	}

	e := event.New(params, h.now())

	if err := h.store.Create(ctx.Request.Context(), &e); err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "create event failed", "err", err, "request_id", requestIDFrom(ctx))
		RespondInternal(ctx, "Could not create event")
		return
	}

	l := linkerFor(ctx)
	self := l.event(e.ID)

	ctx.Header("Location", self.Href)
	respondHAL(ctx, http.StatusCreated, newEventResource(e, Links{
		relSelf:         self,
		relQueryEvents:  l.events(),
		relUpdateEvents: self,
		relProfile:      l.profile(docCreateEvent),
	}))
}

// ListEvents godoc
// @Summary      Query events
// @Description  Offset pagination; page is zero-based.
// @ID           query-events
// @Tags         events
// @Produce      application/hal+json
// @Param        page  query     int     false  "Zero-based page index"  default(0)
// @Param        size  query     int     false  "Page size (max 100)"    default(20)
// @Param        sort  query     string  false  "field[,asc|desc]; field in id, name, beginEventDateTime, beginEnrollmentDateTime, basePrice"
// @Success      200   {object}  handlers.PagedEventsResource
// @Success      304   "Not modified"
// @Failure      400   {object}  handlers.ErrorResponse
// @Failure      500   {object}  handlers.ErrorResponse
// @Router       /api/events [get]
func (h *EventsHandler) ListEvents(ctx *gin.Context) {
	req, errs := parsePageRequest(ctx)
	if len(errs) > 0 {
		RespondBadRequest(ctx, "Invalid pagination parameters", gin.H{"fields": errs})
		return
	}

	page, err := h.store.List(ctx.Request.Context(), req)

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "list events failed", "err", err, "request_id", requestIDFrom(ctx))
		RespondInternal(ctx, "Could not list events")
		return
	}

	l := linkerFor(ctx)

	items := make([]EventResource, 0, len(page.Items))
	for _, e := range page.Items {
		items = append(items, newEventResource(e, Links{relSelf: l.event(e.ID)}))
	}

	ctx.Header("Content-Type", halContentType)
	RespondJSONWithETag(ctx, http.StatusOK, PagedEventsResource{
		Embedded: EventsEmbedded{EventList: items},
		Links:    l.pageLinks(page),
		Page: PageMetadata{
			Size:          req.Size,
			TotalElements: page.Total,
			TotalPages:    page.TotalPages(),
			Number:        req.Page,
		},
	})
}

// GetEventById godoc
// @Summary      Get an event
// @ID           get-an-event
// @Tags         events
// @Produce      application/hal+json
// @Param        id   path      int  true  "Event id"
// @Success      200  {object}  handlers.EventResource
// @Success      304  "Not modified"
// @Failure      404  {object}  handlers.ErrorResponse
// @Failure      500  {object}  handlers.ErrorResponse
// @Router       /api/events/{id} [get]
func (h *EventsHandler) GetEventById(ctx *gin.Context) {
	id, ok := parseEventID(ctx)
	if !ok {
		RespondNotFound(ctx, "Event not found")
		return
	}

	e, err := h.store.GetByID(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}
		h.log.ErrorContext(ctx.Request.Context(), "get event failed", "err", err, "event_id", id, "request_id", requestIDFrom(ctx))
		RespondInternal(ctx, "Could not fetch event")
		return
	}

	l := linkerFor(ctx)
	self := l.event(e.ID)

	ctx.Header("Content-Type", halContentType)
	RespondJSONWithETag(ctx, http.StatusOK, newEventResource(e, Links{
		relSelf:         self,
		relUpdateEvents: self,
		relProfile:      l.profile(docGetEvent),
	}))
}

// UpdateEvent godoc
// @Summary      Update an event
// @Description  Replaces every mutable field; free/offline are recomputed. Status is unchanged.
// @ID           update-event
// @Tags         events
// @Accept       json
// @Produce      application/hal+json
// @Param        id       path      int                       true  "Event id"
// @Param        request  body      event.UpdateEventRequest  true  "Replacement event"
// @Success      200      {object}  handlers.EventResource
// @Failure      400      {object}  handlers.ErrorResponse
// @Failure      404      {object}  handlers.ErrorResponse
// @Failure      500      {object}  handlers.ErrorResponse
// @Router       /api/events/{id} [put]
func (h *EventsHandler) UpdateEvent(ctx *gin.Context) {
	id, ok := parseEventID(ctx)
	if !ok {
		RespondNotFound(ctx, "Event not found")
		return
	}

	var req event.UpdateEventRequest

	if !BindJSON(ctx, &req) {
		h.reject("update", "bind")
		return
	}

	params := req.Params()

	if !h.validateSchedule(ctx, "update", params) {
		return
	}

	e, err := h.store.GetByID(ctx.Request.Context(), id)
	if err == nil {
		e.Apply(params, h.now())
		e, err = h.store.Update(ctx.Request.Context(), e)
	}

	if err != nil {
		// if there was no event with the id
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}
		h.log.ErrorContext(ctx.Request.Context(), "update event failed", "err", err, "event_id", id, "request_id", requestIDFrom(ctx))
		RespondInternal(ctx, "Could not update event")
		return
	}

	l := linkerFor(ctx)

	respondHAL(ctx, http.StatusOK, newEventResource(e, Links{
		relSelf:    l.event(e.ID),
		relProfile: l.profile(docUpdateEvent),
	}))
}

func (h *EventsHandler) validateSchedule(ctx *gin.Context, op string, p event.Params) bool {
	err := event.ValidateSchedule(p.Schedule())
	if err == nil {
		return true
	}

	var verr *event.ValidationError
	if !errors.As(err, &verr) {
		RespondBadRequest(ctx, "Invalid event", gin.H{"reason": err.Error()})
		return false
	}

	for _, v := range verr.Violations {
		h.reject(op, v.Rule)
	}

	RespondBadRequest(ctx, "Invalid event", gin.H{"fields": verr.Violations})
	return false
}

func (h *EventsHandler) reject(op, rule string) {
	if h.rejections != nil {
		h.rejections.ObserveRejection(op, rule)
	}
}

// ids are store-assigned positive integers; anything else cannot exist.
func parseEventID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
