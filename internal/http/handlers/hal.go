package handlers

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/geocoder89/eventrest/internal/domain/event"
	"github.com/gin-gonic/gin"
)

const halContentType = "application/hal+json"

const (
	relSelf         = "self"
	relProfile      = "profile"
	relIndex        = "index"
	relEvents       = "events"
	relQueryEvents  = "query-events"
	relUpdateEvents = "update-events"
	relFirst        = "first"
	relPrev         = "prev"
	relNext         = "next"
	relLast         = "last"
)

// Operation ids in the swagger document; profile links deep-link to them.
const (
	docCreateEvent = "create-event"
	docGetEvent    = "get-an-event"
	docQueryEvents = "query-events"
	docUpdateEvent = "update-event"
	docIndex       = "index"
)

type Link struct {
	Href string `json:"href"`
}

type Links map[string]Link

// EventResource is the HAL representation of an event.
type EventResource struct {
	ID                      int64          `json:"id"`
	Name                    string         `json:"name"`
	Description             string         `json:"description"`
	BeginEnrollmentDateTime event.DateTime `json:"beginEnrollmentDateTime"`
	CloseEnrollmentDateTime event.DateTime `json:"closeEnrollmentDateTime"`
	BeginEventDateTime      event.DateTime `json:"beginEventDateTime"`
	EndEventDateTime        event.DateTime `json:"endEventDateTime"`
	Location                string         `json:"location"`
	BasePrice               int            `json:"basePrice"`
	MaxPrice                int            `json:"maxPrice"`
	LimitOfEnrollment       int            `json:"limitOfEnrollment"`
	Offline                 bool           `json:"offline"`
	Free                    bool           `json:"free"`
	EventStatus             event.Status   `json:"eventStatus"`
	Links                   Links          `json:"_links"`
}

type PageMetadata struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

type EventsEmbedded struct {
	EventList []EventResource `json:"eventList"`
}

type PagedEventsResource struct {
	Embedded EventsEmbedded `json:"_embedded"`
	Links    Links          `json:"_links"`
	Page     PageMetadata   `json:"page"`
}

type IndexResource struct {
	Links Links `json:"_links"`
}

func newEventResource(e event.Event, links Links) EventResource {
	return EventResource{
		ID:                      e.ID,
		Name:                    e.Name,
		Description:             e.Description,
		BeginEnrollmentDateTime: event.NewDateTime(e.BeginEnrollmentDateTime),
		CloseEnrollmentDateTime: event.NewDateTime(e.CloseEnrollmentDateTime),
		BeginEventDateTime:      event.NewDateTime(e.BeginEventDateTime),
		EndEventDateTime:        event.NewDateTime(e.EndEventDateTime),
		Location:                e.Location,
		BasePrice:               e.BasePrice,
		MaxPrice:                e.MaxPrice,
		LimitOfEnrollment:       e.LimitOfEnrollment,
		Offline:                 e.Offline,
		Free:                    e.Free,
		EventStatus:             e.Status,
		Links:                   links,
	}
}

// linker builds absolute hrefs against the host the client called.
type linker struct {
	base string
}

func linkerFor(ctx *gin.Context) linker {
	scheme := "http"
	if ctx.Request.TLS != nil {
		scheme = "https"
	}
	if p := ctx.GetHeader("X-Forwarded-Proto"); p != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(p, ",")[0]))
	}

	host := ctx.Request.Host
	if h := ctx.GetHeader("X-Forwarded-Host"); h != "" {
		host = strings.TrimSpace(strings.Split(h, ",")[0])
	}

	return linker{base: scheme + "://" + host}
}

func (l linker) index() Link {
	return Link{Href: l.base + "/api"}
}

func (l linker) events() Link {
	return Link{Href: l.base + "/api/events"}
}

func (l linker) event(id int64) Link {
	return Link{Href: l.base + "/api/events/" + strconv.FormatInt(id, 10)}
}

func (l linker) profile(operation string) Link {
	return Link{Href: l.base + "/swagger/index.html#/events/" + operation}
}

func (l linker) eventsPage(page, size int, sort event.Sort) Link {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	q.Set("sort", sort.String())

	return Link{Href: l.base + "/api/events?" + q.Encode()}
}

func (l linker) pageLinks(p event.Page) Links {
	req := p.Request

	last := p.TotalPages() - 1
	if last < 0 {
		last = 0
	}

	links := Links{
		relSelf:    l.eventsPage(req.Page, req.Size, req.Sort),
		relFirst:   l.eventsPage(0, req.Size, req.Sort),
		relLast:    l.eventsPage(last, req.Size, req.Sort),
		relProfile: l.profile(docQueryEvents),
	}

	if p.HasPrev() {
		prev := req.Page - 1
		if prev > last {
			prev = last
		}
		links[relPrev] = l.eventsPage(prev, req.Size, req.Sort)
	}
	if p.HasNext() {
		links[relNext] = l.eventsPage(req.Page+1, req.Size, req.Sort)
	}

	return links
}
