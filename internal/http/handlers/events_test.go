package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/geocoder89/eventrest/internal/domain/event"
	"github.com/geocoder89/eventrest/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

// Fake store implementation of handlers.EventsStore

type fakeEventsStore struct {
	createFn func(ctx context.Context, e *event.Event) error
	getFn    func(ctx context.Context, id int64) (event.Event, error)
	listFn   func(ctx context.Context, req event.PageRequest) (event.Page, error)
	updateFn func(ctx context.Context, e event.Event) (event.Event, error)
}

func (f *fakeEventsStore) Create(ctx context.Context, e *event.Event) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	e.ID = 1
	return nil
}

func (f *fakeEventsStore) GetByID(ctx context.Context, id int64) (event.Event, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return event.Event{}, event.ErrNotFound
}

func (f *fakeEventsStore) List(ctx context.Context, req event.PageRequest) (event.Page, error) {
	if f.listFn != nil {
		return f.listFn(ctx, req)
	}
	return event.Page{Request: req}, nil
}

func (f *fakeEventsStore) Update(ctx context.Context, e event.Event) (event.Event, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return e, nil
}

type fakeRejections struct {
	rules []string
}

func (f *fakeRejections) ObserveRejection(op, rule string) {
	f.rules = append(f.rules, op+":"+rule)
}

// small helper function which returns the gin engine to mount one handler per test

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

func do(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

const validEventBody = `{
	"name": "Spring REST API",
	"description": "REST API development",
	"beginEnrollmentDateTime": "2020-04-20T17:00:00",
	"closeEnrollmentDateTime": "2020-04-21T17:00:00",
	"beginEventDateTime": "2020-04-22T17:00:00",
	"endEventDateTime": "2020-04-23T17:00:00",
	"location": "Gangnam D2 startup factory",
	"basePrice": 100,
	"maxPrice": 200,
	"limitOfEnrollment": 100
}`

type halEvent struct {
	ID                      int64                    `json:"id"`
	Name                    string                   `json:"name"`
	BeginEnrollmentDateTime string                   `json:"beginEnrollmentDateTime"`
	Free                    bool                     `json:"free"`
	Offline                 bool                     `json:"offline"`
	EventStatus             string                   `json:"eventStatus"`
	Links                   map[string]handlers.Link `json:"_links"`
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Details struct {
			Fields []handlers.FieldError `json:"fields"`
		} `json:"details"`
	} `json:"error"`
	Links map[string]handlers.Link `json:"_links"`
}

func sampleEvent(id int64) event.Event {
	e := event.Event{
		ID:                      id,
		Name:                    "Spring",
		BeginEnrollmentDateTime: time.Date(2020, 4, 20, 17, 0, 0, 0, time.UTC),
		CloseEnrollmentDateTime: time.Date(2020, 4, 21, 17, 0, 0, 0, time.UTC),
		BeginEventDateTime:      time.Date(2020, 4, 22, 17, 0, 0, 0, time.UTC),
		EndEventDateTime:        time.Date(2020, 4, 23, 17, 0, 0, 0, time.UTC),
		LimitOfEnrollment:       10,
		Status:                  event.StatusDraft,
	}
	e.Recompute()
	return e
}

// Create Event tests

func TestCreateEventHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		storeSetUp     func(*fakeEventsStore)
		wantStatusCode int
		wantRules      []string
	}{
		{
			name:           "success",
			body:           validEventBody,
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "empty body",
			body:           "",
			wantStatusCode: http.StatusBadRequest,
			wantRules:      []string{"create:bind"},
		},
		{
			name: "enrollment closes before it begins and base above max",
			body: `{
				"name": "Spring",
				"beginEnrollmentDateTime": "2020-04-23T17:00:00",
				"closeEnrollmentDateTime": "2020-04-21T17:00:00",
				"beginEventDateTime": "2020-04-24T17:00:00",
				"endEventDateTime": "2020-04-23T17:00:00",
				"basePrice": 10000,
				"maxPrice": 200,
				"limitOfEnrollment": 100
			}`,
			wantStatusCode: http.StatusBadRequest,
			wantRules:      []string{"create:gtefield", "create:gtefield", "create:ltefield"},
		},
		{
			name: "store failure",
			body: validEventBody,
			storeSetUp: func(f *fakeEventsStore) {
				f.createFn = func(ctx context.Context, e *event.Event) error {
					return errors.New("db down")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeEventsStore{}
			if tc.storeSetUp != nil {
				tc.storeSetUp(store)
			}
			rejections := &fakeRejections{}

			h := handlers.NewEventsHandler(store, handlers.WithRejectionObserver(rejections))
			r := setupRouter(http.MethodPost, "/api/events", h.CreateEvent)

			req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatusCode {
				t.Fatalf("expected status %d, got %d body=%s", tc.wantStatusCode, w.Code, w.Body.String())
			}

			if strings.Join(rejections.rules, ",") != strings.Join(tc.wantRules, ",") {
				t.Fatalf("rejections = %v, want %v", rejections.rules, tc.wantRules)
			}
		})
	}
}

func TestCreateEventHandler_ReturnsHALWithLocation(t *testing.T) {
	var stored event.Event
	store := &fakeEventsStore{
		createFn: func(ctx context.Context, e *event.Event) error {
			e.ID = 7
			stored = *e
			return nil
		},
	}

	h := handlers.NewEventsHandler(store)
	r := setupRouter(http.MethodPost, "/api/events", h.CreateEvent)

	w := do(r, http.MethodPost, "/api/events", validEventBody)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}

	if got := w.Header().Get("Location"); got != "http://example.com/api/events/7" {
		t.Fatalf("unexpected Location %q", got)
	}

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/hal+json") {
		t.Fatalf("unexpected Content-Type %q", ct)
	}

	var resp halEvent
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.ID != 7 || resp.EventStatus != "DRAFT" {
		t.Fatalf("unexpected resource %+v", resp)
	}

	if resp.Free || !resp.Offline {
		t.Fatalf("derived flags wrong: free=%v offline=%v", resp.Free, resp.Offline)
	}

	if resp.BeginEnrollmentDateTime != "2020-04-20T17:00:00" {
		t.Fatalf("unexpected timestamp format %q", resp.BeginEnrollmentDateTime)
	}

	for _, rel := range []string{"self", "query-events", "update-events", "profile"} {
		if _, ok := resp.Links[rel]; !ok {
			t.Fatalf("missing link %q in %v", rel, resp.Links)
		}
	}

	if stored.Status != event.StatusDraft {
		t.Fatalf("stored status = %q", stored.Status)
	}
}

func TestCreateEventHandler_IgnoresClientControlledFields(t *testing.T) {
	var stored event.Event
	store := &fakeEventsStore{
		createFn: func(ctx context.Context, e *event.Event) error {
			stored = *e
			e.ID = 1
			return nil
		},
	}

	h := handlers.NewEventsHandler(store)
	r := setupRouter(http.MethodPost, "/api/events", h.CreateEvent)

	body := `{
		"id": 100,
		"name": "Spring",
		"beginEnrollmentDateTime": "2020-04-20T17:00:00",
		"closeEnrollmentDateTime": "2020-04-21T17:00:00",
		"beginEventDateTime": "2020-04-22T17:00:00",
		"endEventDateTime": "2020-04-23T17:00:00",
		"basePrice": 0,
		"maxPrice": 0,
		"limitOfEnrollment": 5,
		"free": false,
		"offline": true,
		"eventStatus": "PUBLISHED"
	}`

	w := do(r, http.MethodPost, "/api/events", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}

	if stored.ID != 0 {
		t.Fatalf("client id leaked into the store: %d", stored.ID)
	}
	if !stored.Free || stored.Offline {
		t.Fatalf("derived flags not recomputed: free=%v offline=%v", stored.Free, stored.Offline)
	}
	if stored.Status != event.StatusDraft {
		t.Fatalf("status = %q, want DRAFT", stored.Status)
	}
}

func TestCreateEventHandler_BadRequestLinksToIndex(t *testing.T) {
	h := handlers.NewEventsHandler(&fakeEventsStore{})
	r := setupRouter(http.MethodPost, "/api/events", h.CreateEvent)

	body := `{
		"name": "Spring",
		"beginEnrollmentDateTime": "2020-04-20T17:00:00",
		"closeEnrollmentDateTime": "2020-04-21T17:00:00",
		"beginEventDateTime": "2020-04-22T17:00:00",
		"endEventDateTime": "2020-04-23T17:00:00",
		"basePrice": 300,
		"maxPrice": 200,
		"limitOfEnrollment": 5
	}`

	w := do(r, http.MethodPost, "/api/events", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.Links["index"].Href != "http://example.com/api" {
		t.Fatalf("unexpected index link %v", resp.Links)
	}

	if len(resp.Error.Details.Fields) != 1 || resp.Error.Details.Fields[0].Field != "basePrice" {
		t.Fatalf("unexpected fields %+v", resp.Error.Details.Fields)
	}
}

// List events tests

func TestListEventsHandler(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		wantStatusCode int
		wantReq        event.PageRequest
	}{
		{
			name:           "defaults",
			query:          "",
			wantStatusCode: http.StatusOK,
			wantReq:        event.PageRequest{Page: 0, Size: event.DefaultPageSize, Sort: event.Sort{Field: event.SortByID}},
		},
		{
			name:           "explicit page and sort",
			query:          "?page=1&size=10&sort=name,desc",
			wantStatusCode: http.StatusOK,
			wantReq:        event.PageRequest{Page: 1, Size: 10, Sort: event.Sort{Field: event.SortByName, Desc: true}},
		},
		{
			name:           "size is clamped",
			query:          "?size=1000",
			wantStatusCode: http.StatusOK,
			wantReq:        event.PageRequest{Page: 0, Size: event.MaxPageSize, Sort: event.Sort{Field: event.SortByID}},
		},
		{
			name:           "negative page",
			query:          "?page=-1",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "page too large for size",
			query:          "?page=922337203685477581&size=10",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "unknown sort field",
			query:          "?sort=password",
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got event.PageRequest
			store := &fakeEventsStore{
				listFn: func(ctx context.Context, req event.PageRequest) (event.Page, error) {
					got = req
					return event.Page{Request: req}, nil
				},
			}

			h := handlers.NewEventsHandler(store)
			r := setupRouter(http.MethodGet, "/api/events", h.ListEvents)

			w := do(r, http.MethodGet, "/api/events"+tc.query, "")

			if w.Code != tc.wantStatusCode {
				t.Fatalf("expected status %d, got %d body=%s", tc.wantStatusCode, w.Code, w.Body.String())
			}

			if tc.wantStatusCode == http.StatusOK && got != tc.wantReq {
				t.Fatalf("store got %+v, want %+v", got, tc.wantReq)
			}
		})
	}
}

func TestListEventsHandler_PageShape(t *testing.T) {
	store := &fakeEventsStore{
		listFn: func(ctx context.Context, req event.PageRequest) (event.Page, error) {
			items := make([]event.Event, 0, req.Size)
			for i := 0; i < req.Size; i++ {
				items = append(items, sampleEvent(int64(req.Offset()+i+1)))
			}
			return event.Page{Items: items, Total: 30, Request: req}, nil
		},
	}

	h := handlers.NewEventsHandler(store)
	r := setupRouter(http.MethodGet, "/api/events", h.ListEvents)

	w := do(r, http.MethodGet, "/api/events?page=1&size=10", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Embedded struct {
			EventList []halEvent `json:"eventList"`
		} `json:"_embedded"`
		Links map[string]handlers.Link `json:"_links"`
		Page  handlers.PageMetadata    `json:"page"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(resp.Embedded.EventList) != 10 || resp.Embedded.EventList[0].ID != 11 {
		t.Fatalf("unexpected items %+v", resp.Embedded.EventList)
	}

	if _, ok := resp.Embedded.EventList[0].Links["self"]; !ok {
		t.Fatalf("embedded event has no self link")
	}

	want := handlers.PageMetadata{Size: 10, TotalElements: 30, TotalPages: 3, Number: 1}
	if resp.Page != want {
		t.Fatalf("page = %+v, want %+v", resp.Page, want)
	}

	for _, rel := range []string{"self", "first", "prev", "next", "last", "profile"} {
		if _, ok := resp.Links[rel]; !ok {
			t.Fatalf("missing link %q", rel)
		}
	}
}

func TestListEventsHandler_EmptyKeepsEmbedded(t *testing.T) {
	h := handlers.NewEventsHandler(&fakeEventsStore{})
	r := setupRouter(http.MethodGet, "/api/events", h.ListEvents)

	w := do(r, http.MethodGet, "/api/events", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if !strings.Contains(w.Body.String(), `"_embedded":{"eventList":[]}`) {
		t.Fatalf("expected empty eventList, body=%s", w.Body.String())
	}
}

// Get event tests

func TestGetEventByIdHandler(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		storeSetUp     func(*fakeEventsStore)
		wantStatusCode int
	}{
		{
			name: "found",
			path: "/api/events/3",
			storeSetUp: func(f *fakeEventsStore) {
				f.getFn = func(ctx context.Context, id int64) (event.Event, error) {
					return sampleEvent(id), nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "not found",
			path:           "/api/events/11883",
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "non numeric id",
			path:           "/api/events/abc",
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "store failure",
			path: "/api/events/3",
			storeSetUp: func(f *fakeEventsStore) {
				f.getFn = func(ctx context.Context, id int64) (event.Event, error) {
					return event.Event{}, errors.New("db down")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeEventsStore{}
			if tc.storeSetUp != nil {
				tc.storeSetUp(store)
			}

			h := handlers.NewEventsHandler(store)
			r := setupRouter(http.MethodGet, "/api/events/:id", h.GetEventById)

			w := do(r, http.MethodGet, tc.path, "")

			if w.Code != tc.wantStatusCode {
				t.Fatalf("expected status %d, got %d body=%s", tc.wantStatusCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestGetEventByIdHandler_ETagRevalidation(t *testing.T) {
	store := &fakeEventsStore{
		getFn: func(ctx context.Context, id int64) (event.Event, error) {
			return sampleEvent(id), nil
		},
	}

	h := handlers.NewEventsHandler(store)
	r := setupRouter(http.MethodGet, "/api/events/:id", h.GetEventById)

	first := do(r, http.MethodGet, "/api/events/3", "")
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag header")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/events/3", nil)
	req.Header.Set("If-None-Match", etag)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", w.Code)
	}
}

// Update event tests

func TestUpdateEventHandler(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		body           string
		storeSetUp     func(*fakeEventsStore)
		wantStatusCode int
	}{
		{
			name: "success",
			path: "/api/events/3",
			body: validEventBody,
			storeSetUp: func(f *fakeEventsStore) {
				f.getFn = func(ctx context.Context, id int64) (event.Event, error) {
					return sampleEvent(id), nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "unknown id",
			path:           "/api/events/11883",
			body:           validEventBody,
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "non numeric id",
			path:           "/api/events/abc",
			body:           validEventBody,
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "empty body",
			path:           "/api/events/3",
			body:           "{}",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "store update failure",
			path: "/api/events/3",
			body: validEventBody,
			storeSetUp: func(f *fakeEventsStore) {
				f.getFn = func(ctx context.Context, id int64) (event.Event, error) {
					return sampleEvent(id), nil
				}
				f.updateFn = func(ctx context.Context, e event.Event) (event.Event, error) {
					return event.Event{}, errors.New("db down")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeEventsStore{}
			if tc.storeSetUp != nil {
				tc.storeSetUp(store)
			}

			h := handlers.NewEventsHandler(store)
			r := setupRouter(http.MethodPut, "/api/events/:id", h.UpdateEvent)

			w := do(r, http.MethodPut, tc.path, tc.body)

			if w.Code != tc.wantStatusCode {
				t.Fatalf("expected status %d, got %d body=%s", tc.wantStatusCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestUpdateEventHandler_RecomputesAndKeepsStatus(t *testing.T) {
	var updated event.Event
	store := &fakeEventsStore{
		getFn: func(ctx context.Context, id int64) (event.Event, error) {
			return sampleEvent(id), nil
		},
		updateFn: func(ctx context.Context, e event.Event) (event.Event, error) {
			updated = e
			return e, nil
		},
	}

	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	h := handlers.NewEventsHandler(store, handlers.WithClock(func() time.Time { return fixed }))
	r := setupRouter(http.MethodPut, "/api/events/:id", h.UpdateEvent)

	w := do(r, http.MethodPut, "/api/events/3", validEventBody)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	if updated.ID != 3 || updated.Name != "Spring REST API" {
		t.Fatalf("unexpected update %+v", updated)
	}
	if updated.Free || !updated.Offline {
		t.Fatalf("derived flags not recomputed: free=%v offline=%v", updated.Free, updated.Offline)
	}
	if updated.Status != event.StatusDraft || !updated.UpdatedAt.Equal(fixed) {
		t.Fatalf("status/updatedAt wrong: %q %v", updated.Status, updated.UpdatedAt)
	}

	var resp halEvent
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Links["self"].Href != "http://example.com/api/events/3" {
		t.Fatalf("unexpected self link %v", resp.Links)
	}
	if _, ok := resp.Links["profile"]; !ok {
		t.Fatalf("missing profile link")
	}
}

func TestIndex(t *testing.T) {
	r := setupRouter(http.MethodGet, "/api", handlers.Index)

	w := do(r, http.MethodGet, "/api", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp handlers.IndexResource
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.Links["events"].Href != "http://example.com/api/events" {
		t.Fatalf("unexpected events link %v", resp.Links)
	}
}
