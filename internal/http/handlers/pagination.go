package handlers

import (
	"strconv"

	"github.com/geocoder89/eventrest/internal/domain/event"
	"github.com/gin-gonic/gin"
)

// parsePageRequest reads page (zero-based), size and sort. Missing values
// take defaults, size is clamped to MaxPageSize, malformed values are reported.
func parsePageRequest(ctx *gin.Context) (event.PageRequest, []FieldError) {
	req := event.PageRequest{Page: 0, Size: event.DefaultPageSize}
	var errs []FieldError

	if s := ctx.Query("page"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			errs = append(errs, FieldError{Field: "page", Rule: "min", Param: "0", Message: "must be a non-negative integer"})
		} else {
			req.Page = v
		}
	}

	if s := ctx.Query("size"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			errs = append(errs, FieldError{Field: "size", Rule: "min", Param: "1", Message: "must be a positive integer"})
		} else {
			req.Size = min(v, event.MaxPageSize)
		}
	}

	if maxPage := event.MaxPage(req.Size); req.Page > maxPage {
		errs = append(errs, FieldError{Field: "page", Rule: "max", Param: strconv.Itoa(maxPage), Message: "must be at most " + strconv.Itoa(maxPage) + " for this size"})
		req.Page = 0
	}

	sort, err := event.ParseSort(ctx.Query("sort"))
	if err != nil {
		errs = append(errs, FieldError{Field: "sort", Rule: "oneof", Message: "must be <field>[,asc|desc] with field one of id, name, beginEventDateTime, beginEnrollmentDateTime, basePrice"})
	}
	req.Sort = sort

	return req, errs
}
