package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
	Links Links    `json:"_links,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	v, ok := ctx.Get("request_id")

	if ok {
		s, ok := v.(string)
		if ok && s != "" {
			return s
		}
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func respondHAL(ctx *gin.Context, status int, payload interface{}) {
	ctx.Header("Content-Type", halContentType)
	ctx.JSON(status, payload)
}

func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	ctx.JSON(status, ErrorResponse{
		Error: APIError{
			Code:      code,
			Message:   message,
			RequestID: requestIDFrom(ctx),
			Details:   details,
		},
	})
}

// RespondBadRequest points the client back at the API index, so a rejected
// request is still navigable.
func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	respondHAL(ctx, http.StatusBadRequest, ErrorResponse{
		Error: APIError{
			Code:      "invalid_request",
			Message:   message,
			RequestID: requestIDFrom(ctx),
			Details:   details,
		},
		Links: Links{relIndex: linkerFor(ctx).index()},
	})
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, "internal_error", message, nil)
}
