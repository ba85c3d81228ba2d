package middlewares

// Keys set on *gin.Context. Handlers read the request id back by this name.
const (
	CtxRequestID = "request_id"
)
