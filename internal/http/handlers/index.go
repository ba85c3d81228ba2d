package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Index godoc
// @Summary   API entry point
// @ID        index
// @Tags      events
// @Produce   application/hal+json
// @Success   200  {object}  handlers.IndexResource
// @Router    /api [get]
func Index(ctx *gin.Context) {
	l := linkerFor(ctx)

	respondHAL(ctx, http.StatusOK, IndexResource{Links: Links{
		relEvents:  l.events(),
		relProfile: l.profile(docIndex),
	}})
}
