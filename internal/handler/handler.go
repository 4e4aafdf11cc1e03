package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maxviazov/tactical-scout-service/internal/service"
)

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, store Pinger, scoutingSvc service.ScoutingService, draftSvc service.DraftService, chatSvc service.ChatService) {
	h := NewHealthHandler(store)

	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	RegisterDocs(r)

	api := r.Group(APIV1Prefix)
	{
		api.GET("/health", h.Status)
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewScoutingHandler(scoutingSvc).Register(api)
		NewDraftHandler(draftSvc).Register(api)
		NewIntentHandler().Register(api)
		NewChatHandler(chatSvc).Register(api)
	}
}
