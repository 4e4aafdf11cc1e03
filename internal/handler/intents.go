package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/tactical-scout-service/internal/intent"
	"github.com/maxviazov/tactical-scout-service/pkg/response"
)

// IntentHandler exposes the keyword matcher so clients can preview routing.
type IntentHandler struct{}

func NewIntentHandler() *IntentHandler { return &IntentHandler{} }

func (h *IntentHandler) Register(r *gin.RouterGroup) {
	r.GET("/intents", h.match)
}

type intentResponse struct {
	Intent  *intent.ID  `json:"intent"`
	Label   string      `json:"label,omitempty"`
	Matched bool        `json:"matched"`
	Known   []intent.ID `json:"known"`
}

func (h *IntentHandler) match(c *gin.Context) {
	res := intentResponse{Known: intent.All()}
	if id, ok := intent.Match(c.Query("q")); ok {
		res.Intent = &id
		res.Label = id.Label()
		res.Matched = true
	}
	response.WriteData(c, http.StatusOK, res)
}
