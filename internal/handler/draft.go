package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/tactical-scout-service/internal/service"
	"github.com/maxviazov/tactical-scout-service/pkg/response"
)

type DraftHandler struct {
	svc service.DraftService
}

func NewDraftHandler(svc service.DraftService) *DraftHandler { return &DraftHandler{svc: svc} }

func (h *DraftHandler) Register(r *gin.RouterGroup) {
	r.POST("/draft/analysis", h.analyze)
}

// draftRequest accepts either free text or an explicit pick list.
type draftRequest struct {
	Draft string   `json:"draft"`
	Picks []string `json:"picks"`
}

func (h *DraftHandler) analyze(c *gin.Context) {
	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	out, err := h.svc.AnalyzeDraft(c.Request.Context(), req.Draft, req.Picks)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, out)
}
