package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/tactical-scout-service/internal/model"
	"github.com/maxviazov/tactical-scout-service/internal/repository"
	"github.com/maxviazov/tactical-scout-service/internal/service"
	"github.com/maxviazov/tactical-scout-service/pkg/response"
)

type ScoutingHandler struct {
	svc service.ScoutingService
}

func NewScoutingHandler(svc service.ScoutingService) *ScoutingHandler {
	return &ScoutingHandler{svc: svc}
}

func (h *ScoutingHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/scouting")
	{
		g.POST("/reports", h.fetch)
		g.GET("/reports", h.list)
		g.POST("/insight", h.insight)
	}
}

type fetchReportRequest struct {
	TeamName   string `json:"team_name"`
	MatchLimit int    `json:"match_limit"`
}

func (h *ScoutingHandler) fetch(c *gin.Context) {
	var req fetchReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	res, err := h.svc.FetchReport(c.Request.Context(), c.GetHeader(HeaderBoardID), req.TeamName, req.MatchLimit)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *ScoutingHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	res, err := h.svc.ListReports(c.Request.Context(), c.Query("team"), repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

type insightRequest struct {
	Report *model.ScoutingReport `json:"report"`
}

type insightResponse struct {
	Confidence *model.Confidence `json:"confidence"`
	Insight    *model.Insight    `json:"insight"`
}

func (h *ScoutingHandler) insight(c *gin.Context) {
	var req insightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	if req.Report == nil {
		status, payload := response.MapError(service.ErrInvalidInput)
		payload.FieldErrors = []service.FieldError{{Field: "report", Message: "is required"}}
		c.AbortWithStatusJSON(status, payload)
		return
	}
	conf, ins := h.svc.Analyze(req.Report)
	response.WriteData(c, http.StatusOK, insightResponse{Confidence: conf, Insight: ins})
}
