package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/tactical-scout-service/internal/model"
	"github.com/maxviazov/tactical-scout-service/internal/service"
	"github.com/maxviazov/tactical-scout-service/pkg/response"
)

type ChatHandler struct {
	svc service.ChatService
}

func NewChatHandler(svc service.ChatService) *ChatHandler { return &ChatHandler{svc: svc} }

func (h *ChatHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/chat/sessions")
	{
		g.POST("", h.create)
		g.GET("/:session_id", h.get)
		g.POST("/:session_id/messages", h.ask)
	}
}

type createSessionRequest struct {
	Report *model.ScoutingReport `json:"report"`
}

func (h *ChatHandler) create(c *gin.Context) {
	var req createSessionRequest
	// an empty body starts a session without a report
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	id, err := h.svc.CreateSession(c.Request.Context(), req.Report)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, gin.H{"session_id": id})
}

func (h *ChatHandler) get(c *gin.Context) {
	view, err := h.svc.GetSession(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, view)
}

type askRequest struct {
	Question string                `json:"question"`
	Report   *model.ScoutingReport `json:"report"`
}

func (h *ChatHandler) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	res, err := h.svc.Ask(c.Request.Context(), c.Param("session_id"), req.Question, req.Report)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}
