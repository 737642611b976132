package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/hockey-match-engine/internal/engine"
	"github.com/maxviazov/hockey-match-engine/internal/repository"
	"github.com/maxviazov/hockey-match-engine/internal/service"
	"github.com/maxviazov/hockey-match-engine/pkg/response"
)

type MatchHandler struct {
	svc service.MatchService
}

func NewMatchHandler(svc service.MatchService) *MatchHandler { return &MatchHandler{svc: svc} }

func (h *MatchHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/matches")
	{
		g.POST("", h.create)
		g.GET("", h.list)
		g.GET("/:match_id", h.getByID)
		g.POST("/:match_id/step", h.step)
		g.POST("/:match_id/simulate", h.simulate)
		g.GET("/:match_id/events", h.events)
		g.POST("/:match_id/commands", h.command)
	}
}

type createMatchRequest struct {
	Home   engine.TeamDescriptor `json:"home"`
	Away   engine.TeamDescriptor `json:"away"`
	Reward json.RawMessage       `json:"reward"`
	Seed   *uint64               `json:"seed"`
}

type simulateRequest struct {
	MaxTurns int `json:"max_turns"`
}

// badBody reports an undecodable request body as a field error on "body".
func badBody(c *gin.Context, err error) {
	response.WriteError(c, &bodyError{msg: err.Error()})
}

type bodyError struct{ msg string }

func (e *bodyError) Error() string { return service.ErrInvalidInput.Error() }
func (e *bodyError) Unwrap() error { return service.ErrInvalidInput }
func (e *bodyError) Fields() []service.FieldError {
	return []service.FieldError{{Field: "body", Message: e.msg}}
}

func (h *MatchHandler) create(c *gin.Context) {
	var req createMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	st, err := h.svc.CreateMatch(c.Request.Context(), service.CreateMatchInput{
		Home:   req.Home,
		Away:   req.Away,
		Reward: req.Reward,
		Seed:   req.Seed,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.Header("Location", APIV1Prefix+"/matches/"+st.ID)
	response.WriteData(c, http.StatusCreated, st)
}

func (h *MatchHandler) getByID(c *gin.Context) {
	st, err := h.svc.GetMatch(c.Request.Context(), c.Param("match_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, st)
}

func (h *MatchHandler) list(c *gin.Context) {
	res, err := h.svc.ListMatches(c.Request.Context(), pageFrom(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *MatchHandler) step(c *gin.Context) {
	ev, err := h.svc.Step(c.Request.Context(), c.Param("match_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, ev)
}

func (h *MatchHandler) simulate(c *gin.Context) {
	var req simulateRequest
	// empty body means "use the configured ceiling"
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badBody(c, err)
			return
		}
	}
	res, err := h.svc.Simulate(c.Request.Context(), c.Param("match_id"), req.MaxTurns)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *MatchHandler) events(c *gin.Context) {
	res, err := h.svc.ListEvents(c.Request.Context(), c.Param("match_id"), pageFrom(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *MatchHandler) command(c *gin.Context) {
	var cmd engine.Command
	if err := c.ShouldBindJSON(&cmd); err != nil {
		badBody(c, err)
		return
	}
	st, err := h.svc.ApplyCommand(c.Request.Context(), c.Param("match_id"), cmd)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, st)
}

func pageFrom(c *gin.Context) repository.Page {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return repository.Page{Limit: limit, Offset: offset}
}
