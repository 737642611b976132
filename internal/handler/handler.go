package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maxviazov/hockey-match-engine/internal/service"
)

// Register mounts all public routes on the given engine. extra readiness
// checks are reported next to the store.
func Register(r *gin.Engine, repo Pinger, matchSvc service.MatchService, extra ...Check) {
	h := NewHealthHandler(repo, extra...)

	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	RegisterDocs(r)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewMatchHandler(matchSvc).Register(api)
	}
}
