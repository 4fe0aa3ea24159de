package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const errListExperiments = "failed to load experiments"

// @Summary      List recording runs
// @Description  All experiment recording runs with start/stop times and final sample counts.
// @Tags         experiments
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, runs"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/experiments [get]
func (h *Handler) getExperiments(c *gin.Context) {
	runs, err := h.services.Experiments.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListExperiments, "experiments_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(runs),
		"runs":  runs,
	})
}
