package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const errGetStatus = "failed to load session state"

// @Summary      Current session state
// @Description  Mode, active experiment and per-channel sample counts, plus the last telemetry line seen.
// @Tags         session
// @Produce      json
// @Success      200  {object}  models.SessionStatus
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/session/state [get]
func (h *Handler) getSessionState(c *gin.Context) {
	st, err := h.services.Monitoring.GetStatus(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetStatus, "session_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}
