package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Request an AI maintenance analysis
// @Description  Fire-and-forget: marks the car's insight slot pending and returns immediately. On any collaborator failure the slot receives a fixed apology text instead of an error.
// @Tags         insight
// @Produce      json
// @Param        id  path  string  true  "Car id"
// @Success      202  {object}  map[string]interface{}  "insight slot"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/cars/{id}/insight [post]
// @Security     BearerAuth
func (h *Handler) requestInsight(c *gin.Context) {
	slot, err := h.services.Request(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		h.serviceError(c, err, "insight_request_failed")
		return
	}
	c.JSON(http.StatusAccepted, slot)
}

// @Summary      Read the current insight slot
// @Tags         insight
// @Produce      json
// @Param        id  path  string  true  "Car id"
// @Success      200  {object}  map[string]interface{}  "insight slot"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/cars/{id}/insight [get]
// @Security     BearerAuth
func (h *Handler) getInsight(c *gin.Context) {
	// Ownership check before exposing the slot.
	if _, err := h.services.GetCar(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.serviceError(c, err, "insight_get_failed")
		return
	}
	c.JSON(http.StatusOK, h.services.Insight.Get(c.Param("id")))
}
