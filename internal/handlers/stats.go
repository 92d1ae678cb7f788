package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// @Summary      Dashboard statistics
// @Description  Totals and per-month spend over all time; the 12-cell activity map covers only the selected year (defaults to the current one).
// @Tags         stats
// @Produce      json
// @Param        year  query  int  false  "Selected year"  example(2024)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/stats [get]
// @Security     BearerAuth
func (h *Handler) getStats(c *gin.Context) {
	year := 0
	if s := c.Query("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'year'; use a four-digit year"})
			return
		}
		year = v
	}

	stats, err := h.services.Dashboard(c.Request.Context(), userID(c), year)
	if err != nil {
		h.serviceError(c, err, "stats_failed")
		return
	}
	c.JSON(http.StatusOK, stats)
}
