package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"greenhouse_sim/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      Run a design sweep
// @Description  Varies one design variable over a half-open range and returns every point with the most profitable one. The run is stored in the caller's history.
// @Tags         sweeps
// @Accept       json
// @Produce      json
// @Param        body  body      service.SweepRequest  true  "Base simulation, variable, optional range and cost parameters"
// @Success      200   {object}  models.SweepRun
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/sweep [post]
// @Security     BearerAuth
func (h *Handler) runSweep(c *gin.Context) {
	var req service.SweepRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	userID := currentUser(c)
	run, err := h.services.Optimizer.Sweep(c.Request.Context(), userID, req, nil)
	if err != nil {
		h.respondServiceError(c, errSweep, "sweep_failed", err, "user_id", userID, "variable", req.Variable)
		return
	}
	c.JSON(http.StatusOK, run)
}

// @Summary      List sweeps
// @Description  Filter the caller's sweeps by creation date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). If 'to' is date-only, it is treated as end-of-day inclusive (23:59:59.999999999Z).
// @Tags         sweeps
// @Produce      json
// @Param        from      query   string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2025-08-01)
// @Param        to        query   string  false  "End of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). Date-only treated as end of day."  example(2025-08-31)
// @Param        variable  query   string  false  "Swept variable"  Enums(exhaust_fans,shading,roof_vent,fog)
// @Success      200   {object}  map[string]interface{}  "count, sweeps"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/sweeps [get]
// @Security     BearerAuth
func (h *Handler) listSweeps(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		from time.Time
		to   time.Time
		err  error
	)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	// If the user didn't include a time component, treat "to" as the end of that day.
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'from' must be <= 'to'"})
		return
	}

	userID := currentUser(c)
	runs, err := h.services.History.List(ctx, service.HistoryFilter{
		OwnerID:  userID,
		From:     from,
		To:       to,
		Variable: c.Query("variable"),
	})
	if err != nil {
		h.respondServiceError(c, errLoadSweeps, "sweeps_list_failed", err, "from", from, "to", to, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(runs),
		"sweeps": runs,
	})
}

// @Summary      Get sweep
// @Tags         sweeps
// @Produce      json
// @Param        id   path      string  true  "Sweep run id"
// @Success      200  {object}  models.SweepRun
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/sweeps/{id} [get]
// @Security     BearerAuth
func (h *Handler) getSweep(c *gin.Context) {
	run, err := h.services.History.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, errLoadSweeps, "sweep_get_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, run)
}

func parseQueryTime(s string) (time.Time, error) {
	// Try multiple accepted formats, normalizing to UTC.
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
