package handlers

import (
	"errors"
	"net/http"

	"greenhouse_sim/internal/repository"
	"greenhouse_sim/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errSimulate     = "failed to run simulation"
	errSweep        = "failed to run sweep"
	errLoadSweeps   = "failed to load sweeps"
	errSweepMissing = "sweep not found"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondServiceError maps caller mistakes to 400, missing rows to 404 and
// everything else to 500 with a fixed message.
func (h *Handler) respondServiceError(c *gin.Context, userMsg, logKey string, err error, kv ...interface{}) {
	switch {
	case service.IsValidation(err):
		if h.log != nil {
			h.log.Infow(logKey, append([]interface{}{"err", err}, kv...)...)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errSweepMissing})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err, kv...)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Reference catalog
// @Description  Crops, materials, climates, nursery prices and market price plans.
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  service.CatalogSnapshot
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/catalog [get]
// @Security     BearerAuth
func (h *Handler) getCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Catalog.Snapshot(c.Request.Context()))
}

// @Summary      Annual simulation
// @Description  Twelve-month microclimate, yield and revenue simulation of a greenhouse design.
// @Tags         simulation
// @Accept       json
// @Produce      json
// @Param        body  body      service.SimulationRequest  true  "Design, climate and crop plan"
// @Success      200   {object}  models.AnnualSimulationResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/simulate [post]
// @Security     BearerAuth
func (h *Handler) simulate(c *gin.Context) {
	var req service.SimulationRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	res, err := h.services.Simulation.Simulate(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, errSimulate, "simulate_failed", err, "user_id", currentUser(c))
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Hourly day simulation
// @Description  Indoor temperature hour by hour for one day of outdoor observations.
// @Tags         simulation
// @Accept       json
// @Produce      json
// @Param        body  body      service.DayRequest  true  "Design and hourly weather"
// @Success      200   {object}  models.DaySimulationResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/simulate/day [post]
// @Security     BearerAuth
func (h *Handler) simulateDay(c *gin.Context) {
	var req service.DayRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	res, err := h.services.Simulation.SimulateDay(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, errSimulate, "simulate_day_failed", err, "user_id", currentUser(c))
		return
	}
	c.JSON(http.StatusOK, res)
}
