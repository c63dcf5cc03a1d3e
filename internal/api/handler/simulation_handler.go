package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sustaincity/city-backend/internal/core/domain"
	"github.com/sustaincity/city-backend/internal/core/ports"
)

type SimulationHandler struct {
	simulations ports.SimulationService
}

func NewSimulationHandler(simulations ports.SimulationService) *SimulationHandler {
	return &SimulationHandler{simulations: simulations}
}

// List returns a snapshot of all simulations.
//
// @Summary      List simulations
// @Tags         simulations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Simulation
// @Router       /api/simulations [get]
func (h *SimulationHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.simulations.List(c.Request().Context()))
}

// Run submits a new simulation. The response carries the record in the
// running state; clients poll List to see it finish.
//
// @Summary      Run a simulation
// @Tags         simulations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      map[string]any  true  "Simulation parameters"
// @Success      200   {object}  domain.Simulation
// @Failure      400   {object}  map[string]string
// @Router       /api/simulations/run [post]
func (h *SimulationHandler) Run(c echo.Context) error {
	params := domain.Params{}
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	sim, err := h.simulations.Submit(c.Request().Context(), params, callerUsername(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sim)
}

// Delete removes a simulation regardless of its status. An in-flight
// background run becomes a no-op.
//
// @Summary      Delete a simulation
// @Tags         simulations
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Simulation id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/simulations/{id} [delete]
func (h *SimulationHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid simulation id")
	}

	if !h.simulations.Delete(c.Request().Context(), id) {
		return domain.ErrSimulationNotFound
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Simulation deleted successfully"})
}
