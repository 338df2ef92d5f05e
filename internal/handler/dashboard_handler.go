package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Shubham-2704/AgriNova/internal/dashboard"
	apperrors "github.com/Shubham-2704/AgriNova/internal/errors"
)

// DashboardHandler exposes the prediction page operations.
type DashboardHandler struct {
	orchestrator *dashboard.Orchestrator
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(orchestrator *dashboard.Orchestrator) *DashboardHandler {
	return &DashboardHandler{orchestrator: orchestrator}
}

// LocationRequest selects the (state, city) pair.
type LocationRequest struct {
	State string `json:"state" validate:"required"`
	City  string `json:"city"`
}

// PredictRequest is the prediction form. Area stays textual until the
// orchestrator parses it.
type PredictRequest struct {
	Season            string `json:"season" validate:"required"`
	SoilType          string `json:"soil_type" validate:"required"`
	WaterAvailability string `json:"water_availability" validate:"required"`
	Area              string `json:"area" validate:"required"`
}

// View returns the current dashboard snapshot.
func (h *DashboardHandler) View(c echo.Context) error {
	cid, err := clientID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.orchestrator.View(cid))
}

// Options loads the selector value sets (at most one backend fetch per
// client) and returns the resulting view.
func (h *DashboardHandler) Options(c echo.Context) error {
	cid, err := clientID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.orchestrator.LoadOptions(c.Request().Context(), cid))
}

// SetLocation records a new location and refetches weather for it.
func (h *DashboardHandler) SetLocation(c echo.Context) error {
	var req LocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cid, err := clientID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.orchestrator.SetLocation(c.Request().Context(), cid, req.State, req.City))
}

// Weather returns the snapshot for the current selection without fetching.
func (h *DashboardHandler) Weather(c echo.Context) error {
	cid, err := clientID(c)
	if err != nil {
		return err
	}
	view := h.orchestrator.View(cid)
	return c.JSON(http.StatusOK, echo.Map{
		"selection":     view.Selection,
		"weather":       view.Weather,
		"weather_error": view.WeatherError,
		"phase":         view.Phase,
	})
}

// Predict submits the farm parameters for a recommendation.
func (h *DashboardHandler) Predict(c echo.Context) error {
	var req PredictRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cid, err := clientID(c)
	if err != nil {
		return err
	}

	view, err := h.orchestrator.Submit(c.Request().Context(), cid, dashboard.SubmitInput{
		Season:            req.Season,
		SoilType:          req.SoilType,
		WaterAvailability: req.WaterAvailability,
		Area:              req.Area,
	})
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, echo.Map{
			"error": he.Message,
			"code":  he.Code,
			"view":  view,
		})
	}
	return c.JSON(http.StatusOK, view)
}

// ToggleExpand flips between top-3 and top-6 display without refetching.
func (h *DashboardHandler) ToggleExpand(c echo.Context) error {
	cid, err := clientID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.orchestrator.ToggleExpand(cid))
}
