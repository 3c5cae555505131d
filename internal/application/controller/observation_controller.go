package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lindas-hydro/internal/domain/usecase/observation"
	"lindas-hydro/pkg/util/numberutils"
)

const (
	defaultPageSize = 50
	maxPageSize     = 1000
)

type ObservationController struct {
	api     *echo.Group
	useCase observation.UseCase
}

func NewObservationController(api *echo.Group, useCase observation.UseCase) *ObservationController {
	return &ObservationController{api: api, useCase: useCase}
}

// InitObservationRoutes initializes observation routes
func (controller *ObservationController) InitObservationRoutes() {
	controller.api.GET("/observations", controller.FindPage)
	controller.api.GET("/observations/latest", controller.Latest)
}

// FindPage lists stored observations newest first, optionally filtered by station.
func (controller *ObservationController) FindPage(c echo.Context) error {
	page := max(numberutils.ToIntWithDefault(c.QueryParam("page"), 0), 0)
	size := numberutils.ClampInt(numberutils.ToIntWithDefault(c.QueryParam("size"), defaultPageSize), 1, maxPageSize)

	observationsPage, err := controller.useCase.FindPage(c.QueryParam("station"), page, size)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, observationsPage)
}

// Latest returns the most recent observation of every station.
func (controller *ObservationController) Latest(c echo.Context) error {
	latest, err := controller.useCase.Latest(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, latest)
}
