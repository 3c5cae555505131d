package controller

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"lindas-hydro/internal/domain/model"
	"lindas-hydro/internal/domain/usecase/collect"
)

type CollectionController struct {
	api     *echo.Group
	useCase collect.UseCase
	ctx     context.Context
	running sync.WaitGroup
}

// NewCollectionController builds the controller. Runs triggered over HTTP are cancelled with ctx.
func NewCollectionController(ctx context.Context, api *echo.Group, useCase collect.UseCase) *CollectionController {
	return &CollectionController{api: api, useCase: useCase, ctx: ctx}
}

// InitCollectionRoutes initializes collection routes
func (controller *CollectionController) InitCollectionRoutes() {
	controller.api.POST("/collections", controller.Trigger)
	controller.api.GET("/collections/last", controller.Last)
}

// Trigger starts a collection in the background and answers with its run id.
func (controller *CollectionController) Trigger(c echo.Context) error {
	runID := uuid.New().String()

	controller.running.Add(1)
	go func() {
		defer controller.running.Done()
		_, _ = controller.useCase.Run(controller.ctx, runID)
	}()

	return c.JSON(http.StatusAccepted, model.CollectionAccepted{RunID: runID})
}

// Last returns the outcome of the last collection run.
func (controller *CollectionController) Last(c echo.Context) error {
	summary := controller.useCase.Summary()
	if summary == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No collection has run yet"})
	}
	return c.JSON(http.StatusOK, summary)
}

// Wait blocks until every triggered collection has finished.
func (controller *CollectionController) Wait() {
	controller.running.Wait()
}
