package controllers

import (
	"net/http"

	"fakecheckapi/models"
	"fakecheckapi/services"

	"github.com/labstack/echo/v4"
)

type HealthController struct {
	Provider services.VisionProvider
}

func (controller *HealthController) HealthRoutes(g *echo.Group) {
	g.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, models.HealthResponse{
			Status:   "ok",
			Provider: string(controller.Provider.Name()),
			Model:    controller.Provider.Model(),
		})
	})
}
