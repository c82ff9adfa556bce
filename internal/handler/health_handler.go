package handler

import (
	"net/http"

	"github.com/Ashura8/proyectobackend/prometheus"

	"github.com/labstack/echo/v4"
)

// HealthCheck handles the health check endpoint
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"service": "proyectobackend",
	})
}

// MetricsHandler exposes the Prometheus metrics endpoint
func MetricsHandler(c echo.Context) error {
	handler := prometheus.GetPrometheusHandler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
