package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Ashura8/proyectobackend/internal/workflow"
	"github.com/Ashura8/proyectobackend/pkg/logger"
	"github.com/Ashura8/proyectobackend/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ServiceHandler handles the service dashboard, detail and assignment routes
type ServiceHandler struct {
	store *workflow.Store
}

// NewServiceHandler creates a service handler with its dependencies
func NewServiceHandler(store *workflow.Store) *ServiceHandler {
	return &ServiceHandler{store: store}
}

// ListServices returns the denormalized dashboard view of every service
func (h *ServiceHandler) ListServices(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordWorkflowOperation("list")

	defer prometheus.TrackDBOperation("query")(time.Now())
	rows, err := h.store.ListServices(c.Request().Context())
	if err != nil {
		log.Error("Failed to list services", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve services"})
	}

	log.Info("Services retrieved successfully", zap.Int("count", len(rows)))
	return c.JSON(http.StatusOK, rows)
}

// GetServiceDetail returns one service joined with its request
func (h *ServiceHandler) GetServiceDetail(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordWorkflowOperation("detail")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		log.Warn("Invalid service id", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service id"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	detail, err := h.store.ServiceDetail(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, workflow.ErrServiceNotFound) {
			log.Warn("Service not found", zap.Uint64("service_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		}
		log.Error("Failed to get service detail", zap.Uint64("service_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve service detail"})
	}

	return c.JSON(http.StatusOK, detail)
}

// AssignServices assigns a technician to a batch of services. The batch is
// all-or-nothing: one unknown id rolls back every update.
func (h *ServiceHandler) AssignServices(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordWorkflowOperation("assign")

	var req struct {
		ServiceIDs []uint `json:"serviceIds"`
		Technician string `json:"technician"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse assignment request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	err := h.store.AssignServices(c.Request().Context(), req.ServiceIDs, req.Technician)
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrEmptyBatch), errors.Is(err, workflow.ErrMissingTechnician):
			log.Warn("Invalid assignment request", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, workflow.ErrServiceNotFound):
			log.Warn("Assignment batch contains unknown service",
				zap.Uints("service_ids", req.ServiceIDs))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "one or more services not found, no assignments applied"})
		default:
			log.Error("Failed to assign services", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to assign services"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "services assigned successfully"})
}
