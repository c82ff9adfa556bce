package handler

import (
	"net/http"
	"time"

	"github.com/Ashura8/proyectobackend/internal/workflow"
	"github.com/Ashura8/proyectobackend/pkg/logger"
	"github.com/Ashura8/proyectobackend/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestHandler handles fault report registration
type RequestHandler struct {
	store *workflow.Store
}

// NewRequestHandler creates a request handler with its dependencies
func NewRequestHandler(store *workflow.Store) *RequestHandler {
	return &RequestHandler{store: store}
}

// RegisterRequest registers a fault report together with its service record
func (h *RequestHandler) RegisterRequest(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordWorkflowOperation("register")

	var req struct {
		Department string `json:"department"`
		FaultType  string `json:"faultType"`
		Message    string `json:"message"`
		ReportedBy string `json:"reportedBy"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse request registration", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Department == "" || req.FaultType == "" || req.Message == "" || req.ReportedBy == "" {
		log.Warn("Missing required request fields",
			zap.String("department", req.Department),
			zap.String("fault_type", req.FaultType))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "department, faultType, message and reportedBy are required"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	requestID, err := h.store.RegisterRequest(c.Request().Context(), workflow.RegisterRequestInput{
		Department: req.Department,
		FaultType:  req.FaultType,
		Message:    req.Message,
		ReportedBy: req.ReportedBy,
	})
	if err != nil {
		log.Error("Failed to register request and service", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to register request and service"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":   "request and service registered successfully",
		"requestId": requestID,
	})
}
