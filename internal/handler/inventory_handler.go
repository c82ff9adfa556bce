package handler

import (
	"net/http"
	"time"

	"github.com/Ashura8/proyectobackend/internal/model"
	"github.com/Ashura8/proyectobackend/pkg/logger"
	"github.com/Ashura8/proyectobackend/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InventoryHandler handles the inventory ledger routes
type InventoryHandler struct {
	db *gorm.DB
}

// NewInventoryHandler creates an inventory handler with its dependencies
func NewInventoryHandler(db *gorm.DB) *InventoryHandler {
	return &InventoryHandler{db: db}
}

// InventoryItemRequest defines the structure for item creation requests.
// Dates are accepted as "2006-01-02" or RFC3339.
type InventoryItemRequest struct {
	ProductType     string  `json:"product_type"`
	ProductName     string  `json:"product_name"`
	Brand           *string `json:"brand"`
	Model           *string `json:"model"`
	Condition       string  `json:"condition"`
	Location        string  `json:"location"`
	IntakeDate      string  `json:"intake_date"`
	LastMaintenance *string `json:"last_maintenance"`
	Notes           *string `json:"notes"`
}

// ListItems handles retrieving all inventory rows. The inventory is small
// by design, so there is no pagination or filtering.
func (h *InventoryHandler) ListItems(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordInventoryOperation("list")

	defer prometheus.TrackDBOperation("query")(time.Now())
	var items []model.InventoryItem
	result := h.db.WithContext(c.Request().Context()).Find(&items)
	if result.Error != nil {
		log.Error("Failed to list inventory", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve inventory"})
	}

	log.Info("Inventory retrieved successfully", zap.Int("count", len(items)))
	return c.JSON(http.StatusOK, items)
}

// CreateItem handles registering a new inventory item. The created item,
// including its generated id, is returned.
func (h *InventoryHandler) CreateItem(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordInventoryOperation("create")

	var req InventoryItemRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.ProductType == "" || req.ProductName == "" || req.Condition == "" ||
		req.Location == "" || req.IntakeDate == "" {
		log.Warn("Missing required inventory fields",
			zap.String("product_name", req.ProductName))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_type, product_name, condition, location and intake_date are required"})
	}

	intakeDate, err := parseDate(req.IntakeDate)
	if err != nil {
		log.Warn("Invalid intake_date", zap.String("value", req.IntakeDate), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid intake_date"})
	}

	var lastMaintenance *time.Time
	if req.LastMaintenance != nil && *req.LastMaintenance != "" {
		parsed, err := parseDate(*req.LastMaintenance)
		if err != nil {
			log.Warn("Invalid last_maintenance", zap.String("value", *req.LastMaintenance), zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid last_maintenance"})
		}
		lastMaintenance = &parsed
	}

	item := model.InventoryItem{
		ProductType:     req.ProductType,
		ProductName:     req.ProductName,
		Brand:           req.Brand,
		Model:           req.Model,
		Condition:       req.Condition,
		Location:        req.Location,
		IntakeDate:      intakeDate,
		LastMaintenance: lastMaintenance,
		Notes:           req.Notes,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := h.db.WithContext(c.Request().Context()).Create(&item); result.Error != nil {
		log.Error("Failed to create inventory item",
			zap.String("product_name", req.ProductName),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create inventory item"})
	}

	log.Info("Inventory item created",
		zap.Uint("item_id", item.ID),
		zap.String("product_name", item.ProductName))
	return c.JSON(http.StatusCreated, item)
}

// parseDate accepts a plain date or a full RFC3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
