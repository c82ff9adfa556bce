package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Ashura8/proyectobackend/internal/mailer"
	"github.com/Ashura8/proyectobackend/internal/model"
	"github.com/Ashura8/proyectobackend/pkg/logger"
	"github.com/Ashura8/proyectobackend/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmailHandler handles outbound notification emails
type EmailHandler struct {
	db     *gorm.DB
	sender mailer.Sender
}

// NewEmailHandler creates an email handler with its dependencies
func NewEmailHandler(db *gorm.DB, sender mailer.Sender) *EmailHandler {
	return &EmailHandler{db: db, sender: sender}
}

// SendEmail delivers a support notification and records it. The log row is
// only written after the send succeeded, so the dashboard never references
// mail that was not delivered.
func (h *EmailHandler) SendEmail(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Recipient  string `json:"recipient"`
		Department string `json:"department"`
		Message    string `json:"message"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse email request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Recipient == "" {
		log.Warn("Missing email recipient")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "recipient is required"})
	}

	subject := fmt.Sprintf("Soporte Técnico - %s", req.Department)
	if err := h.sender.Send(req.Recipient, subject, req.Message); err != nil {
		log.Error("Failed to send email",
			zap.String("recipient", req.Recipient),
			zap.Error(err))
		prometheus.RecordEmailResult("failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to send email"})
	}
	prometheus.RecordEmailResult("sent")

	emailLog := model.EmailLog{
		Recipient:  req.Recipient,
		Department: req.Department,
		Message:    req.Message,
		SentAt:     time.Now(),
	}
	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := h.db.WithContext(c.Request().Context()).Create(&emailLog); result.Error != nil {
		log.Error("Email sent but could not be recorded", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "email sent but could not be recorded"})
	}

	log.Info("Email sent",
		zap.String("recipient", req.Recipient),
		zap.String("department", req.Department))
	return c.JSON(http.StatusOK, echo.Map{"message": "email sent successfully"})
}
