// Package workflow implements the request/service registration and
// assignment operations. Both writes are multi-statement and run inside a
// single database transaction: a fault report never persists without its
// service record, and a batch assignment either updates every service in
// the batch or none of them.
package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/Ashura8/proyectobackend/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrServiceNotFound is returned when a service id does not exist.
	ErrServiceNotFound = errors.New("service not found")
	// ErrEmptyBatch is returned when an assignment carries no service ids.
	ErrEmptyBatch = errors.New("no services selected for assignment")
	// ErrMissingTechnician is returned when an assignment has no technician.
	ErrMissingTechnician = errors.New("technician is required")
)

// Store executes the request/service workflow against an injected database
// handle.
type Store struct {
	logger *zap.Logger
	db     *gorm.DB
}

// NewStore creates a workflow store backed by db.
func NewStore(logger *zap.Logger, db *gorm.DB) *Store {
	return &Store{
		logger: logger,
		db:     db,
	}
}

// RegisterRequestInput carries the fields of a new fault report.
type RegisterRequestInput struct {
	Department string
	FaultType  string
	Message    string
	ReportedBy string
}

// RegisterRequest stores a fault report and its service record in one
// transaction. Returns the id of the new request. On any failure both
// inserts are rolled back.
func (s *Store) RegisterRequest(ctx context.Context, in RegisterRequestInput) (uint, error) {
	var requestID uint

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request := model.ServiceRequest{
			Department: in.Department,
			FaultType:  in.FaultType,
			Message:    in.Message,
			ReportedBy: in.ReportedBy,
			Status:     model.StatusPending,
			CreatedAt:  time.Now(),
		}
		if err := tx.Create(&request).Error; err != nil {
			return err
		}

		service := model.Service{
			RequestID: request.ID,
			Status:    model.StatusPending,
		}
		if err := tx.Create(&service).Error; err != nil {
			return err
		}

		requestID = request.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("service request registered",
		zap.Uint("request_id", requestID),
		zap.String("department", in.Department),
		zap.String("fault_type", in.FaultType))
	return requestID, nil
}

// AssignServices assigns every service in ids to technician and moves it to
// InProgress, all inside one transaction. If any id does not resolve to a
// service the whole batch is rolled back and ErrServiceNotFound is returned.
func (s *Store) AssignServices(ctx context.Context, ids []uint, technician string) error {
	if len(ids) == 0 {
		return ErrEmptyBatch
	}
	if technician == "" {
		return ErrMissingTechnician
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			result := tx.Model(&model.Service{}).
				Where("id = ?", id).
				Updates(map[string]interface{}{
					"technician": technician,
					"status":     model.StatusInProgress,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrServiceNotFound
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("services assigned",
		zap.Uints("service_ids", ids),
		zap.String("technician", technician))
	return nil
}

// ServiceDetail is the denormalized view of one service joined with its
// request.
type ServiceDetail struct {
	ID              uint       `json:"id"`
	Status          string     `json:"status"`
	Technician      *string    `json:"technician"`
	MaterialsUsed   *string    `json:"materials_used"`
	AttendedAt      *time.Time `json:"attended_at"`
	DurationMinutes *int       `json:"duration_minutes"`
	Department      string     `json:"department"`
	FaultType       string     `json:"faultType"`
	Message         string     `json:"message"`
	ReportedBy      string     `json:"reportedBy"`
	RequestStatus   string     `json:"request_status"`
	RequestedAt     time.Time  `json:"requested_at"`
}

// ServiceDetail returns the joined view of one service. The id is always
// bound as a query parameter.
func (s *Store) ServiceDetail(ctx context.Context, id uint) (*ServiceDetail, error) {
	var detail ServiceDetail
	result := s.db.WithContext(ctx).
		Table("services AS s").
		Select(`s.id, s.status, s.technician, s.materials_used, s.attended_at, s.duration_minutes,
			r.department, r.fault_type, r.message, r.reported_by,
			r.status AS request_status, r.created_at AS requested_at`).
		Joins("JOIN service_requests AS r ON r.id = s.request_id").
		Where("s.id = ?", id).
		Scan(&detail)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrServiceNotFound
	}
	return &detail, nil
}

// ServiceRow is one line of the service dashboard: the service joined with
// its request, the inventory item it concerns and the last notification
// sent for it.
type ServiceRow struct {
	ID              uint       `json:"id"`
	Status          string     `json:"status"`
	Technician      *string    `json:"technician"`
	MaterialsUsed   *string    `json:"materials_used"`
	AttendedAt      *time.Time `json:"attended_at"`
	DurationMinutes *int       `json:"duration_minutes"`
	Department      *string    `json:"department"`
	FaultType       *string    `json:"faultType"`
	Message         *string    `json:"message"`
	ReportedBy      *string    `json:"reportedBy"`
	EquipmentName   *string    `json:"equipment_name"`
	EmailRecipient  *string    `json:"email_recipient"`
}

// ListServices returns the dashboard read model for every service.
func (s *Store) ListServices(ctx context.Context) ([]ServiceRow, error) {
	var rows []ServiceRow
	result := s.db.WithContext(ctx).
		Table("services AS s").
		Select(`s.id, s.status, s.technician, s.materials_used, s.attended_at, s.duration_minutes,
			r.department, r.fault_type, r.message, r.reported_by,
			i.product_name AS equipment_name,
			e.recipient AS email_recipient`).
		Joins("LEFT JOIN service_requests AS r ON r.id = s.request_id").
		Joins("LEFT JOIN inventory_items AS i ON i.id = s.inventory_item_id").
		Joins("LEFT JOIN email_logs AS e ON e.id = s.email_log_id").
		Order("s.id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}
