package copilot

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/domain/repositories"
)

// Service manages the AI Co-Pilot alert feed
type Service struct {
	alerts repositories.AlertRepository
	logger *zap.Logger
}

// NewService creates a new Co-Pilot service
func NewService(alerts repositories.AlertRepository, logger *zap.Logger) *Service {
	return &Service{alerts: alerts, logger: logger}
}

// Feed returns the school's non-dismissed alerts, newest first
func (s *Service) Feed(ctx context.Context, schoolID uuid.UUID) ([]*entities.AIAlert, error) {
	alerts, err := s.alerts.ListActive(ctx, schoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

// Raise adds an alert to the feed
func (s *Service) Raise(ctx context.Context, schoolID uuid.UUID, alertType entities.AlertType, details map[string]interface{}) (*entities.AIAlert, error) {
	alert, err := entities.NewAIAlert(schoolID, alertType, details)
	if err != nil {
		return nil, err
	}
	if err := s.alerts.Create(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}
	return alert, nil
}

// SetStatus marks an alert viewed or dismissed
func (s *Service) SetStatus(ctx context.Context, schoolID, alertID uuid.UUID, status entities.AlertStatus) (*entities.AIAlert, error) {
	if !status.IsSettable() {
		return nil, entities.ErrInvalidAlertStatus
	}

	alert, err := s.alerts.UpdateStatus(ctx, schoolID, alertID, status)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("copilot.alert.status_changed",
			zap.String("alert_id", alertID.String()),
			zap.String("status", string(status)),
		)
	}
	return alert, nil
}
