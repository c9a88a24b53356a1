package terminals

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TerminalService/internal/domain"
	terminalRepo "github.com/m04kA/SMC-TerminalService/internal/infra/storage/terminal"
	"github.com/m04kA/SMC-TerminalService/internal/service/terminals/models"
)

// Service сервис для работы с терминалами
type Service struct {
	terminalRepo TerminalRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса терминалов
func NewService(terminalRepo TerminalRepository, logger Logger) *Service {
	return &Service{
		terminalRepo: terminalRepo,
		logger:       logger,
	}
}

// Create регистрирует новый терминал
func (s *Service) Create(ctx context.Context, req *models.CreateTerminalRequest) (*models.TerminalResponse, error) {
	s.logger.Info("Create: registering terminal for owner=%d at (%f, %f)", req.OwnerID, req.Latitude, req.Longitude)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	status := domain.TerminalStatusAvailable
	if req.Status != nil {
		parsed, err := models.ToDomainTerminalStatus(*req.Status)
		if err != nil {
			s.logger.Warn("Create: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidStatus)
		}
		status = parsed
	}

	terminal := &domain.Terminal{
		PublicID:  uuid.New(),
		OwnerID:   req.OwnerID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Status:    status,
	}

	created, err := s.terminalRepo.Create(ctx, terminal)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully registered terminal id=%d public_id=%s", created.ID, created.PublicID)
	return models.FromDomainTerminal(created), nil
}

// GetByPublicID получает терминал по публичному идентификатору
func (s *Service) GetByPublicID(ctx context.Context, publicID uuid.UUID) (*models.TerminalResponse, error) {
	s.logger.Info("GetByPublicID: fetching terminal %s", publicID)

	terminal, err := s.terminalRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, terminalRepo.ErrTerminalNotFound) {
			s.logger.Warn("GetByPublicID: terminal %s not found", publicID)
			return nil, ErrTerminalNotFound
		}
		s.logger.Error("GetByPublicID: repository error for terminal %s: %v", publicID, err)
		return nil, fmt.Errorf("%w: GetByPublicID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTerminal(terminal), nil
}

// List возвращает все зарегистрированные терминалы
func (s *Service) List(ctx context.Context) (*models.TerminalListResponse, error) {
	s.logger.Info("List: fetching all terminals")

	terminals, err := s.terminalRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d terminals", len(terminals))
	return models.FromDomainTerminalList(terminals), nil
}

// UpdateStatus вручную меняет статус терминала
// Доступно только владельцу терминала. Флаг занятости меняется вместе со
// статусом одним обновлением
func (s *Service) UpdateStatus(ctx context.Context, publicID uuid.UUID, req *models.UpdateStatusRequest) (*models.TerminalResponse, error) {
	s.logger.Info("UpdateStatus: updating terminal %s to status=%s by user=%d", publicID, req.Status, req.UserID)

	terminal, err := s.terminalRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, terminalRepo.ErrTerminalNotFound) {
			s.logger.Warn("UpdateStatus: terminal %s not found", publicID)
			return nil, ErrTerminalNotFound
		}
		s.logger.Error("UpdateStatus: repository error for terminal %s: %v", publicID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if terminal.OwnerID != req.UserID {
		s.logger.Warn("UpdateStatus: user=%d is not the owner of terminal %s", req.UserID, publicID)
		return nil, ErrAccessDenied
	}

	status, err := models.ToDomainTerminalStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for terminal %s", req.Status, publicID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	if err := s.terminalRepo.SetOccupancy(ctx, terminal.ID, status); err != nil {
		if errors.Is(err, terminalRepo.ErrTerminalNotFound) {
			return nil, ErrTerminalNotFound
		}
		s.logger.Error("UpdateStatus: repository error for terminal %s: %v", publicID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	terminal.Status = status

	s.logger.Info("UpdateStatus: successfully updated terminal %s to status=%s", publicID, status)
	return models.FromDomainTerminal(terminal), nil
}

// Delete удаляет терминал
// Доступно только владельцу терминала
func (s *Service) Delete(ctx context.Context, publicID uuid.UUID, userID int64) error {
	s.logger.Info("Delete: deleting terminal %s by user=%d", publicID, userID)

	terminal, err := s.terminalRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, terminalRepo.ErrTerminalNotFound) {
			s.logger.Warn("Delete: terminal %s not found", publicID)
			return ErrTerminalNotFound
		}
		s.logger.Error("Delete: repository error for terminal %s: %v", publicID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if terminal.OwnerID != userID {
		s.logger.Warn("Delete: user=%d is not the owner of terminal %s", userID, publicID)
		return ErrAccessDenied
	}

	if err := s.terminalRepo.Delete(ctx, terminal.ID); err != nil {
		if errors.Is(err, terminalRepo.ErrTerminalNotFound) {
			return ErrTerminalNotFound
		}
		s.logger.Error("Delete: repository error for terminal %s: %v", publicID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted terminal %s", publicID)
	return nil
}

// validateCreateRequest валидирует запрос на регистрацию терминала
func validateCreateRequest(req *models.CreateTerminalRequest) error {
	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	if req.Latitude < domain.MinLatitude || req.Latitude > domain.MaxLatitude {
		return fmt.Errorf("%w: latitude must be within [%v, %v]", ErrInvalidInput, domain.MinLatitude, domain.MaxLatitude)
	}

	if req.Longitude < domain.MinLongitude || req.Longitude > domain.MaxLongitude {
		return fmt.Errorf("%w: longitude must be within [%v, %v]", ErrInvalidInput, domain.MinLongitude, domain.MaxLongitude)
	}

	return nil
}
