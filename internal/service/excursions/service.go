package excursions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
	excursionRepo "github.com/wildroute/ExcursionBookingService/internal/infra/storage/excursion"
	userClient "github.com/wildroute/ExcursionBookingService/internal/integrations/userservice"
	"github.com/wildroute/ExcursionBookingService/internal/service/excursions/models"
)

// Service сервис управления экскурсиями
type Service struct {
	excursionRepo ExcursionRepository
	userClient    UserServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса экскурсий
func NewService(
	excursionRepo ExcursionRepository,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		excursionRepo: excursionRepo,
		userClient:    userClient,
		logger:        logger,
	}
}

// Create создает новую экскурсию
// Доступно гиду и админу; явного гида может назначить только админ,
// иначе гидом становится создатель
func (s *Service) Create(ctx context.Context, req *models.CreateExcursionRequest) (*models.ExcursionResponse, error) {
	s.logger.Info("Create: creating excursion %q by user=%d", req.Title, req.ActingUserID)

	if err := validateTitle(req.Title); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}
	if req.Capacity < domain.MinCapacity {
		s.logger.Warn("Create: invalid capacity=%d", req.Capacity)
		return nil, fmt.Errorf("%w: capacity must be at least %d", ErrInvalidInput, domain.MinCapacity)
	}

	actor, err := s.getUser(ctx, req.ActingUserID)
	if err != nil {
		return nil, err
	}

	role := domain.UserRole(actor.Role)
	if !role.IsGuide() && !role.IsAdmin() {
		s.logger.Warn("Create: user=%d is neither guide nor admin", req.ActingUserID)
		return nil, ErrAccessDenied
	}

	guideID := req.ActingUserID
	if req.GuideID != nil {
		if !role.IsAdmin() {
			s.logger.Warn("Create: user=%d attempted to assign guide=%d without admin role",
				req.ActingUserID, *req.GuideID)
			return nil, ErrAccessDenied
		}
		guideID = *req.GuideID
	}

	excursion := &domain.Excursion{
		Title:    strings.TrimSpace(req.Title),
		Capacity: req.Capacity,
		IsActive: true,
		GuideID:  guideID,
	}

	created, err := s.excursionRepo.Create(ctx, excursion)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created excursion id=%d", created.ID)
	return models.FromDomainExcursion(created), nil
}

// GetByID получает экскурсию по ID, включая скрытые
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ExcursionResponse, error) {
	excursion, err := s.excursionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, excursionRepo.ErrExcursionNotFound) {
			s.logger.Warn("GetByID: excursion id=%d not found", id)
			return nil, ErrExcursionNotFound
		}
		s.logger.Error("GetByID: repository error for excursion id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainExcursion(excursion), nil
}

// ListActive возвращает активные экскурсии от новых к старым
func (s *Service) ListActive(ctx context.Context) (*models.ExcursionListResponse, error) {
	excursions, err := s.excursionRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainExcursionList(excursions), nil
}

// Update изменяет экскурсию
// Доступно гиду этой экскурсии и админу. Уменьшение вместимости не
// понижает уже подтверждённые брони: переполнение разберут будущие
// отмены и проходы повышения.
func (s *Service) Update(ctx context.Context, req *models.UpdateExcursionRequest) (*models.ExcursionResponse, error) {
	s.logger.Info("Update: updating excursion id=%d by user=%d", req.ExcursionID, req.ActingUserID)

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: at least one field must be provided", ErrInvalidInput)
	}
	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			s.logger.Warn("Update: validation failed: %v", err)
			return nil, err
		}
	}
	if req.Capacity != nil && *req.Capacity < domain.MinCapacity {
		s.logger.Warn("Update: invalid capacity=%d", *req.Capacity)
		return nil, fmt.Errorf("%w: capacity must be at least %d", ErrInvalidInput, domain.MinCapacity)
	}

	excursion, err := s.excursionRepo.GetByID(ctx, req.ExcursionID)
	if err != nil {
		if errors.Is(err, excursionRepo.ErrExcursionNotFound) {
			s.logger.Warn("Update: excursion id=%d not found", req.ExcursionID)
			return nil, ErrExcursionNotFound
		}
		s.logger.Error("Update: repository error for excursion id=%d: %v", req.ExcursionID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if err := s.checkStaffAccess(ctx, excursion, req.ActingUserID); err != nil {
		s.logger.Warn("Update: access denied for user=%d to excursion id=%d", req.ActingUserID, req.ExcursionID)
		return nil, err
	}

	if req.Title != nil {
		excursion.Title = strings.TrimSpace(*req.Title)
	}
	if req.Capacity != nil {
		excursion.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		excursion.IsActive = *req.IsActive
	}

	updated, err := s.excursionRepo.Update(ctx, excursion)
	if err != nil {
		s.logger.Error("Update: repository error for excursion id=%d: %v", req.ExcursionID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated excursion id=%d", updated.ID)
	return models.FromDomainExcursion(updated), nil
}

// SoftDelete скрывает экскурсию (is_active=false), записи остаются в леджере
func (s *Service) SoftDelete(ctx context.Context, id int64, actingUserID int64) error {
	s.logger.Info("SoftDelete: deleting excursion id=%d by user=%d", id, actingUserID)

	excursion, err := s.excursionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, excursionRepo.ErrExcursionNotFound) {
			s.logger.Warn("SoftDelete: excursion id=%d not found", id)
			return ErrExcursionNotFound
		}
		s.logger.Error("SoftDelete: repository error for excursion id=%d: %v", id, err)
		return fmt.Errorf("%w: SoftDelete - repository error: %v", ErrInternal, err)
	}

	if err := s.checkStaffAccess(ctx, excursion, actingUserID); err != nil {
		s.logger.Warn("SoftDelete: access denied for user=%d to excursion id=%d", actingUserID, id)
		return err
	}

	if err := s.excursionRepo.SoftDelete(ctx, id); err != nil {
		s.logger.Error("SoftDelete: repository error for excursion id=%d: %v", id, err)
		return fmt.Errorf("%w: SoftDelete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SoftDelete: successfully deleted excursion id=%d", id)
	return nil
}

func (s *Service) getUser(ctx context.Context, userID int64) (*userClient.User, error) {
	user, err := s.userClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to get user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	return user, nil
}

// checkStaffAccess разрешает доступ админу и гиду этой экскурсии
func (s *Service) checkStaffAccess(ctx context.Context, excursion *domain.Excursion, actingUserID int64) error {
	actor, err := s.getUser(ctx, actingUserID)
	if err != nil {
		return err
	}

	role := domain.UserRole(actor.Role)
	if role.IsAdmin() {
		return nil
	}
	if role.IsGuide() && excursion.IsGuidedBy(actingUserID) {
		return nil
	}

	return ErrAccessDenied
}

func validateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(trimmed) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title must not exceed %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}
	return nil
}
