package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
	bookingRepo "github.com/wildroute/ExcursionBookingService/internal/infra/storage/booking"
	excursionRepo "github.com/wildroute/ExcursionBookingService/internal/infra/storage/excursion"
	"github.com/wildroute/ExcursionBookingService/internal/service/bookings/models"
)

// Service сервис чтения бронирований: карточка брони, история
// пользователя, список участников экскурсии и сводка по местам
type Service struct {
	bookingRepo   BookingRepository
	excursionRepo ExcursionRepository
	userClient    UserServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	excursionRepo ExcursionRepository,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		excursionRepo: excursionRepo,
		userClient:    userClient,
		logger:        logger,
	}
}

// GetByID получает бронирование по ID
// Бронь видят владелец, админ и гид этой экскурсии
func (s *Service) GetByID(ctx context.Context, id int64, actingUserID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actingUserID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != actingUserID {
		excursion, err := s.excursionRepo.GetByID(ctx, booking.ExcursionID)
		if err != nil {
			s.logger.Error("GetByID: failed to get excursion id=%d: %v", booking.ExcursionID, err)
			return nil, fmt.Errorf("%w: GetByID - excursion error: %v", ErrInternal, err)
		}
		if err := s.checkStaffAccess(ctx, excursion, actingUserID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actingUserID, id)
			return nil, err
		}
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// (включая отменённые), от новых к старым. Чужую историю видит только админ.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, actingUser=%d", req.UserID, req.ActingUserID)

	if req.UserID != req.ActingUserID {
		if err := s.checkAdminAccess(ctx, req.ActingUserID); err != nil {
			s.logger.Warn("GetUserBookings: access denied for user=%d to history of user=%d",
				req.ActingUserID, req.UserID)
			return nil, err
		}
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetExcursionBookings получает список бронирований экскурсии в порядке
// поступления. Доступно гиду этой экскурсии и админу. Отменённые брони
// по умолчанию скрыты.
func (s *Service) GetExcursionBookings(ctx context.Context, req *models.GetExcursionBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetExcursionBookings: fetching bookings for excursion=%d, actingUser=%d",
		req.ExcursionID, req.ActingUserID)

	excursion, err := s.getExcursion(ctx, req.ExcursionID)
	if err != nil {
		return nil, err
	}

	if err := s.checkStaffAccess(ctx, excursion, req.ActingUserID); err != nil {
		s.logger.Warn("GetExcursionBookings: access denied for user=%d to excursion=%d",
			req.ActingUserID, req.ExcursionID)
		return nil, err
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetExcursionBookings: invalid status=%s for excursion=%d", *req.Status, req.ExcursionID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByExcursion(ctx, req.ExcursionID, domainStatus)
	if err != nil {
		s.logger.Error("GetExcursionBookings: repository error for excursion=%d: %v", req.ExcursionID, err)
		return nil, fmt.Errorf("%w: GetExcursionBookings - repository error: %v", ErrInternal, err)
	}

	if domainStatus == nil && !req.IncludeCancelled {
		bookings = filterActive(bookings)
	}

	s.logger.Info("GetExcursionBookings: successfully fetched %d bookings for excursion=%d",
		len(bookings), req.ExcursionID)
	return models.FromDomainBookingList(bookings), nil
}

// GetBookingStats считает сводку по экскурсии: количество активных броней,
// подтверждённых и резервных участников и свободные места. Доступна любому
// пользователю — по ней участник решает, стоит ли записываться.
func (s *Service) GetBookingStats(ctx context.Context, excursionID int64) (*models.BookingStatsResponse, error) {
	s.logger.Info("GetBookingStats: fetching stats for excursion=%d", excursionID)

	excursion, err := s.getExcursion(ctx, excursionID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByExcursion(ctx, excursionID, nil)
	if err != nil {
		s.logger.Error("GetBookingStats: repository error for excursion=%d: %v", excursionID, err)
		return nil, fmt.Errorf("%w: GetBookingStats - repository error: %v", ErrInternal, err)
	}

	stats := &models.BookingStatsResponse{
		ExcursionID: excursionID,
		Capacity:    excursion.Capacity,
	}

	for _, booking := range bookings {
		switch booking.Status {
		case domain.StatusConfirmed:
			stats.TotalBookings++
			stats.ConfirmedPeople += booking.PeopleCount
		case domain.StatusReserve:
			stats.TotalBookings++
			stats.ReservePeople += booking.PeopleCount
		}
	}

	stats.AvailableSpots = excursion.AvailableSpots(stats.ConfirmedPeople)

	return stats, nil
}

func (s *Service) getExcursion(ctx context.Context, excursionID int64) (*domain.Excursion, error) {
	excursion, err := s.excursionRepo.GetByID(ctx, excursionID)
	if err != nil {
		if errors.Is(err, excursionRepo.ErrExcursionNotFound) {
			s.logger.Warn("excursion id=%d not found", excursionID)
			return nil, ErrExcursionNotFound
		}
		s.logger.Error("failed to get excursion id=%d: %v", excursionID, err)
		return nil, fmt.Errorf("%w: excursion repository error: %v", ErrInternal, err)
	}
	return excursion, nil
}

// checkStaffAccess разрешает доступ админу и гиду этой экскурсии
func (s *Service) checkStaffAccess(ctx context.Context, excursion *domain.Excursion, actingUserID int64) error {
	actor, err := s.userClient.GetUser(ctx, actingUserID)
	if err != nil {
		s.logger.Error("failed to get acting user id=%d: %v", actingUserID, err)
		return fmt.Errorf("%w: failed to get acting user: %v", ErrInternal, err)
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

// checkAdminAccess разрешает доступ только админу
func (s *Service) checkAdminAccess(ctx context.Context, actingUserID int64) error {
	actor, err := s.userClient.GetUser(ctx, actingUserID)
	if err != nil {
		s.logger.Error("failed to get acting user id=%d: %v", actingUserID, err)
		return fmt.Errorf("%w: failed to get acting user: %v", ErrInternal, err)
	}

	if !domain.UserRole(actor.Role).IsAdmin() {
		return ErrAccessDenied
	}

	return nil
}

func filterActive(bookings []*domain.Booking) []*domain.Booking {
	active := make([]*domain.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.IsActive() {
			active = append(active, booking)
		}
	}
	return active
}
