package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
	bookingRepo "github.com/wildroute/ExcursionBookingService/internal/infra/storage/booking"
	excursionRepo "github.com/wildroute/ExcursionBookingService/internal/infra/storage/excursion"
	userClient "github.com/wildroute/ExcursionBookingService/internal/integrations/userservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	excursionRepo ExcursionRepository
	userClient    UserServiceClient
	txManager     TransactionManager
	notifier      Notifier
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	excursionRepo ExcursionRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		excursionRepo: excursionRepo,
		userClient:    userClient,
		txManager:     txManager,
		notifier:      notifier,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
// Решение CONFIRMED/RESERVE принимается внутри сериализуемой транзакции:
// строка экскурсии блокируется (FOR UPDATE), поэтому два параллельных
// запроса на последнее место не могут пройти оба как CONFIRMED.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, excursion=%d, people=%d, binocular=%t",
		req.UserID, req.ExcursionID, req.PeopleCount, req.BinocularNeeded)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что пользователь существует
	if _, err := uc.userClient.GetUser(ctx, req.UserID); err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	var result *domain.Booking
	var excursion *domain.Excursion

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем экскурсию с блокировкой строки (FOR UPDATE)
		exc, err := uc.excursionRepo.GetByID(txCtx, req.ExcursionID)
		if err != nil {
			if errors.Is(err, excursionRepo.ErrExcursionNotFound) {
				uc.logger.Warn("CreateBooking: excursion id=%d not found", req.ExcursionID)
				return ErrExcursionNotFound
			}
			uc.logger.Error("CreateBooking: failed to get excursion id=%d: %v", req.ExcursionID, err)
			return fmt.Errorf("%w: failed to get excursion: %v", ErrInternal, err)
		}

		if !exc.IsActive {
			uc.logger.Warn("CreateBooking: excursion id=%d is not active", req.ExcursionID)
			return ErrExcursionInactive
		}

		// 3.2. Проверяем, что у пользователя нет подтверждённой записи
		// на эту экскурсию
		existing, err := uc.bookingRepo.FindConfirmedByUserAndExcursion(txCtx, req.UserID, req.ExcursionID)
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("CreateBooking: failed to check existing booking: %v", err)
			return fmt.Errorf("%w: failed to check existing booking: %v", ErrInternal, err)
		}
		if existing != nil {
			uc.logger.Warn("CreateBooking: user id=%d already has confirmed booking id=%d for excursion id=%d",
				req.UserID, existing.ID, req.ExcursionID)
			return ErrAlreadyBooked
		}

		// 3.3. Считаем занятые места только по CONFIRMED-бронированиям
		occupied, err := uc.bookingRepo.SumConfirmedPeople(txCtx, req.ExcursionID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to sum confirmed people: %v", err)
			return fmt.Errorf("%w: failed to sum confirmed people: %v", ErrInternal, err)
		}

		// 3.4. Заявка подтверждается целиком или целиком уходит в резерв,
		// частичное подтверждение не допускается
		status := domain.StatusReserve
		if exc.HasSpaceFor(occupied, req.PeopleCount) {
			status = domain.StatusConfirmed
		}

		uc.logger.Info("CreateBooking: excursion id=%d occupied=%d/%d, requested=%d -> %s",
			req.ExcursionID, occupied, exc.Capacity, req.PeopleCount, status)

		booking := &domain.Booking{
			ExcursionID:     req.ExcursionID,
			UserID:          req.UserID,
			PeopleCount:     req.PeopleCount,
			BinocularNeeded: req.BinocularNeeded,
			Status:          status,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		excursion = exc
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, status=%s", result.ID, result.Status)

	// 4. Уведомления отправляем только после фиксации транзакции
	uc.notifier.ParticipantBooked(result.UserID, excursion.Title, result.Status, result.PeopleCount)
	uc.notifier.GuideNewBooking(excursion.GuideID, result.UserID, excursion.Title, result.PeopleCount, result.Status)
	uc.notifier.AdminsNewBooking(result.UserID, excursion.Title, result.PeopleCount)

	return &Response{
		ID:              result.ID,
		ExcursionID:     result.ExcursionID,
		UserID:          result.UserID,
		PeopleCount:     result.PeopleCount,
		BinocularNeeded: result.BinocularNeeded,
		Status:          string(result.Status),
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
