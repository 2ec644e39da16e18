package update_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
	bookingRepo "github.com/wildroute/ExcursionBookingService/internal/infra/storage/booking"
	excursionRepo "github.com/wildroute/ExcursionBookingService/internal/infra/storage/excursion"
)

// UseCase use case изменения бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	excursionRepo ExcursionRepository
	userClient    UserServiceClient
	txManager     TransactionManager
	promoter      ReservePromoter
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	excursionRepo ExcursionRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	promoter ReservePromoter,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		excursionRepo: excursionRepo,
		userClient:    userClient,
		txManager:     txManager,
		promoter:      promoter,
		logger:        logger,
	}
}

// Execute изменяет бронирование. Владелец может менять количество человек,
// бинокль и пожелания; статус напрямую меняет только админ (ручной обход
// движков допуска и повышения). Увеличение количества человек на
// подтверждённой брони проверяется по свободным местам под блокировкой
// экскурсии. Если изменение освобождает места, после фиксации запускается
// проход повышения из резерва.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking=%d, actingUser=%d", req.BookingID, req.ActingUserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Читаем бронирование вне транзакции для проверки прав
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if booking.IsCancelled() {
		uc.logger.Warn("UpdateBooking: booking id=%d is cancelled", req.BookingID)
		return nil, ErrBookingCancelled
	}

	// 3. Проверка прав доступа
	if err := uc.checkAccess(ctx, booking, req); err != nil {
		return nil, err
	}

	var result *domain.Booking
	var freedCapacity bool

	// 4. Изменение в сериализуемой транзакции: сперва блокируется строка
	// экскурсии (FOR UPDATE), затем бронирование
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		excursion, err := uc.excursionRepo.GetByID(txCtx, booking.ExcursionID)
		if err != nil {
			if errors.Is(err, excursionRepo.ErrExcursionNotFound) {
				uc.logger.Warn("UpdateBooking: excursion id=%d not found for booking id=%d", booking.ExcursionID, req.BookingID)
				return ErrExcursionNotFound
			}
			return fmt.Errorf("%w: failed to lock excursion: %v", ErrInternal, err)
		}

		current, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if current.IsCancelled() {
			return ErrBookingCancelled
		}

		oldPeople := current.PeopleCount
		oldStatus := current.Status

		if req.PeopleCount != nil {
			current.PeopleCount = *req.PeopleCount
		}
		if req.BinocularNeeded != nil {
			current.BinocularNeeded = *req.BinocularNeeded
		}
		if req.Notes != nil {
			current.Notes = req.Notes
		}
		if req.Status != nil {
			current.Status = domain.BookingStatus(*req.Status)
			// Админский перевод в CANCELLED оставляет тот же след,
			// что и обычная отмена
			if current.IsCancelled() {
				now := time.Now()
				current.CancelledAt = &now
			}
		}

		// Увеличение подтверждённой брони не должно перепродать места.
		// Прямое назначение статуса админом проверку обходит.
		if req.Status == nil && current.IsConfirmed() && current.PeopleCount > oldPeople {
			occupied, err := uc.bookingRepo.SumConfirmedPeople(txCtx, booking.ExcursionID)
			if err != nil {
				return fmt.Errorf("%w: failed to sum confirmed people: %v", ErrInternal, err)
			}

			// occupied уже включает старое значение этой брони
			newOccupied := occupied - oldPeople + current.PeopleCount
			if newOccupied > excursion.Capacity {
				uc.logger.Warn("UpdateBooking: booking id=%d increase to %d would exceed capacity (%d/%d)",
					req.BookingID, current.PeopleCount, newOccupied, excursion.Capacity)
				return ErrCapacityExceeded
			}
		}

		updated, err := uc.bookingRepo.Update(txCtx, current)
		if err != nil {
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		// Места освобождаются, если подтверждённая бронь уменьшилась
		// или перестала быть подтверждённой
		wasConfirmedPeople := 0
		if oldStatus == domain.StatusConfirmed {
			wasConfirmedPeople = oldPeople
		}
		nowConfirmedPeople := 0
		if updated.Status == domain.StatusConfirmed {
			nowConfirmedPeople = updated.PeopleCount
		}
		freedCapacity = nowConfirmedPeople < wasConfirmedPeople

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d, status=%s, people=%d",
		result.ID, result.Status, result.PeopleCount)

	// 5. Проход повышения идёт отдельной транзакцией: его сбой не должен
	// откатить уже зафиксированное изменение
	if freedCapacity {
		if err := uc.promoter.Execute(ctx, booking.ExcursionID); err != nil {
			uc.logger.Error("UpdateBooking: reserve promotion failed for excursion id=%d: %v",
				booking.ExcursionID, err)
		}
	}

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

// checkAccess разрешает изменение владельцу и админу, смену статуса
// только админу
func (uc *UseCase) checkAccess(ctx context.Context, booking *domain.Booking, req *Request) error {
	isOwner := booking.UserID == req.ActingUserID

	if isOwner && req.Status == nil {
		return nil
	}

	actor, err := uc.userClient.GetUser(ctx, req.ActingUserID)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to get acting user id=%d: %v", req.ActingUserID, err)
		return fmt.Errorf("%w: failed to get acting user: %v", ErrInternal, err)
	}

	if domain.UserRole(actor.Role).IsAdmin() {
		return nil
	}

	if req.Status != nil {
		uc.logger.Warn("UpdateBooking: user id=%d attempted status change without admin role", req.ActingUserID)
		return ErrStatusChangeForbidden
	}

	if !isOwner {
		uc.logger.Warn("UpdateBooking: user id=%d has no access to booking id=%d", req.ActingUserID, booking.ID)
		return ErrForbidden
	}

	return nil
}
