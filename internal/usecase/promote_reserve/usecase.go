package promote_reserve

import (
	"context"
	"errors"
	"fmt"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
	excursionRepo "github.com/wildroute/ExcursionBookingService/internal/infra/storage/excursion"
	"github.com/wildroute/ExcursionBookingService/pkg/ptr"
)

// UseCase use case повышения брони из резерва.
// Запускается после любого события, освобождающего места: отмены
// бронирования или уменьшения количества человек в заявке.
type UseCase struct {
	bookingRepo   BookingRepository
	excursionRepo ExcursionRepository
	txManager     TransactionManager
	notifier      Notifier
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	excursionRepo ExcursionRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		excursionRepo: excursionRepo,
		txManager:     txManager,
		notifier:      notifier,
		logger:        logger,
	}
}

// Execute повышает не более одной резервной брони за вызов.
// Очередь упорядочена по created_at: повышается самая старая резервная
// бронь, которая целиком помещается в свободные места. Слишком крупная
// бронь в голове очереди не блокирует более поздние мелкие — она
// пропускается и ждёт, пока освободится достаточно мест.
func (uc *UseCase) Execute(ctx context.Context, excursionID int64) error {
	var promoted *domain.Booking
	var excursion *domain.Excursion

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Блокируем строку экскурсии (FOR UPDATE), чтобы параллельные
		// отмены не повысили одну и ту же бронь дважды
		exc, err := uc.excursionRepo.GetByID(txCtx, excursionID)
		if err != nil {
			if errors.Is(err, excursionRepo.ErrExcursionNotFound) {
				uc.logger.Warn("PromoteReserve: excursion id=%d not found, skipping", excursionID)
				return nil
			}
			return fmt.Errorf("%w: failed to get excursion: %v", ErrInternal, err)
		}

		reserves, err := uc.bookingRepo.GetByExcursion(txCtx, excursionID, ptr.Ptr(domain.StatusReserve))
		if err != nil {
			return fmt.Errorf("%w: failed to get reserve bookings: %v", ErrInternal, err)
		}
		if len(reserves) == 0 {
			return nil
		}

		occupied, err := uc.bookingRepo.SumConfirmedPeople(txCtx, excursionID)
		if err != nil {
			return fmt.Errorf("%w: failed to sum confirmed people: %v", ErrInternal, err)
		}

		var candidate *domain.Booking
		for _, reserve := range reserves {
			if exc.HasSpaceFor(occupied, reserve.PeopleCount) {
				candidate = reserve
				break
			}
		}
		if candidate == nil {
			uc.logger.Info("PromoteReserve: excursion id=%d has %d free, none of %d reserves fit",
				excursionID, exc.AvailableSpots(occupied), len(reserves))
			return nil
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, candidate.ID, domain.StatusConfirmed); err != nil {
			return fmt.Errorf("%w: failed to promote booking id=%d: %v", ErrInternal, candidate.ID, err)
		}

		promoted = candidate
		excursion = exc
		return nil
	})

	if err != nil {
		return err
	}

	if promoted == nil {
		return nil
	}

	uc.logger.Info("PromoteReserve: promoted booking id=%d (user=%d, people=%d) on excursion id=%d",
		promoted.ID, promoted.UserID, promoted.PeopleCount, excursionID)

	// Уведомления отправляем только после фиксации транзакции
	uc.notifier.ParticipantPromoted(promoted.UserID, excursion.Title)
	uc.notifier.GuideNewBooking(excursion.GuideID, promoted.UserID, excursion.Title, promoted.PeopleCount, domain.StatusConfirmed)

	return nil
}
