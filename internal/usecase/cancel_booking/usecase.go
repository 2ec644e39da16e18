package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
	bookingRepo "github.com/wildroute/ExcursionBookingService/internal/infra/storage/booking"
	excursionRepo "github.com/wildroute/ExcursionBookingService/internal/infra/storage/excursion"
)

// UseCase use case отмены бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	excursionRepo ExcursionRepository
	userClient    UserServiceClient
	txManager     TransactionManager
	promoter      ReservePromoter
	notifier      Notifier
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	excursionRepo ExcursionRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	promoter ReservePromoter,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		excursionRepo: excursionRepo,
		userClient:    userClient,
		txManager:     txManager,
		promoter:      promoter,
		notifier:      notifier,
		logger:        logger,
	}
}

// Execute отменяет бронирование. Отменить может владелец, админ или гид
// этой экскурсии. Запись не удаляется: статус переводится в CANCELLED,
// история сохраняется. После фиксации отмены запускается проход повышения
// из резерва; его ошибка логируется, но не откатывает отмену.
func (uc *UseCase) Execute(ctx context.Context, bookingID, actingUserID int64) error {
	uc.logger.Info("CancelBooking: booking=%d, actingUser=%d", bookingID, actingUserID)

	if bookingID <= 0 || actingUserID <= 0 {
		return fmt.Errorf("%w: bookingID and actingUserID must be positive", ErrInvalidInput)
	}

	// 1. Читаем бронирование вне транзакции, чтобы узнать экскурсию
	// и проверить права до захвата блокировок
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if booking.IsCancelled() {
		uc.logger.Warn("CancelBooking: booking id=%d is already cancelled", bookingID)
		return ErrAlreadyCancelled
	}

	excursion, err := uc.excursionRepo.GetByID(ctx, booking.ExcursionID)
	if err != nil {
		if errors.Is(err, excursionRepo.ErrExcursionNotFound) {
			uc.logger.Warn("CancelBooking: excursion id=%d not found for booking id=%d", booking.ExcursionID, bookingID)
			return ErrExcursionNotFound
		}
		uc.logger.Error("CancelBooking: failed to get excursion id=%d: %v", booking.ExcursionID, err)
		return fmt.Errorf("%w: failed to get excursion: %v", ErrInternal, err)
	}

	// 2. Проверка прав доступа
	if err := uc.checkAccess(ctx, booking, excursion, actingUserID); err != nil {
		return err
	}

	// 3. Отмена в сериализуемой транзакции: сперва блокируется строка
	// экскурсии (FOR UPDATE), затем бронирование, порядок блокировок
	// общий с созданием и повышением
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := uc.excursionRepo.GetByID(txCtx, booking.ExcursionID); err != nil {
			if errors.Is(err, excursionRepo.ErrExcursionNotFound) {
				return ErrExcursionNotFound
			}
			return fmt.Errorf("%w: failed to lock excursion: %v", ErrInternal, err)
		}

		current, err := uc.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if current.IsCancelled() {
			return ErrAlreadyCancelled
		}

		if err := uc.bookingRepo.Cancel(txCtx, bookingID); err != nil {
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d", bookingID)

	// 4. Уведомления отправляем только после фиксации транзакции.
	// Инициатору отмены отдельное уведомление не нужно.
	if actingUserID != booking.UserID {
		uc.notifier.ParticipantCancelled(booking.UserID, excursion.Title)
	}
	if actingUserID != excursion.GuideID {
		uc.notifier.GuideCancellation(excursion.GuideID, booking.UserID, excursion.Title)
	}
	uc.notifier.AdminsCancellation(booking.UserID, excursion.Title)

	// 5. Проход повышения из резерва идёт отдельной транзакцией:
	// его сбой не должен откатить уже зафиксированную отмену
	if err := uc.promoter.Execute(ctx, booking.ExcursionID); err != nil {
		uc.logger.Error("CancelBooking: reserve promotion failed for excursion id=%d: %v",
			booking.ExcursionID, err)
	}

	return nil
}

// checkAccess разрешает отмену владельцу, админу и гиду этой экскурсии
func (uc *UseCase) checkAccess(
	ctx context.Context,
	booking *domain.Booking,
	excursion *domain.Excursion,
	actingUserID int64,
) error {
	if booking.UserID == actingUserID {
		return nil
	}

	actor, err := uc.userClient.GetUser(ctx, actingUserID)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to get acting user id=%d: %v", actingUserID, err)
		return fmt.Errorf("%w: failed to get acting user: %v", ErrInternal, err)
	}

	role := domain.UserRole(actor.Role)
	if role.IsAdmin() {
		return nil
	}

	if role.IsGuide() && excursion.IsGuidedBy(actingUserID) {
		return nil
	}

	uc.logger.Warn("CancelBooking: user id=%d has no access to booking id=%d", actingUserID, booking.ID)
	return ErrForbidden
}
