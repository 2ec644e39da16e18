package cancel_booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
	bookingRepo "github.com/wildroute/ExcursionBookingService/internal/infra/storage/booking"
	excursionRepo "github.com/wildroute/ExcursionBookingService/internal/infra/storage/excursion"
	"github.com/wildroute/ExcursionBookingService/internal/integrations/userservice"
)

type fakeBookingRepo struct {
	booking   *domain.Booking
	cancelled []int64
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64) error {
	f.cancelled = append(f.cancelled, id)
	f.booking.Status = domain.StatusCancelled
	return nil
}

type fakeExcursionRepo struct {
	excursion *domain.Excursion
}

func (f *fakeExcursionRepo) GetByID(_ context.Context, _ int64) (*domain.Excursion, error) {
	if f.excursion == nil {
		return nil, excursionRepo.ErrExcursionNotFound
	}
	return f.excursion, nil
}

type fakeUserClient struct {
	users map[int64]*userservice.User
}

func (f *fakeUserClient) GetUser(_ context.Context, userID int64) (*userservice.User, error) {
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	return nil, userservice.ErrUserNotFound
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePromoter struct {
	calls []int64
	err   error
}

func (f *fakePromoter) Execute(_ context.Context, excursionID int64) error {
	f.calls = append(f.calls, excursionID)
	return f.err
}

type fakeNotifier struct {
	participant int
	guide       int
	admins      int
}

func (f *fakeNotifier) ParticipantCancelled(int64, string)   { f.participant++ }
func (f *fakeNotifier) GuideCancellation(_, _ int64, _ string) { f.guide++ }
func (f *fakeNotifier) AdminsCancellation(int64, string)     { f.admins++ }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:          10,
		ExcursionID: 1,
		UserID:      7,
		PeopleCount: 2,
		Status:      domain.StatusConfirmed,
	}
}

func testExcursion() *domain.Excursion {
	return &domain.Excursion{ID: 1, Title: "Журавли на рассвете", Capacity: 10, IsActive: true, GuideID: 100}
}

func newTestUseCase(
	bookings *fakeBookingRepo,
	users *fakeUserClient,
	promoter *fakePromoter,
	notifier *fakeNotifier,
) *UseCase {
	return NewUseCase(
		bookings,
		&fakeExcursionRepo{excursion: testExcursion()},
		users,
		fakeTxManager{},
		promoter,
		notifier,
		nopLogger{},
	)
}

func TestExecute_OwnerCancelsAndPromotionRuns(t *testing.T) {
	bookings := &fakeBookingRepo{booking: confirmedBooking()}
	promoter := &fakePromoter{}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(bookings, &fakeUserClient{}, promoter, notifier)

	err := uc.Execute(context.Background(), 10, 7)

	require.NoError(t, err)
	assert.Equal(t, []int64{10}, bookings.cancelled)
	assert.Equal(t, []int64{1}, promoter.calls)
	// Владелец отменил сам: участнику уведомление не дублируется
	assert.Zero(t, notifier.participant)
	assert.Equal(t, 1, notifier.guide)
	assert.Equal(t, 1, notifier.admins)
}

func TestExecute_AdminCancellationNotifiesParticipant(t *testing.T) {
	bookings := &fakeBookingRepo{booking: confirmedBooking()}
	users := &fakeUserClient{users: map[int64]*userservice.User{
		999: {ID: 999, Role: string(domain.RoleAdmin)},
	}}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(bookings, users, &fakePromoter{}, notifier)

	err := uc.Execute(context.Background(), 10, 999)

	require.NoError(t, err)
	assert.Equal(t, 1, notifier.participant)
	assert.Equal(t, 1, notifier.guide)
	assert.Equal(t, 1, notifier.admins)
}

func TestExecute_GuideCancellationSkipsGuideNotice(t *testing.T) {
	bookings := &fakeBookingRepo{booking: confirmedBooking()}
	users := &fakeUserClient{users: map[int64]*userservice.User{
		100: {ID: 100, Role: string(domain.RoleGuide)},
	}}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(bookings, users, &fakePromoter{}, notifier)

	err := uc.Execute(context.Background(), 10, 100)

	require.NoError(t, err)
	assert.Equal(t, 1, notifier.participant)
	assert.Zero(t, notifier.guide)
	assert.Equal(t, 1, notifier.admins)
}

func TestExecute_AdminCancelsForeignBooking(t *testing.T) {
	bookings := &fakeBookingRepo{booking: confirmedBooking()}
	users := &fakeUserClient{users: map[int64]*userservice.User{
		999: {ID: 999, Role: string(domain.RoleAdmin)},
	}}
	uc := newTestUseCase(bookings, users, &fakePromoter{}, &fakeNotifier{})

	err := uc.Execute(context.Background(), 10, 999)

	require.NoError(t, err)
	assert.Equal(t, []int64{10}, bookings.cancelled)
}

func TestExecute_GuideCancelsOwnExcursionBooking(t *testing.T) {
	bookings := &fakeBookingRepo{booking: confirmedBooking()}
	users := &fakeUserClient{users: map[int64]*userservice.User{
		100: {ID: 100, Role: string(domain.RoleGuide)},
	}}
	uc := newTestUseCase(bookings, users, &fakePromoter{}, &fakeNotifier{})

	err := uc.Execute(context.Background(), 10, 100)

	require.NoError(t, err)
	assert.Equal(t, []int64{10}, bookings.cancelled)
}

func TestExecute_ForeignGuideForbidden(t *testing.T) {
	bookings := &fakeBookingRepo{booking: confirmedBooking()}
	users := &fakeUserClient{users: map[int64]*userservice.User{
		200: {ID: 200, Role: string(domain.RoleGuide)},
	}}
	uc := newTestUseCase(bookings, users, &fakePromoter{}, &fakeNotifier{})

	err := uc.Execute(context.Background(), 10, 200)

	require.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, bookings.cancelled)
}

func TestExecute_StrangerForbidden(t *testing.T) {
	bookings := &fakeBookingRepo{booking: confirmedBooking()}
	users := &fakeUserClient{users: map[int64]*userservice.User{
		300: {ID: 300, Role: string(domain.RoleUser)},
	}}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(bookings, users, &fakePromoter{}, notifier)

	err := uc.Execute(context.Background(), 10, 300)

	require.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, notifier.participant)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeUserClient{}, &fakePromoter{}, &fakeNotifier{})

	err := uc.Execute(context.Background(), 10, 7)

	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_ExcursionNotFound(t *testing.T) {
	// Бронь есть, но её экскурсия исчезла из каталога:
	// клиент получает ошибку "не найдено", а не внутреннюю
	bookings := &fakeBookingRepo{booking: confirmedBooking()}
	notifier := &fakeNotifier{}
	uc := NewUseCase(
		bookings,
		&fakeExcursionRepo{},
		&fakeUserClient{},
		fakeTxManager{},
		&fakePromoter{},
		notifier,
		nopLogger{},
	)

	err := uc.Execute(context.Background(), 10, 7)

	require.ErrorIs(t, err, ErrExcursionNotFound)
	assert.Empty(t, bookings.cancelled)
	assert.Zero(t, notifier.admins)
}

func TestExecute_AlreadyCancelled(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusCancelled
	bookings := &fakeBookingRepo{booking: booking}
	promoter := &fakePromoter{}
	uc := newTestUseCase(bookings, &fakeUserClient{}, promoter, &fakeNotifier{})

	err := uc.Execute(context.Background(), 10, 7)

	require.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Empty(t, bookings.cancelled)
	assert.Empty(t, promoter.calls)
}

func TestExecute_PromotionFailureDoesNotFailCancellation(t *testing.T) {
	bookings := &fakeBookingRepo{booking: confirmedBooking()}
	promoter := &fakePromoter{err: errors.New("db is down")}
	uc := newTestUseCase(bookings, &fakeUserClient{}, promoter, &fakeNotifier{})

	err := uc.Execute(context.Background(), 10, 7)

	require.NoError(t, err)
	assert.Equal(t, []int64{10}, bookings.cancelled)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{booking: confirmedBooking()}, &fakeUserClient{}, &fakePromoter{}, &fakeNotifier{})

	err := uc.Execute(context.Background(), 0, 7)

	require.ErrorIs(t, err, ErrInvalidInput)
}
