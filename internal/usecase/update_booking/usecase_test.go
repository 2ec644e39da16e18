package update_booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
	bookingRepo "github.com/wildroute/ExcursionBookingService/internal/infra/storage/booking"
	excursionRepo "github.com/wildroute/ExcursionBookingService/internal/infra/storage/excursion"
	"github.com/wildroute/ExcursionBookingService/internal/integrations/userservice"
	"github.com/wildroute/ExcursionBookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking         *domain.Booking
	confirmedPeople int
	updated         *domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	updated := *booking
	f.updated = &updated
	return &updated, nil
}

func (f *fakeBookingRepo) SumConfirmedPeople(_ context.Context, _ int64) (int, error) {
	return f.confirmedPeople, nil
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
}

func (f *fakePromoter) Execute(_ context.Context, excursionID int64) error {
	f.calls = append(f.calls, excursionID)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func confirmedBooking(people int) *domain.Booking {
	return &domain.Booking{
		ID:          10,
		ExcursionID: 1,
		UserID:      7,
		PeopleCount: people,
		Status:      domain.StatusConfirmed,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, users *fakeUserClient, promoter *fakePromoter) *UseCase {
	return NewUseCase(
		bookings,
		&fakeExcursionRepo{excursion: &domain.Excursion{ID: 1, Title: "Глухариный ток", Capacity: 10, IsActive: true, GuideID: 100}},
		users,
		fakeTxManager{},
		promoter,
		nopLogger{},
	)
}

func TestExecute_OwnerUpdatesNotesAndBinocular(t *testing.T) {
	bookings := &fakeBookingRepo{booking: confirmedBooking(2), confirmedPeople: 5}
	promoter := &fakePromoter{}
	uc := newTestUseCase(bookings, &fakeUserClient{}, promoter)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:       10,
		ActingUserID:    7,
		BinocularNeeded: ptr.Ptr(true),
		Notes:           ptr.Ptr("возьмём детей"),
	})

	require.NoError(t, err)
	assert.True(t, resp.BinocularNeeded)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "возьмём детей", *resp.Notes)
	assert.Equal(t, 2, resp.PeopleCount)
	assert.Empty(t, promoter.calls)
}

func TestExecute_PeopleDecreaseTriggersPromotion(t *testing.T) {
	bookings := &fakeBookingRepo{booking: confirmedBooking(3), confirmedPeople: 10}
	promoter := &fakePromoter{}
	uc := newTestUseCase(bookings, &fakeUserClient{}, promoter)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:    10,
		ActingUserID: 7,
		PeopleCount:  ptr.Ptr(1),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.PeopleCount)
	assert.Equal(t, []int64{1}, promoter.calls)
}

func TestExecute_PeopleIncreaseWithinCapacity(t *testing.T) {
	bookings := &fakeBookingRepo{booking: confirmedBooking(1), confirmedPeople: 8}
	promoter := &fakePromoter{}
	uc := newTestUseCase(bookings, &fakeUserClient{}, promoter)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:    10,
		ActingUserID: 7,
		PeopleCount:  ptr.Ptr(3),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.PeopleCount)
	assert.Empty(t, promoter.calls)
}

func TestExecute_PeopleIncreaseExceedsCapacity(t *testing.T) {
	// Занято 9 из 10 вместе с этой бронью на одного: рост до трёх не влезает
	bookings := &fakeBookingRepo{booking: confirmedBooking(1), confirmedPeople: 9}
	uc := newTestUseCase(bookings, &fakeUserClient{}, &fakePromoter{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    10,
		ActingUserID: 7,
		PeopleCount:  ptr.Ptr(3),
	})

	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Nil(t, bookings.updated)
}

func TestExecute_ReserveIncreaseSkipsCapacityCheck(t *testing.T) {
	booking := confirmedBooking(1)
	booking.Status = domain.StatusReserve
	bookings := &fakeBookingRepo{booking: booking, confirmedPeople: 10}
	uc := newTestUseCase(bookings, &fakeUserClient{}, &fakePromoter{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:    10,
		ActingUserID: 7,
		PeopleCount:  ptr.Ptr(3),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.PeopleCount)
	assert.Equal(t, string(domain.StatusReserve), resp.Status)
}

func TestExecute_AdminChangesStatus(t *testing.T) {
	bookings := &fakeBookingRepo{booking: confirmedBooking(2), confirmedPeople: 5}
	users := &fakeUserClient{users: map[int64]*userservice.User{
		999: {ID: 999, Role: string(domain.RoleAdmin)},
	}}
	promoter := &fakePromoter{}
	uc := newTestUseCase(bookings, users, promoter)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:    10,
		ActingUserID: 999,
		Status:       ptr.Ptr(string(domain.StatusReserve)),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusReserve), resp.Status)
	// Подтверждённая бронь покинула подтверждённые: места освободились
	assert.Equal(t, []int64{1}, promoter.calls)
}

func TestExecute_AdminCancelledOverrideStampsCancelledAt(t *testing.T) {
	// Ручной перевод в CANCELLED оставляет ту же отметку времени,
	// что и обычная отмена
	bookings := &fakeBookingRepo{booking: confirmedBooking(2), confirmedPeople: 5}
	users := &fakeUserClient{users: map[int64]*userservice.User{
		999: {ID: 999, Role: string(domain.RoleAdmin)},
	}}
	promoter := &fakePromoter{}
	uc := newTestUseCase(bookings, users, promoter)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    10,
		ActingUserID: 999,
		Status:       ptr.Ptr(string(domain.StatusCancelled)),
	})

	require.NoError(t, err)
	require.NotNil(t, bookings.updated)
	assert.Equal(t, domain.StatusCancelled, bookings.updated.Status)
	require.NotNil(t, bookings.updated.CancelledAt)
	assert.False(t, bookings.updated.CancelledAt.IsZero())
	assert.Equal(t, []int64{1}, promoter.calls)
}

func TestExecute_OwnerCannotChangeStatus(t *testing.T) {
	bookings := &fakeBookingRepo{booking: confirmedBooking(2)}
	users := &fakeUserClient{users: map[int64]*userservice.User{
		7: {ID: 7, Role: string(domain.RoleUser)},
	}}
	uc := newTestUseCase(bookings, users, &fakePromoter{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    10,
		ActingUserID: 7,
		Status:       ptr.Ptr(string(domain.StatusConfirmed)),
	})

	require.ErrorIs(t, err, ErrStatusChangeForbidden)
}

func TestExecute_StrangerForbidden(t *testing.T) {
	bookings := &fakeBookingRepo{booking: confirmedBooking(2)}
	users := &fakeUserClient{users: map[int64]*userservice.User{
		300: {ID: 300, Role: string(domain.RoleUser)},
	}}
	uc := newTestUseCase(bookings, users, &fakePromoter{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    10,
		ActingUserID: 300,
		Notes:        ptr.Ptr("чужая заметка"),
	})

	require.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_CancelledBookingRejected(t *testing.T) {
	booking := confirmedBooking(2)
	booking.Status = domain.StatusCancelled
	uc := newTestUseCase(&fakeBookingRepo{booking: booking}, &fakeUserClient{}, &fakePromoter{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    10,
		ActingUserID: 7,
		Notes:        ptr.Ptr("поздно"),
	})

	require.ErrorIs(t, err, ErrBookingCancelled)
}

func TestExecute_EmptyPatchRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{booking: confirmedBooking(2)}, &fakeUserClient{}, &fakePromoter{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 10, ActingUserID: 7})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_UnknownStatusRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{booking: confirmedBooking(2)}, &fakeUserClient{}, &fakePromoter{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    10,
		ActingUserID: 7,
		Status:       ptr.Ptr("PENDING"),
	})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeUserClient{}, &fakePromoter{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    10,
		ActingUserID: 7,
		Notes:        ptr.Ptr("нет такой брони"),
	})

	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_ExcursionNotFound(t *testing.T) {
	// Экскурсия брони исчезла из каталога: ошибка "не найдено",
	// а не внутренняя, изменение не применяется
	bookings := &fakeBookingRepo{booking: confirmedBooking(2)}
	uc := NewUseCase(
		bookings,
		&fakeExcursionRepo{},
		&fakeUserClient{},
		fakeTxManager{},
		&fakePromoter{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    10,
		ActingUserID: 7,
		Notes:        ptr.Ptr("возьмём телескоп"),
	})

	require.ErrorIs(t, err, ErrExcursionNotFound)
	assert.Nil(t, bookings.updated)
}
