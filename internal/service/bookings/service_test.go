package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
	bookingRepo "github.com/wildroute/ExcursionBookingService/internal/infra/storage/booking"
	excursionRepo "github.com/wildroute/ExcursionBookingService/internal/infra/storage/excursion"
	"github.com/wildroute/ExcursionBookingService/internal/integrations/userservice"
	"github.com/wildroute/ExcursionBookingService/internal/service/bookings/models"
	"github.com/wildroute/ExcursionBookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking  *domain.Booking
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, _ int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	return filterByStatus(f.bookings, status), nil
}

func (f *fakeBookingRepo) GetByExcursion(_ context.Context, _ int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	return filterByStatus(f.bookings, status), nil
}

func filterByStatus(bookings []*domain.Booking, status *domain.BookingStatus) []*domain.Booking {
	if status == nil {
		return bookings
	}
	var out []*domain.Booking
	for _, b := range bookings {
		if b.Status == *status {
			out = append(out, b)
		}
	}
	return out
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testExcursion() *domain.Excursion {
	return &domain.Excursion{ID: 1, Title: "Лоси на болоте", Capacity: 10, IsActive: true, GuideID: 100}
}

func booking(id, userID int64, people int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		ExcursionID: 1,
		UserID:      userID,
		PeopleCount: people,
		Status:      status,
		CreatedAt:   time.Now(),
	}
}

func staffUsers() *fakeUserClient {
	return &fakeUserClient{users: map[int64]*userservice.User{
		100: {ID: 100, Role: string(domain.RoleGuide)},
		200: {ID: 200, Role: string(domain.RoleGuide)},
		300: {ID: 300, Role: string(domain.RoleUser)},
		999: {ID: 999, Role: string(domain.RoleAdmin)},
	}}
}

func newTestService(bookings *fakeBookingRepo, excursions *fakeExcursionRepo) *Service {
	return NewService(bookings, excursions, staffUsers(), nopLogger{})
}

func TestGetByID_Owner(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{booking: booking(10, 7, 2, domain.StatusConfirmed)},
		&fakeExcursionRepo{excursion: testExcursion()},
	)

	resp, err := svc.GetByID(context.Background(), 10, 7)

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
}

func TestGetByID_GuideAndAdmin(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{booking: booking(10, 7, 2, domain.StatusConfirmed)},
		&fakeExcursionRepo{excursion: testExcursion()},
	)

	for _, actingUser := range []int64{100, 999} {
		_, err := svc.GetByID(context.Background(), 10, actingUser)
		require.NoError(t, err)
	}
}

func TestGetByID_ForeignGuideAndStrangerDenied(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{booking: booking(10, 7, 2, domain.StatusConfirmed)},
		&fakeExcursionRepo{excursion: testExcursion()},
	)

	for _, actingUser := range []int64{200, 300} {
		_, err := svc.GetByID(context.Background(), 10, actingUser)
		require.ErrorIs(t, err, ErrAccessDenied)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeExcursionRepo{excursion: testExcursion()})

	_, err := svc.GetByID(context.Background(), 10, 7)

	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_OwnHistory(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{bookings: []*domain.Booking{
			booking(1, 7, 2, domain.StatusConfirmed),
			booking(2, 7, 1, domain.StatusCancelled),
		}},
		&fakeExcursionRepo{excursion: testExcursion()},
	)

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:       7,
		ActingUserID: 7,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
}

func TestGetUserBookings_ForeignHistoryRequiresAdmin(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{bookings: []*domain.Booking{booking(1, 7, 2, domain.StatusConfirmed)}},
		&fakeExcursionRepo{excursion: testExcursion()},
	)

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:       7,
		ActingUserID: 300,
	})
	require.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:       7,
		ActingUserID: 999,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{bookings: []*domain.Booking{
			booking(1, 7, 2, domain.StatusConfirmed),
			booking(2, 7, 1, domain.StatusReserve),
		}},
		&fakeExcursionRepo{excursion: testExcursion()},
	)

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:       7,
		ActingUserID: 7,
		Status:       ptr.Ptr(string(domain.StatusReserve)),
	})

	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, string(domain.StatusReserve), resp.Bookings[0].Status)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeExcursionRepo{excursion: testExcursion()})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:       7,
		ActingUserID: 7,
		Status:       ptr.Ptr("PENDING"),
	})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetExcursionBookings_HidesCancelledByDefault(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{bookings: []*domain.Booking{
			booking(1, 7, 2, domain.StatusConfirmed),
			booking(2, 8, 1, domain.StatusReserve),
			booking(3, 9, 1, domain.StatusCancelled),
		}},
		&fakeExcursionRepo{excursion: testExcursion()},
	)

	resp, err := svc.GetExcursionBookings(context.Background(), &models.GetExcursionBookingsRequest{
		ExcursionID:  1,
		ActingUserID: 100,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
}

func TestGetExcursionBookings_IncludeCancelled(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{bookings: []*domain.Booking{
			booking(1, 7, 2, domain.StatusConfirmed),
			booking(3, 9, 1, domain.StatusCancelled),
		}},
		&fakeExcursionRepo{excursion: testExcursion()},
	)

	resp, err := svc.GetExcursionBookings(context.Background(), &models.GetExcursionBookingsRequest{
		ExcursionID:      1,
		ActingUserID:     999,
		IncludeCancelled: true,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
}

func TestGetExcursionBookings_ForeignGuideDenied(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{},
		&fakeExcursionRepo{excursion: testExcursion()},
	)

	_, err := svc.GetExcursionBookings(context.Background(), &models.GetExcursionBookingsRequest{
		ExcursionID:  1,
		ActingUserID: 200,
	})

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetBookingStats(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{bookings: []*domain.Booking{
			booking(1, 7, 3, domain.StatusConfirmed),
			booking(2, 8, 2, domain.StatusConfirmed),
			booking(3, 9, 2, domain.StatusReserve),
			booking(4, 11, 1, domain.StatusCancelled),
		}},
		&fakeExcursionRepo{excursion: testExcursion()},
	)

	stats, err := svc.GetBookingStats(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalBookings)
	assert.Equal(t, 5, stats.ConfirmedPeople)
	assert.Equal(t, 2, stats.ReservePeople)
	assert.Equal(t, 5, stats.AvailableSpots)
	assert.Equal(t, 10, stats.Capacity)
}

func TestGetBookingStats_ExcursionNotFound(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeExcursionRepo{})

	_, err := svc.GetBookingStats(context.Background(), 1)

	require.ErrorIs(t, err, ErrExcursionNotFound)
}
