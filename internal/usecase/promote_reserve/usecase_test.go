package promote_reserve

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
	excursionRepo "github.com/wildroute/ExcursionBookingService/internal/infra/storage/excursion"
)

type fakeBookingRepo struct {
	reserves        []*domain.Booking
	confirmedPeople int
	statusUpdates   map[int64]domain.BookingStatus
}

func (f *fakeBookingRepo) GetByExcursion(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return f.reserves, nil
}

func (f *fakeBookingRepo) SumConfirmedPeople(_ context.Context, _ int64) (int, error) {
	return f.confirmedPeople, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if f.statusUpdates == nil {
		f.statusUpdates = make(map[int64]domain.BookingStatus)
	}
	f.statusUpdates[id] = status
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	promotedUsers []int64
	guideNotices  int
}

func (f *fakeNotifier) ParticipantPromoted(participantID int64, _ string) {
	f.promotedUsers = append(f.promotedUsers, participantID)
}

func (f *fakeNotifier) GuideNewBooking(_, _ int64, _ string, _ int, _ domain.BookingStatus) {
	f.guideNotices++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func reserveBooking(id, userID int64, people int, createdAt time.Time) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		ExcursionID: 1,
		UserID:      userID,
		PeopleCount: people,
		Status:      domain.StatusReserve,
		CreatedAt:   createdAt,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, excursions *fakeExcursionRepo, notifier *fakeNotifier) *UseCase {
	return NewUseCase(bookings, excursions, fakeTxManager{}, notifier, nopLogger{})
}

func TestExecute_PromotesOldestReserveThatFits(t *testing.T) {
	// Вместимость 2, все места свободны: B (1 человек) старше C (1 человек).
	// Повышается только B, C остаётся в резерве до следующего прохода.
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	bookings := &fakeBookingRepo{
		confirmedPeople: 0,
		reserves: []*domain.Booking{
			reserveBooking(2, 20, 1, base),
			reserveBooking(3, 30, 1, base.Add(time.Minute)),
		},
	}
	excursions := &fakeExcursionRepo{excursion: &domain.Excursion{ID: 1, Title: "Бобровая плотина", Capacity: 2, IsActive: true, GuideID: 100}}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(bookings, excursions, notifier)

	err := uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, map[int64]domain.BookingStatus{2: domain.StatusConfirmed}, bookings.statusUpdates)
	assert.Equal(t, []int64{20}, notifier.promotedUsers)
	assert.Equal(t, 1, notifier.guideNotices)
}

func TestExecute_SkipsOversizedHead(t *testing.T) {
	// Свободно одно место: самая старая бронь на троих не помещается.
	// Она пропускается, повышается более поздняя бронь на одного.
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	bookings := &fakeBookingRepo{
		confirmedPeople: 9,
		reserves: []*domain.Booking{
			reserveBooking(2, 20, 3, base),
			reserveBooking(3, 30, 1, base.Add(time.Minute)),
		},
	}
	excursions := &fakeExcursionRepo{excursion: &domain.Excursion{ID: 1, Title: "Бобровая плотина", Capacity: 10, IsActive: true, GuideID: 100}}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(bookings, excursions, notifier)

	err := uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, map[int64]domain.BookingStatus{3: domain.StatusConfirmed}, bookings.statusUpdates)
	assert.Equal(t, []int64{30}, notifier.promotedUsers)
}

func TestExecute_NoReserveFits(t *testing.T) {
	// Свободно одно место, все резервные брони крупнее — без повышения
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	bookings := &fakeBookingRepo{
		confirmedPeople: 9,
		reserves: []*domain.Booking{
			reserveBooking(2, 20, 3, base),
			reserveBooking(3, 30, 2, base.Add(time.Minute)),
		},
	}
	excursions := &fakeExcursionRepo{excursion: &domain.Excursion{ID: 1, Title: "Бобровая плотина", Capacity: 10, IsActive: true, GuideID: 100}}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(bookings, excursions, notifier)

	err := uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.Empty(t, bookings.statusUpdates)
	assert.Empty(t, notifier.promotedUsers)
}

func TestExecute_PromotesExactFit(t *testing.T) {
	bookings := &fakeBookingRepo{
		confirmedPeople: 7,
		reserves: []*domain.Booking{
			reserveBooking(2, 20, 3, time.Now()),
		},
	}
	excursions := &fakeExcursionRepo{excursion: &domain.Excursion{ID: 1, Title: "Бобровая плотина", Capacity: 10, IsActive: true, GuideID: 100}}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(bookings, excursions, notifier)

	err := uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, bookings.statusUpdates[2])
}

func TestExecute_NoReserves(t *testing.T) {
	bookings := &fakeBookingRepo{confirmedPeople: 3}
	excursions := &fakeExcursionRepo{excursion: &domain.Excursion{ID: 1, Capacity: 10, IsActive: true}}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(bookings, excursions, notifier)

	err := uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.Empty(t, bookings.statusUpdates)
	assert.Empty(t, notifier.promotedUsers)
}

func TestExecute_MissingExcursionIsNoop(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(bookings, &fakeExcursionRepo{}, &fakeNotifier{})

	err := uc.Execute(context.Background(), 99)

	require.NoError(t, err)
	assert.Empty(t, bookings.statusUpdates)
}

func TestExecute_PromotesOnlyOnePerPass(t *testing.T) {
	// После повышения первой брони места ещё остаются,
	// но за один проход повышается ровно одна бронь
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	bookings := &fakeBookingRepo{
		confirmedPeople: 0,
		reserves: []*domain.Booking{
			reserveBooking(2, 20, 1, base),
			reserveBooking(3, 30, 1, base.Add(time.Minute)),
			reserveBooking(4, 40, 1, base.Add(2 * time.Minute)),
		},
	}
	excursions := &fakeExcursionRepo{excursion: &domain.Excursion{ID: 1, Title: "Бобровая плотина", Capacity: 10, IsActive: true, GuideID: 100}}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(bookings, excursions, notifier)

	err := uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, bookings.statusUpdates, 1)
	assert.Equal(t, domain.StatusConfirmed, bookings.statusUpdates[2])
}
