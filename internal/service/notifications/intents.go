package notifications

import "github.com/wildroute/ExcursionBookingService/internal/domain"

// IntentKind вид намерения уведомления
type IntentKind string

const (
	KindParticipantBooked    IntentKind = "participant_booked"
	KindGuideNewBooking      IntentKind = "guide_new_booking"
	KindAdminsNewBooking     IntentKind = "admins_new_booking"
	KindParticipantPromoted  IntentKind = "participant_promoted"
	KindParticipantCancelled IntentKind = "participant_cancelled"
	KindGuideCancellation    IntentKind = "guide_cancellation"
	KindAdminsCancellation   IntentKind = "admins_cancellation"
)

// Intent намерение уведомления. Ядро бронирования только ставит
// намерения в очередь; разрешение адресатов и доставка происходят в
// фоновом воркере и никогда не влияют на результат операции.
type Intent struct {
	Kind IntentKind

	ParticipantID  int64 // владелец бронирования
	GuideID        int64 // экскурсовод (для guide_* интентов)
	ExcursionTitle string
	PeopleCount    int
	Status         domain.BookingStatus
}
