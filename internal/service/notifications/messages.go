package notifications

import (
	"fmt"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
)

// statusLabel человекочитаемый статус для текста уведомления
func statusLabel(status domain.BookingStatus) string {
	switch status {
	case domain.StatusConfirmed:
		return "подтверждено"
	case domain.StatusReserve:
		return "резерв"
	case domain.StatusCancelled:
		return "отменено"
	default:
		return string(status)
	}
}

func participantBookedText(intent Intent) string {
	if intent.Status == domain.StatusReserve {
		return fmt.Sprintf("⏳ Вы добавлены в резерв экскурсии «%s» (участников: %d). Мы сообщим, когда освободится место.",
			intent.ExcursionTitle, intent.PeopleCount)
	}
	return fmt.Sprintf("✅ Вы записаны на экскурсию «%s» (участников: %d).",
		intent.ExcursionTitle, intent.PeopleCount)
}

func guideNewBookingText(intent Intent, participantName string) string {
	return fmt.Sprintf("📝 Новая запись на экскурсию «%s»: %s, участников: %d, статус: %s.",
		intent.ExcursionTitle, participantName, intent.PeopleCount, statusLabel(intent.Status))
}

func adminsNewBookingText(intent Intent, participantName string) string {
	return fmt.Sprintf("📝 Новое бронирование: экскурсия «%s», участник %s, участников: %d.",
		intent.ExcursionTitle, participantName, intent.PeopleCount)
}

func participantPromotedText(intent Intent) string {
	return fmt.Sprintf("🎉 Освободилось место! Ваша запись на экскурсию «%s» подтверждена.",
		intent.ExcursionTitle)
}

func participantCancelledText(intent Intent) string {
	return fmt.Sprintf("❌ Ваша запись на экскурсию «%s» отменена.", intent.ExcursionTitle)
}

func guideCancellationText(intent Intent, participantName string) string {
	return fmt.Sprintf("❌ Отмена записи на экскурсию «%s»: %s.",
		intent.ExcursionTitle, participantName)
}

func adminsCancellationText(intent Intent, participantName string) string {
	return fmt.Sprintf("❌ Отмена бронирования: экскурсия «%s», участник %s.",
		intent.ExcursionTitle, participantName)
}
