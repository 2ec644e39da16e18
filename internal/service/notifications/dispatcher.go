// Package notifications диспетчер уведомлений о событиях бронирования.
//
// Очередь ограничена, постановка неблокирующая: при переполнении
// намерение отбрасывается с записью в лог. Сбой доставки логируется и
// не повторяется — доставка best-effort и не должна задерживать или
// ломать путь принятия решения о бронировании.
package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
)

const deliveryTimeout = 5 * time.Second

// Dispatcher диспетчер уведомлений с фоновым воркером
type Dispatcher struct {
	queue   chan Intent
	users   UserProvider
	bot     MessageSender
	logger  Logger
	metrics MetricsCollector // nil, если метрики выключены

	closeOnce sync.Once
	done      chan struct{}
}

// NewDispatcher создает диспетчер с очередью указанного размера
func NewDispatcher(users UserProvider, bot MessageSender, queueSize int, logger Logger, metrics MetricsCollector) *Dispatcher {
	return &Dispatcher{
		queue:   make(chan Intent, queueSize),
		users:   users,
		bot:     bot,
		logger:  logger,
		metrics: metrics,
		done:    make(chan struct{}),
	}
}

// Run запускает фоновый воркер. Вызывается один раз при старте сервиса.
func (d *Dispatcher) Run() {
	go func() {
		defer close(d.done)
		for intent := range d.queue {
			d.deliver(intent)
		}
	}()
}

// Close останавливает прием новых намерений и дожидается доставки
// уже поставленных в очередь
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}

// ParticipantBooked уведомляет участника о результате его заявки
func (d *Dispatcher) ParticipantBooked(participantID int64, excursionTitle string, status domain.BookingStatus, peopleCount int) {
	d.enqueue(Intent{
		Kind:           KindParticipantBooked,
		ParticipantID:  participantID,
		ExcursionTitle: excursionTitle,
		Status:         status,
		PeopleCount:    peopleCount,
	})
}

// GuideNewBooking уведомляет экскурсовода о новой записи
func (d *Dispatcher) GuideNewBooking(guideID, participantID int64, excursionTitle string, peopleCount int, status domain.BookingStatus) {
	d.enqueue(Intent{
		Kind:           KindGuideNewBooking,
		GuideID:        guideID,
		ParticipantID:  participantID,
		ExcursionTitle: excursionTitle,
		PeopleCount:    peopleCount,
		Status:         status,
	})
}

// AdminsNewBooking уведомляет администраторов о новом бронировании
func (d *Dispatcher) AdminsNewBooking(participantID int64, excursionTitle string, peopleCount int) {
	d.enqueue(Intent{
		Kind:           KindAdminsNewBooking,
		ParticipantID:  participantID,
		ExcursionTitle: excursionTitle,
		PeopleCount:    peopleCount,
	})
}

// ParticipantPromoted уведомляет участника о переводе из резерва
func (d *Dispatcher) ParticipantPromoted(participantID int64, excursionTitle string) {
	d.enqueue(Intent{
		Kind:           KindParticipantPromoted,
		ParticipantID:  participantID,
		ExcursionTitle: excursionTitle,
	})
}

// ParticipantCancelled уведомляет участника об отмене его записи
// кем-то другим (админом или экскурсоводом)
func (d *Dispatcher) ParticipantCancelled(participantID int64, excursionTitle string) {
	d.enqueue(Intent{
		Kind:           KindParticipantCancelled,
		ParticipantID:  participantID,
		ExcursionTitle: excursionTitle,
	})
}

// GuideCancellation уведомляет экскурсовода об отмене записи
func (d *Dispatcher) GuideCancellation(guideID, participantID int64, excursionTitle string) {
	d.enqueue(Intent{
		Kind:           KindGuideCancellation,
		GuideID:        guideID,
		ParticipantID:  participantID,
		ExcursionTitle: excursionTitle,
	})
}

// AdminsCancellation уведомляет администраторов об отмене бронирования
func (d *Dispatcher) AdminsCancellation(participantID int64, excursionTitle string) {
	d.enqueue(Intent{
		Kind:           KindAdminsCancellation,
		ParticipantID:  participantID,
		ExcursionTitle: excursionTitle,
	})
}

func (d *Dispatcher) enqueue(intent Intent) {
	select {
	case d.queue <- intent:
		if d.metrics != nil {
			d.metrics.NotificationEnqueued(string(intent.Kind))
		}
	default:
		d.logger.Warn("notifications: queue is full, dropping intent kind=%s participant=%d",
			intent.Kind, intent.ParticipantID)
		if d.metrics != nil {
			d.metrics.NotificationDropped()
		}
	}
}

// deliver разрешает адресатов и отправляет сообщения.
// Любая ошибка здесь терминальна: логируем и идем дальше.
func (d *Dispatcher) deliver(intent Intent) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	switch intent.Kind {
	case KindParticipantBooked:
		d.sendToUser(ctx, intent.ParticipantID, participantBookedText(intent))

	case KindGuideNewBooking:
		participantName := d.participantName(ctx, intent.ParticipantID)
		d.sendToUser(ctx, intent.GuideID, guideNewBookingText(intent, participantName))

	case KindAdminsNewBooking:
		participantName := d.participantName(ctx, intent.ParticipantID)
		d.sendToAdmins(ctx, adminsNewBookingText(intent, participantName))

	case KindParticipantPromoted:
		d.sendToUser(ctx, intent.ParticipantID, participantPromotedText(intent))

	case KindParticipantCancelled:
		d.sendToUser(ctx, intent.ParticipantID, participantCancelledText(intent))

	case KindGuideCancellation:
		participantName := d.participantName(ctx, intent.ParticipantID)
		d.sendToUser(ctx, intent.GuideID, guideCancellationText(intent, participantName))

	case KindAdminsCancellation:
		participantName := d.participantName(ctx, intent.ParticipantID)
		d.sendToAdmins(ctx, adminsCancellationText(intent, participantName))

	default:
		d.logger.Error("notifications: unknown intent kind=%s", intent.Kind)
	}
}

func (d *Dispatcher) sendToUser(ctx context.Context, userID int64, text string) {
	user, err := d.users.GetUser(ctx, userID)
	if err != nil {
		d.logger.Warn("notifications: failed to resolve user_id=%d: %v", userID, err)
		d.countFailure()
		return
	}

	if !user.HasTelegram() {
		// Пользователь без привязанного Telegram — доставлять некуда
		return
	}

	d.send(ctx, *user.TelegramChatID, text)
}

func (d *Dispatcher) sendToAdmins(ctx context.Context, text string) {
	admins, err := d.users.GetAdmins(ctx)
	if err != nil {
		d.logger.Warn("notifications: failed to resolve admins: %v", err)
		d.countFailure()
		return
	}

	for _, admin := range admins {
		if !admin.HasTelegram() {
			continue
		}
		d.send(ctx, *admin.TelegramChatID, text)
	}
}

func (d *Dispatcher) send(ctx context.Context, chatID int64, text string) {
	if err := d.bot.SendMessage(ctx, chatID, text); err != nil {
		d.logger.Warn("notifications: failed to send message to chat_id=%d: %v", chatID, err)
		d.countFailure()
	}
}

func (d *Dispatcher) countFailure() {
	if d.metrics != nil {
		d.metrics.NotificationFailed()
	}
}

// participantName возвращает имя участника для текста уведомления;
// при недоступности UserService подставляет заглушку, доставка
// остальным адресатам не срывается
func (d *Dispatcher) participantName(ctx context.Context, participantID int64) string {
	user, err := d.users.GetUser(ctx, participantID)
	if err != nil {
		d.logger.Warn("notifications: failed to resolve participant user_id=%d: %v", participantID, err)
		return "неизвестный участник"
	}
	return user.DisplayName()
}
