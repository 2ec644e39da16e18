package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
	"github.com/wildroute/ExcursionBookingService/internal/integrations/userservice"
	"github.com/wildroute/ExcursionBookingService/pkg/ptr"
)

type fakeUserProvider struct {
	users   map[int64]*userservice.User
	admins  []userservice.User
	userErr error
}

func (f *fakeUserProvider) GetUser(_ context.Context, userID int64) (*userservice.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	user, ok := f.users[userID]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserProvider) GetAdmins(_ context.Context) ([]userservice.User, error) {
	return f.admins, nil
}

type sentMessage struct {
	chatID int64
	text   string
}

type fakeBot struct {
	mu      sync.Mutex
	sent    []sentMessage
	sendErr error
}

func (f *fakeBot) SendMessage(_ context.Context, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func (f *fakeBot) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func participant() *userservice.User {
	return &userservice.User{
		ID:             1,
		FirstName:      "Иван",
		LastName:       "Орлов",
		Role:           "user",
		TelegramChatID: ptr.Ptr(int64(1001)),
	}
}

func TestDispatcher_DeliversParticipantBooked(t *testing.T) {
	users := &fakeUserProvider{users: map[int64]*userservice.User{1: participant()}}
	bot := &fakeBot{}
	d := NewDispatcher(users, bot, 8, nopLogger{}, nil)
	d.Run()

	d.ParticipantBooked(1, "Совы Мещёры", domain.StatusConfirmed, 2)
	d.Close()

	sent := bot.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, int64(1001), sent[0].chatID)
	assert.Contains(t, sent[0].text, "Совы Мещёры")
}

func TestDispatcher_ReserveTextDiffersFromConfirmed(t *testing.T) {
	users := &fakeUserProvider{users: map[int64]*userservice.User{1: participant()}}
	bot := &fakeBot{}
	d := NewDispatcher(users, bot, 8, nopLogger{}, nil)
	d.Run()

	d.ParticipantBooked(1, "Совы Мещёры", domain.StatusReserve, 2)
	d.Close()

	sent := bot.messages()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].text, "резерв")
}

func TestDispatcher_FansOutToAdmins(t *testing.T) {
	users := &fakeUserProvider{
		users: map[int64]*userservice.User{1: participant()},
		admins: []userservice.User{
			{ID: 900, TelegramChatID: ptr.Ptr(int64(9001))},
			{ID: 901}, // без привязанного Telegram — пропускается
			{ID: 902, TelegramChatID: ptr.Ptr(int64(9002))},
		},
	}
	bot := &fakeBot{}
	d := NewDispatcher(users, bot, 8, nopLogger{}, nil)
	d.Run()

	d.AdminsNewBooking(1, "Совы Мещёры", 3)
	d.Close()

	sent := bot.messages()
	require.Len(t, sent, 2)
	assert.Equal(t, int64(9001), sent[0].chatID)
	assert.Equal(t, int64(9002), sent[1].chatID)
	assert.Contains(t, sent[0].text, "Иван Орлов")
}

func TestDispatcher_SkipsParticipantWithoutTelegram(t *testing.T) {
	noChat := participant()
	noChat.TelegramChatID = nil
	users := &fakeUserProvider{users: map[int64]*userservice.User{1: noChat}}
	bot := &fakeBot{}
	d := NewDispatcher(users, bot, 8, nopLogger{}, nil)
	d.Run()

	d.ParticipantPromoted(1, "Совы Мещёры")
	d.Close()

	assert.Empty(t, bot.messages())
}

func TestDispatcher_DropsOnFullQueue(t *testing.T) {
	users := &fakeUserProvider{users: map[int64]*userservice.User{1: participant()}}
	bot := &fakeBot{}
	// Воркер не запущен — очередь размера 1 переполняется вторым интентом
	d := NewDispatcher(users, bot, 1, nopLogger{}, nil)

	d.ParticipantCancelled(1, "Совы Мещёры")
	d.ParticipantCancelled(1, "Совы Мещёры")

	d.Run()
	d.Close()

	assert.Len(t, bot.messages(), 1)
}

func TestDispatcher_DeliveryFailureDoesNotStopWorker(t *testing.T) {
	users := &fakeUserProvider{users: map[int64]*userservice.User{1: participant()}}
	bot := &fakeBot{sendErr: errors.New("bot unavailable")}
	d := NewDispatcher(users, bot, 8, nopLogger{}, nil)
	d.Run()

	d.ParticipantCancelled(1, "Совы Мещёры")
	d.GuideCancellation(5, 1, "Совы Мещёры")
	d.Close()

	// Сбои доставки залогированы и проглочены — паники и дедлока нет
	assert.Empty(t, bot.messages())
}

func TestDispatcher_GuideTextNamesParticipant(t *testing.T) {
	guide := &userservice.User{ID: 5, Role: "guide", TelegramChatID: ptr.Ptr(int64(5005))}
	users := &fakeUserProvider{users: map[int64]*userservice.User{1: participant(), 5: guide}}
	bot := &fakeBot{}
	d := NewDispatcher(users, bot, 8, nopLogger{}, nil)
	d.Run()

	d.GuideNewBooking(5, 1, "Совы Мещёры", 2, domain.StatusConfirmed)
	d.Close()

	sent := bot.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, int64(5005), sent[0].chatID)
	assert.Contains(t, sent[0].text, "Иван Орлов")
	assert.Contains(t, sent[0].text, "подтверждено")
}
