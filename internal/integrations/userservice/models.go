package userservice

import "strings"

// User модель пользователя из UserService
type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Role           string `json:"role"` // user / guide / admin
	TelegramChatID *int64 `json:"telegram_chat_id,omitempty"`
}

// DisplayName возвращает имя для уведомлений: "Имя Фамилия" или email,
// если имя не заполнено
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// HasTelegram возвращает true, если к аккаунту привязан Telegram
func (u *User) HasTelegram() bool {
	return u.TelegramChatID != nil
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
