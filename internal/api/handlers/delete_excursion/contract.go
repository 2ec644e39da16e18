package delete_excursion

import "context"

type ExcursionService interface {
	SoftDelete(ctx context.Context, id int64, actingUserID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
