package promote_reserve

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("promote_reserve: internal error")
)
