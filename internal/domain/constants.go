package domain

// Business validation constants
const (
	// MinPeopleCount/MaxPeopleCount жесткое продуктовое ограничение на
	// размер группы в одном бронировании
	MinPeopleCount = 1
	MaxPeopleCount = 3

	MinCapacity = 1

	MaxNotesLength = 500
	MaxTitleLength = 200
)
