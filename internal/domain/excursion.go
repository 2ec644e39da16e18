package domain

import "time"

// Excursion represents the bookable, capacity-limited event
type Excursion struct {
	ID       int64
	Title    string
	Capacity int // максимум одновременно подтвержденных участников
	IsActive bool
	GuideID  int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasSpaceFor returns true if peopleCount fits within capacity given
// the current number of confirmed people
func (e *Excursion) HasSpaceFor(confirmedPeople, peopleCount int) bool {
	return confirmedPeople+peopleCount <= e.Capacity
}

// AvailableSpots returns the number of free confirmed spots, never negative
func (e *Excursion) AvailableSpots(confirmedPeople int) int {
	if confirmedPeople >= e.Capacity {
		return 0
	}
	return e.Capacity - confirmedPeople
}

// IsGuidedBy returns true if the excursion is assigned to the given guide
func (e *Excursion) IsGuidedBy(userID int64) bool {
	return e.GuideID == userID
}

// ExcursionPatch набор изменяемых полей экскурсии
type ExcursionPatch struct {
	Title    *string
	Capacity *int
	IsActive *bool
}

// IsEmpty returns true if the patch changes nothing
func (p *ExcursionPatch) IsEmpty() bool {
	return p.Title == nil && p.Capacity == nil && p.IsActive == nil
}
