package models

import (
	"time"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
)

// Request модели

// CreateExcursionRequest запрос на создание экскурсии
type CreateExcursionRequest struct {
	ActingUserID int64  `json:"actingUserId"`
	Title        string `json:"title"`
	Capacity     int    `json:"capacity"`
	GuideID      *int64 `json:"guideId,omitempty"` // Явный гид, только для админа
}

// UpdateExcursionRequest запрос на изменение экскурсии
type UpdateExcursionRequest struct {
	ExcursionID  int64   `json:"excursionId"`
	ActingUserID int64   `json:"actingUserId"`
	Title        *string `json:"title,omitempty"`
	Capacity     *int    `json:"capacity,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
}

// IsEmpty возвращает true, если в запросе нет ни одного изменяемого поля
func (r *UpdateExcursionRequest) IsEmpty() bool {
	return r.Title == nil && r.Capacity == nil && r.IsActive == nil
}

// Response модели

// ExcursionResponse ответ с данными экскурсии
type ExcursionResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Capacity  int       `json:"capacity"`
	IsActive  bool      `json:"isActive"`
	GuideID   int64     `json:"guideId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ExcursionListResponse ответ со списком экскурсий
type ExcursionListResponse struct {
	Excursions []*ExcursionResponse `json:"excursions"`
	Total      int                  `json:"total"`
}

// FromDomainExcursion конвертирует domain.Excursion в response
func FromDomainExcursion(excursion *domain.Excursion) *ExcursionResponse {
	return &ExcursionResponse{
		ID:        excursion.ID,
		Title:     excursion.Title,
		Capacity:  excursion.Capacity,
		IsActive:  excursion.IsActive,
		GuideID:   excursion.GuideID,
		CreatedAt: excursion.CreatedAt,
		UpdatedAt: excursion.UpdatedAt,
	}
}

// FromDomainExcursionList конвертирует список domain.Excursion в response
func FromDomainExcursionList(excursions []*domain.Excursion) *ExcursionListResponse {
	result := make([]*ExcursionResponse, 0, len(excursions))
	for _, excursion := range excursions {
		result = append(result, FromDomainExcursion(excursion))
	}
	return &ExcursionListResponse{
		Excursions: result,
		Total:      len(result),
	}
}
