package update_excursion

import "github.com/wildroute/ExcursionBookingService/internal/service/excursions/models"

// UpdateExcursionRequest HTTP request model
type UpdateExcursionRequest struct {
	Title    *string `json:"title,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateExcursionRequest) ToServiceRequest(excursionID, actingUserID int64) *models.UpdateExcursionRequest {
	return &models.UpdateExcursionRequest{
		ExcursionID:  excursionID,
		ActingUserID: actingUserID,
		Title:        r.Title,
		Capacity:     r.Capacity,
		IsActive:     r.IsActive,
	}
}
