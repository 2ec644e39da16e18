package create_excursion

import "github.com/wildroute/ExcursionBookingService/internal/service/excursions/models"

// CreateExcursionRequest HTTP request model
type CreateExcursionRequest struct {
	Title    string `json:"title"`
	Capacity int    `json:"capacity"`
	GuideID  *int64 `json:"guideId,omitempty"` // Только для админа
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateExcursionRequest) ToServiceRequest(actingUserID int64) *models.CreateExcursionRequest {
	return &models.CreateExcursionRequest{
		ActingUserID: actingUserID,
		Title:        r.Title,
		Capacity:     r.Capacity,
		GuideID:      r.GuideID,
	}
}
