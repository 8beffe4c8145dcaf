package search_availability

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	searchAvailability "github.com/m04kA/SMC-RentalService/internal/usecase/search_availability"
)

// ModelAvailabilityResponse HTTP модель доступности одной модели
type ModelAvailabilityResponse struct {
	ModelID           int64   `json:"modelId"`
	Brand             string  `json:"brand"`
	Model             string  `json:"model"`
	DailyPrice        string  `json:"dailyPrice"`
	PolicyKind        string  `json:"policyKind"`
	RefundPercent     *string `json:"refundPercent,omitempty"`
	PassengerCapacity int     `json:"passengerCapacity"`
	TotalUnits        int     `json:"totalUnits"`
	AvailableUnits    int     `json:"availableUnits"`
}

// SearchResponse HTTP модель ответа поиска
type SearchResponse struct {
	BranchID  int64                       `json:"branchId"`
	StartDate string                      `json:"startDate"`
	EndDate   string                      `json:"endDate"`
	Days      int                         `json:"days"`
	Models    []ModelAvailabilityResponse `json:"models"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchAvailability.Response) *SearchResponse {
	models := make([]ModelAvailabilityResponse, len(resp.Models))
	for i, m := range resp.Models {
		models[i] = ModelAvailabilityResponse{
			ModelID:           m.ModelID,
			Brand:             m.Brand,
			Model:             m.Model,
			DailyPrice:        m.DailyPrice,
			PolicyKind:        m.PolicyKind,
			RefundPercent:     m.RefundPercent,
			PassengerCapacity: m.PassengerCapacity,
			TotalUnits:        m.TotalUnits,
			AvailableUnits:    m.AvailableUnits,
		}
	}

	return &SearchResponse{
		BranchID:  resp.BranchID,
		StartDate: resp.StartDate.Format(domain.DateFormat),
		EndDate:   resp.EndDate.Format(domain.DateFormat),
		Days:      resp.Days,
		Models:    models,
	}
}
