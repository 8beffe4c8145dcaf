package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	createReservation "github.com/m04kA/SMC-RentalService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ModelID   int64  `json:"modelId"`
	BranchID  int64  `json:"branchId"`
	StartDate string `json:"startDate"` // "2026-03-15"
	EndDate   string `json:"endDate"`   // "2026-03-18"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customerId"`
	ModelID    int64  `json:"modelId"`
	BranchID   int64  `json:"branchId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Days       int    `json:"days"`
	State      string `json:"state"`
	BaseTotal  string `json:"baseTotal"`
	Total      string `json:"total"`
	CreatedAt  string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	startDate, err := time.ParseInLocation(domain.DateFormat, r.StartDate, domain.RentalLocation)
	if err != nil {
		return nil, err
	}

	endDate, err := time.ParseInLocation(domain.DateFormat, r.EndDate, domain.RentalLocation)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:    userID,
		ModelID:   r.ModelID,
		BranchID:  r.BranchID,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:         resp.ID,
		CustomerID: resp.CustomerID,
		ModelID:    resp.ModelID,
		BranchID:   resp.BranchID,
		StartDate:  resp.StartDate,
		EndDate:    resp.EndDate,
		Days:       resp.Days,
		State:      resp.State,
		BaseTotal:  resp.BaseTotal,
		Total:      resp.Total,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
	}
}
