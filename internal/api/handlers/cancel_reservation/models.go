package cancel_reservation

import (
	"time"

	cancelReservation "github.com/m04kA/SMC-RentalService/internal/usecase/cancel_reservation"
)

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID            int64  `json:"id"`
	CustomerID    int64  `json:"customerId"`
	ModelID       int64  `json:"modelId"`
	BranchID      int64  `json:"branchId"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	State         string `json:"state"`
	BaseTotal     string `json:"baseTotal"`
	AddonsTotal   string `json:"addonsTotal"`
	Total         string `json:"total"`
	OriginalTotal string `json:"originalTotal"`
	PolicyKind    string `json:"policyKind"`
	CreatedAt     string `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:            resp.ID,
		CustomerID:    resp.CustomerID,
		ModelID:       resp.ModelID,
		BranchID:      resp.BranchID,
		StartDate:     resp.StartDate,
		EndDate:       resp.EndDate,
		State:         resp.State,
		BaseTotal:     resp.BaseTotal,
		AddonsTotal:   resp.AddonsTotal,
		Total:         resp.Total,
		OriginalTotal: resp.OriginalTotal,
		PolicyKind:    resp.PolicyKind,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
