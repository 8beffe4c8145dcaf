package return_reservation

import (
	"time"

	returnReservation "github.com/m04kA/SMC-RentalService/internal/usecase/return_reservation"
)

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID            int64  `json:"id"`
	CustomerID    int64  `json:"customerId"`
	ModelID       int64  `json:"modelId"`
	BranchID      int64  `json:"branchId"`
	AssignedPlate string `json:"assignedPlate"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	State         string `json:"state"`
	Total         string `json:"total"`
	ReturnedAt    string `json:"returnedAt"`
	CreatedAt     string `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *returnReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:            resp.ID,
		CustomerID:    resp.CustomerID,
		ModelID:       resp.ModelID,
		BranchID:      resp.BranchID,
		AssignedPlate: resp.AssignedPlate,
		StartDate:     resp.StartDate,
		EndDate:       resp.EndDate,
		State:         resp.State,
		Total:         resp.Total,
		ReturnedAt:    resp.ReturnedAt.Format(time.RFC3339),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
