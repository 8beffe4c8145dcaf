package assign_unit

import (
	"time"

	assignUnit "github.com/m04kA/SMC-RentalService/internal/usecase/assign_unit"
)

// AssignUnitRequest HTTP request model
type AssignUnitRequest struct {
	Plate    string  `json:"plate"`
	AddonIDs []int64 `json:"addonIds,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID            int64   `json:"id"`
	CustomerID    int64   `json:"customerId"`
	ModelID       int64   `json:"modelId"`
	BranchID      int64   `json:"branchId"`
	AssignedPlate string  `json:"assignedPlate"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	Days          int     `json:"days"`
	State         string  `json:"state"`
	BaseTotal     string  `json:"baseTotal"`
	AddonsTotal   string  `json:"addonsTotal"`
	Total         string  `json:"total"`
	AddonIDs      []int64 `json:"addonIds"`
	CreatedAt     string  `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *assignUnit.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:            resp.ID,
		CustomerID:    resp.CustomerID,
		ModelID:       resp.ModelID,
		BranchID:      resp.BranchID,
		AssignedPlate: resp.AssignedPlate,
		StartDate:     resp.StartDate,
		EndDate:       resp.EndDate,
		Days:          resp.Days,
		State:         resp.State,
		BaseTotal:     resp.BaseTotal,
		AddonsTotal:   resp.AddonsTotal,
		Total:         resp.Total,
		AddonIDs:      resp.AddonIDs,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
