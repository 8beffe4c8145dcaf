package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	// ErrInvalidState возвращается при некорректном состоянии резервации
	ErrInvalidState = errors.New("invalid reservation state")
)

// Request модели

// GetUserReservationsRequest запрос на получение резерваций клиента
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	State  *string `json:"state,omitempty"`
}

// GetBranchReservationsRequest запрос на получение резерваций филиала
type GetBranchReservationsRequest struct {
	UserID          int64      `json:"userId"`
	BranchID        int64      `json:"branchId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	State           *string    `json:"state,omitempty"`           // Фильтр по состоянию (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и завершённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBranchReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		BranchID:        r.BranchID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем состояние если указано
	if r.State != nil {
		state, err := ToDomainReservationState(*r.State)
		if err != nil {
			return filter, err
		}
		filter.State = &state
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными резервации
type ReservationResponse struct {
	ID            int64   `json:"id"`
	CustomerID    int64   `json:"customerId"`
	ModelID       int64   `json:"modelId"`
	BranchID      int64   `json:"branchId"`
	AssignedPlate *string `json:"assignedPlate,omitempty"`
	StartDate     string  `json:"startDate"` // "2026-03-15"
	EndDate       string  `json:"endDate"`   // "2026-03-18"
	Days          int     `json:"days"`
	State         string  `json:"state"`

	BaseTotal     string `json:"baseTotal"`
	AddonsTotal   string `json:"addonsTotal"`
	CurrentTotal  string `json:"currentTotal"`
	OriginalTotal string `json:"originalTotal"`

	AddonIDs []int64 `json:"addonIds"`

	ReturnedAt *string   `json:"returnedAt,omitempty"` // ISO 8601 format
	CreatedAt  time.Time `json:"createdAt"`
}

// ReservationListResponse ответ со списком резерваций
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(res *domain.Reservation, addonIDs []int64) *ReservationResponse {
	if res == nil {
		return nil
	}

	if addonIDs == nil {
		addonIDs = []int64{}
	}

	resp := &ReservationResponse{
		ID:            res.ID,
		CustomerID:    res.CustomerID,
		ModelID:       res.ModelID,
		BranchID:      res.BranchID,
		AssignedPlate: res.AssignedPlate,
		StartDate:     res.Period.Start.Format(domain.DateFormat),
		EndDate:       res.Period.End.Format(domain.DateFormat),
		Days:          res.Period.Days(),
		State:         string(res.State),
		BaseTotal:     res.BaseTotal.StringFixed(2),
		AddonsTotal:   res.AddonsTotal.StringFixed(2),
		CurrentTotal:  res.CurrentTotal().StringFixed(2),
		OriginalTotal: res.OriginalTotal.StringFixed(2),
		AddonIDs:      addonIDs,
		CreatedAt:     res.CreatedAt,
	}

	// Конвертируем ReturnedAt в строку ISO 8601
	if res.ReturnedAt != nil {
		returnedStr := res.ReturnedAt.Format(time.RFC3339)
		resp.ReturnedAt = &returnedStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO.
// Списочные ответы не включают состав услуг, только суммы.
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, res := range reservations {
		if resResp := FromDomainReservation(res, nil); resResp != nil {
			resp.Reservations[i] = *resResp
		}
	}

	return resp
}

// ToDomainReservationState конвертирует строку в domain.ReservationState с валидацией
func ToDomainReservationState(state string) (domain.ReservationState, error) {
	s := domain.ReservationState(state)

	validStates := []domain.ReservationState{
		domain.StatePending,
		domain.StateDelivered,
		domain.StateCancelled,
		domain.StateReturned,
	}

	for _, valid := range validStates {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidState
}
