package models

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	// ErrInvalidPrice возвращается при некорректной строке цены
	ErrInvalidPrice = errors.New("invalid price value")

	// ErrInvalidUnitState возвращается при некорректном состоянии юнита
	ErrInvalidUnitState = errors.New("invalid unit state")
)

// Request модели

// CreateModelRequest запрос на создание модели автомобиля
type CreateModelRequest struct {
	UserID            int64   `json:"userId"`
	Brand             string  `json:"brand"`
	Model             string  `json:"model"`
	CategoryID        *int64  `json:"categoryId,omitempty"`
	DailyPrice        string  `json:"dailyPrice"`              // "150.00"
	PolicyKind        string  `json:"policyKind"`              // full_refund | partial_refund | no_refund
	RefundPercent     *string `json:"refundPercent,omitempty"` // только для partial_refund
	PassengerCapacity int     `json:"passengerCapacity"`
}

// ToDomainModel конвертирует request в domain модель с валидацией политики
func (r *CreateModelRequest) ToDomainModel() (*domain.VehicleModel, error) {
	price, err := decimal.NewFromString(r.DailyPrice)
	if err != nil {
		return nil, ErrInvalidPrice
	}

	var percent *decimal.Decimal
	if r.RefundPercent != nil {
		p, err := decimal.NewFromString(*r.RefundPercent)
		if err != nil {
			return nil, ErrInvalidPrice
		}
		percent = &p
	}

	policy, err := domain.NewCancellationPolicy(domain.PolicyKind(r.PolicyKind), percent)
	if err != nil {
		return nil, err
	}

	return &domain.VehicleModel{
		Brand:             r.Brand,
		Model:             r.Model,
		CategoryID:        r.CategoryID,
		DailyPrice:        price,
		Policy:            policy,
		PassengerCapacity: r.PassengerCapacity,
	}, nil
}

// CreateUnitRequest запрос на создание физического автомобиля
type CreateUnitRequest struct {
	UserID   int64  `json:"userId"`
	Plate    string `json:"plate"`
	ModelID  *int64 `json:"modelId,omitempty"`
	BranchID int64  `json:"branchId"`
	Year     int    `json:"year"`
}

// UpdateUnitStateRequest запрос на смену состояния автомобиля
type UpdateUnitStateRequest struct {
	UserID int64  `json:"userId"`
	State  string `json:"state"` // enabled | disabled | decommissioned
}

// CreateAddonRequest запрос на создание дополнительной услуги
type CreateAddonRequest struct {
	UserID     int64  `json:"userId"`
	Name       string `json:"name"`
	DailyPrice string `json:"dailyPrice"`
}

// Response модели

// ModelResponse ответ с данными модели автомобиля
type ModelResponse struct {
	ID                int64   `json:"id"`
	Brand             string  `json:"brand"`
	Model             string  `json:"model"`
	CategoryID        *int64  `json:"categoryId,omitempty"`
	DailyPrice        string  `json:"dailyPrice"`
	PolicyKind        string  `json:"policyKind"`
	RefundPercent     *string `json:"refundPercent,omitempty"`
	PassengerCapacity int     `json:"passengerCapacity"`
}

// UnitResponse ответ с данными физического автомобиля
type UnitResponse struct {
	Plate    string `json:"plate"`
	ModelID  *int64 `json:"modelId,omitempty"`
	BranchID int64  `json:"branchId"`
	Year     int    `json:"year"`
	State    string `json:"state"`
}

// AddonResponse ответ с данными дополнительной услуги
type AddonResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	DailyPrice string `json:"dailyPrice"`
}

// AddonListResponse ответ со списком услуг
type AddonListResponse struct {
	Addons []AddonResponse `json:"addons"`
}

// Методы конвертации

// FromDomainModel конвертирует domain модель в DTO
func FromDomainModel(m *domain.VehicleModel) *ModelResponse {
	if m == nil {
		return nil
	}

	resp := &ModelResponse{
		ID:                m.ID,
		Brand:             m.Brand,
		Model:             m.Model,
		CategoryID:        m.CategoryID,
		DailyPrice:        m.DailyPrice.StringFixed(2),
		PolicyKind:        string(m.Policy.Kind()),
		PassengerCapacity: m.PassengerCapacity,
	}

	if percent, ok := m.Policy.RefundPercent(); ok {
		percentStr := percent.StringFixed(0)
		resp.RefundPercent = &percentStr
	}

	return resp
}

// FromDomainUnit конвертирует domain юнит в DTO
func FromDomainUnit(u *domain.VehicleUnit) *UnitResponse {
	if u == nil {
		return nil
	}

	return &UnitResponse{
		Plate:    u.Plate,
		ModelID:  u.ModelID,
		BranchID: u.BranchID,
		Year:     u.Year,
		State:    string(u.State),
	}
}

// FromDomainAddon конвертирует domain услугу в DTO
func FromDomainAddon(a *domain.Addon) *AddonResponse {
	if a == nil {
		return nil
	}

	return &AddonResponse{
		ID:         a.ID,
		Name:       a.Name,
		DailyPrice: a.DailyPrice.StringFixed(2),
	}
}

// FromDomainAddonList конвертирует список domain услуг в DTO
func FromDomainAddonList(addons []*domain.Addon) *AddonListResponse {
	resp := &AddonListResponse{
		Addons: make([]AddonResponse, 0, len(addons)),
	}

	for _, addon := range addons {
		if addonResp := FromDomainAddon(addon); addonResp != nil {
			resp.Addons = append(resp.Addons, *addonResp)
		}
	}

	return resp
}

// ToDomainUnitState конвертирует строку в domain.UnitState с валидацией
func ToDomainUnitState(state string) (domain.UnitState, error) {
	s := domain.UnitState(state)

	validStates := []domain.UnitState{
		domain.UnitEnabled,
		domain.UnitDisabled,
		domain.UnitDecommissioned,
	}

	for _, valid := range validStates {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidUnitState
}
