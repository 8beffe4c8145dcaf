package cancel_reservation

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Request модель запроса на отмену резервации
type Request struct {
	UserID        int64 // ID пользователя
	ReservationID int64 // ID резервации
}

// Response модель ответа с отмененной резервацией.
// Total отражает сумму к оплате после применения политики возврата.
type Response struct {
	ID            int64     // ID резервации
	CustomerID    int64     // ID клиента
	ModelID       int64     // ID модели
	BranchID      int64     // ID филиала
	StartDate     string    // Начало аренды, "2026-03-15"
	EndDate       string    // Конец аренды
	State         string    // Состояние резервации
	BaseTotal     string    // Базовая стоимость после возврата
	AddonsTotal   string    // Стоимость услуг после возврата
	Total         string    // Итоговая сумма к оплате
	OriginalTotal string    // Сумма до отмены
	PolicyKind    string    // Применённая политика отмены
	CreatedAt     time.Time // Время создания
}

// toResponse конвертирует domain резервацию в response
func toResponse(res *domain.Reservation, policyKind domain.PolicyKind) *Response {
	return &Response{
		ID:            res.ID,
		CustomerID:    res.CustomerID,
		ModelID:       res.ModelID,
		BranchID:      res.BranchID,
		StartDate:     res.Period.Start.Format(domain.DateFormat),
		EndDate:       res.Period.End.Format(domain.DateFormat),
		State:         string(res.State),
		BaseTotal:     res.BaseTotal.StringFixed(2),
		AddonsTotal:   res.AddonsTotal.StringFixed(2),
		Total:         res.CurrentTotal().StringFixed(2),
		OriginalTotal: res.OriginalTotal.StringFixed(2),
		PolicyKind:    string(policyKind),
		CreatedAt:     res.CreatedAt,
	}
}
