package return_reservation

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Request модель запроса на возврат автомобиля
type Request struct {
	UserID        int64 // ID сотрудника
	ReservationID int64 // ID резервации
}

// Response модель ответа с завершенной резервацией
type Response struct {
	ID            int64     // ID резервации
	CustomerID    int64     // ID клиента
	ModelID       int64     // ID модели
	BranchID      int64     // ID филиала
	AssignedPlate string    // Возвращённый автомобиль
	StartDate     string    // Начало аренды, "2026-03-15"
	EndDate       string    // Конец аренды
	State         string    // Состояние резервации
	Total         string    // Итоговая сумма
	ReturnedAt    time.Time // Фактическое время возврата
	CreatedAt     time.Time // Время создания
}

// toResponse конвертирует domain резервацию в response
func toResponse(res *domain.Reservation) *Response {
	plate := ""
	if res.AssignedPlate != nil {
		plate = *res.AssignedPlate
	}

	var returnedAt time.Time
	if res.ReturnedAt != nil {
		returnedAt = *res.ReturnedAt
	}

	return &Response{
		ID:            res.ID,
		CustomerID:    res.CustomerID,
		ModelID:       res.ModelID,
		BranchID:      res.BranchID,
		AssignedPlate: plate,
		StartDate:     res.Period.Start.Format(domain.DateFormat),
		EndDate:       res.Period.End.Format(domain.DateFormat),
		State:         string(res.State),
		Total:         res.CurrentTotal().StringFixed(2),
		ReturnedAt:    returnedAt,
		CreatedAt:     res.CreatedAt,
	}
}
