package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Request модель запроса на создание резервации.
// Вызывается после успешной оплаты.
type Request struct {
	UserID    int64     // ID клиента
	ModelID   int64     // ID модели автомобиля
	BranchID  int64     // ID филиала выдачи
	StartDate time.Time // Начало аренды (дата без времени)
	EndDate   time.Time // Конец аренды (дата без времени, включительно)
}

// Response модель ответа с созданной резервацией
type Response struct {
	ID         int64     // ID созданной резервации
	CustomerID int64     // ID клиента
	ModelID    int64     // ID модели
	BranchID   int64     // ID филиала
	StartDate  string    // Начало аренды, "2026-03-15"
	EndDate    string    // Конец аренды
	Days       int       // Длительность в днях
	State      string    // Состояние резервации
	BaseTotal  string    // Базовая стоимость аренды
	Total      string    // Итоговая сумма к оплате
	CreatedAt  time.Time // Время создания
}

// toResponse конвертирует domain резервацию в response
func toResponse(res *domain.Reservation) *Response {
	return &Response{
		ID:         res.ID,
		CustomerID: res.CustomerID,
		ModelID:    res.ModelID,
		BranchID:   res.BranchID,
		StartDate:  res.Period.Start.Format(domain.DateFormat),
		EndDate:    res.Period.End.Format(domain.DateFormat),
		Days:       res.Period.Days(),
		State:      string(res.State),
		BaseTotal:  res.BaseTotal.StringFixed(2),
		Total:      res.CurrentTotal().StringFixed(2),
		CreatedAt:  res.CreatedAt,
	}
}
