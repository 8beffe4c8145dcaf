package assign_unit

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Request модель запроса на выдачу автомобиля по резервации
type Request struct {
	UserID        int64   // ID сотрудника
	ReservationID int64   // ID резервации
	Plate         string  // Номерной знак выдаваемого автомобиля
	AddonIDs      []int64 // Дополнительные услуги (дубликаты игнорируются)
}

// Response модель ответа с обновленной резервацией
type Response struct {
	ID            int64     // ID резервации
	CustomerID    int64     // ID клиента
	ModelID       int64     // ID модели
	BranchID      int64     // ID филиала
	AssignedPlate string    // Назначенный автомобиль
	StartDate     string    // Начало аренды, "2026-03-15"
	EndDate       string    // Конец аренды
	Days          int       // Длительность в днях
	State         string    // Состояние резервации
	BaseTotal     string    // Базовая стоимость аренды
	AddonsTotal   string    // Стоимость дополнительных услуг
	Total         string    // Итоговая сумма к оплате
	AddonIDs      []int64   // Итоговый состав услуг
	CreatedAt     time.Time // Время создания
}

// toResponse конвертирует domain резервацию в response
func toResponse(res *domain.Reservation, addonIDs []int64) *Response {
	plate := ""
	if res.AssignedPlate != nil {
		plate = *res.AssignedPlate
	}

	if addonIDs == nil {
		addonIDs = []int64{}
	}

	return &Response{
		ID:            res.ID,
		CustomerID:    res.CustomerID,
		ModelID:       res.ModelID,
		BranchID:      res.BranchID,
		AssignedPlate: plate,
		StartDate:     res.Period.Start.Format(domain.DateFormat),
		EndDate:       res.Period.End.Format(domain.DateFormat),
		Days:          res.Period.Days(),
		State:         string(res.State),
		BaseTotal:     res.BaseTotal.StringFixed(2),
		AddonsTotal:   res.AddonsTotal.StringFixed(2),
		Total:         res.CurrentTotal().StringFixed(2),
		AddonIDs:      addonIDs,
		CreatedAt:     res.CreatedAt,
	}
}
