package search_availability

import "time"

// Request модель запроса на поиск доступных моделей
type Request struct {
	BranchID  int64     // ID филиала
	StartDate time.Time // Начало аренды (дата без времени)
	EndDate   time.Time // Конец аренды (дата без времени, включительно)
}

// ModelAvailability доступность одной модели в филиале
type ModelAvailability struct {
	ModelID           int64   // ID модели
	Brand             string  // Марка
	Model             string  // Модель
	DailyPrice        string  // Цена за день, "150.00"
	PolicyKind        string  // Политика отмены
	RefundPercent     *string // Процент возврата для partial_refund
	PassengerCapacity int     // Вместимость
	TotalUnits        int     // Всего активных автомобилей модели в филиале
	AvailableUnits    int     // Свободных на запрошенный период
}

// Response модель ответа с доступными моделями
type Response struct {
	BranchID  int64               // ID филиала
	StartDate time.Time           // Начало периода
	EndDate   time.Time           // Конец периода
	Days      int                 // Длительность аренды в днях
	Models    []ModelAvailability // Модели с хотя бы одним свободным автомобилем
}
