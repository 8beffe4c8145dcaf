package search_availability

import (
	"sort"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// modelCounts промежуточные счетчики доступности одной модели
type modelCounts struct {
	total     int
	blocked   int
	pendingNA int // ожидающие резервации модели без назначенного автомобиля
}

// computeAvailability считает доступность моделей по активным автомобилям
// филиала и блокирующим резервациям на период.
//
// Блокировка считается двумя путями:
//   - резервация с назначенным автомобилем блокирует конкретный автомобиль;
//   - ожидающая резервация без автомобиля занимает один слот своей модели,
//     какой бы физический автомобиль ни был выбран позже.
func computeAvailability(units []*domain.VehicleUnit, blocking []*domain.Reservation) map[int64]*modelCounts {
	counts := make(map[int64]*modelCounts)

	ensure := func(modelID int64) *modelCounts {
		c, ok := counts[modelID]
		if !ok {
			c = &modelCounts{}
			counts[modelID] = c
		}
		return c
	}

	// Автомобили без модели не участвуют в поиске
	unitModel := make(map[string]int64, len(units))
	for _, unit := range units {
		if unit.ModelID == nil {
			continue
		}
		unitModel[unit.Plate] = *unit.ModelID
		ensure(*unit.ModelID).total++
	}

	blockedPlates := make(map[string]bool)
	for _, res := range blocking {
		if !res.IsBlocking() {
			continue
		}
		if res.AssignedPlate != nil {
			// Каждый автомобиль блокируется не более одного раза:
			// пересекающиеся блокирующие резервации одного автомобиля невозможны
			blockedPlates[*res.AssignedPlate] = true
			continue
		}
		ensure(res.ModelID).pendingNA++
	}

	// Учитываем только блокировки автомобилей, входящих в активный парк филиала
	for plate := range blockedPlates {
		if modelID, ok := unitModel[plate]; ok {
			counts[modelID].blocked++
		}
	}

	return counts
}

// availableUnits вычисляет свободные слоты модели, не опускаясь ниже нуля
func (c *modelCounts) availableUnits() int {
	available := c.total - c.blocked - c.pendingNA
	if available < 0 {
		return 0
	}
	return available
}

// sortedModelIDs возвращает ID моделей в стабильном порядке
func sortedModelIDs(counts map[int64]*modelCounts) []int64 {
	ids := make([]int64, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
