package domain

// ModelAvailability is one row of an availability search result: how many
// units of a model exist at the branch and how many are free for the
// requested range
type ModelAvailability struct {
	Model          VehicleModel
	TotalUnits     int
	AvailableUnits int
}

// IsAvailable returns true if at least one unit is free
func (a *ModelAvailability) IsAvailable() bool {
	return a.AvailableUnits > 0
}
