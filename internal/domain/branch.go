package domain

// Branch is a physical rental location
type Branch struct {
	ID      int64
	Name    string
	Address string
}
