package models

// Member represents a participant of one trip.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// TripID is the trip this member belongs to; it never changes.
	TripID string

	Name string

	// Factor is the member's weight when shared costs are split.
	// Adults default to 1.0 and children to the trip's ChildFactor.
	Factor float64

	// IsChild is advisory; only Factor enters the balance formula.
	IsChild bool

	CreatedAt int64
}
