package models

// Activity is an itinerary entry of a trip.
type Activity struct {
	ID          string
	TripID      string
	Name        string
	Description string
	Location    string

	// Latitude and Longitude are nil when the location was not geocoded.
	Latitude  *float64
	Longitude *float64

	StartTime int64
	EndTime   int64
	CreatedAt int64
	UpdatedAt int64
}
