// internal/domain/entity/flight.go
package entity

// Flight is a scheduled movement of a jet between two locations.
// Departure and arrival times are stored as the free-form strings the
// boundary supplies; pkg/utils parses them when the sweep needs them.
type Flight struct {
	FlightID      string       `json:"flight_id"`
	JetID         string       `json:"jet_id"`
	Departure     string       `json:"departure"`
	Destination   string       `json:"destination"`
	DepartureTime string       `json:"departure_time"`
	ArrivalTime   string       `json:"arrival_time"`
	PassengerIDs  []string     `json:"passenger_ids"`
	CrewIDs       []string     `json:"crew_ids"`
	Status        FlightStatus `json:"status"`
}
