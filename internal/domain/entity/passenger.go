// internal/domain/entity/passenger.go
package entity

// Passenger holds passport and contact details. CustomerID associates the
// passenger with an owning customer and may be empty.
type Passenger struct {
	PassengerID    string `json:"passenger_id"`
	Name           string `json:"name"`
	PassportNumber string `json:"passport_number"`
	Nationality    string `json:"nationality"`
	PassportExpiry string `json:"passport_expiry"`
	Contact        string `json:"contact"`
	CustomerID     string `json:"customer_id,omitempty"`
}
