// internal/domain/entity/jet.go
package entity

// Jet is an aircraft with a passenger capacity and a derived availability
// status kept in sync with the flights and maintenance records that
// reference it.
type Jet struct {
	JetID      string    `json:"jet_id"`
	Model      string    `json:"model"`
	TailNumber string    `json:"tail_number"`
	Capacity   int       `json:"capacity"`
	CustomerID string    `json:"customer_id,omitempty"`
	Status     JetStatus `json:"status"`
}
