// internal/domain/entity/customer.go
package entity

// Customer owns zero or more jets and passengers, linked by ID reference.
type Customer struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Company    string `json:"company"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}
