// internal/domain/entity/maintenance_record.go
package entity

// MaintenanceRecord is a scheduled or in-progress service event against a
// jet. CompletedDate is empty until the record completes.
type MaintenanceRecord struct {
	MaintenanceID   string            `json:"maintenance_id"`
	JetID           string            `json:"jet_id"`
	ScheduledDate   string            `json:"scheduled_date"`
	MaintenanceType MaintenanceType   `json:"maintenance_type"`
	Description     string            `json:"description"`
	Status          MaintenanceStatus `json:"status"`
	CompletedDate   string            `json:"completed_date,omitempty"`
}
