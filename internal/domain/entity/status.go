// internal/domain/entity/status.go
package entity

// JetStatus is the derived availability state of a jet. It is owned by the
// status synchronizer; ordinary edits must not set it directly.
type JetStatus string

const (
	JetAvailable   JetStatus = "Available"
	JetInFlight    JetStatus = "In Flight"
	JetMaintenance JetStatus = "Maintenance"
)

// FlightStatus follows Scheduled -> In Progress -> Completed | Cancelled.
type FlightStatus string

const (
	FlightScheduled  FlightStatus = "Scheduled"
	FlightInProgress FlightStatus = "In Progress"
	FlightCompleted  FlightStatus = "Completed"
	FlightCancelled  FlightStatus = "Cancelled"
)

// MaintenanceStatus follows Scheduled -> In Progress -> Completed.
// Completed is sticky: the time-driven sweep never downgrades it.
type MaintenanceStatus string

const (
	MaintenanceScheduled  MaintenanceStatus = "Scheduled"
	MaintenanceInProgress MaintenanceStatus = "In Progress"
	MaintenanceCompleted  MaintenanceStatus = "Completed"
)

// MaintenanceType classifies a maintenance record.
type MaintenanceType string

const (
	MaintenanceRoutine    MaintenanceType = "Routine"
	MaintenanceEmergency  MaintenanceType = "Emergency"
	MaintenanceInspection MaintenanceType = "Inspection"
)

// CrewType distinguishes pilots from cabin crew.
type CrewType string

const (
	CrewPilot CrewType = "Pilot"
	CrewCabin CrewType = "Cabin Crew"
)

// Role defines user access levels enforced by the web layer.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
	RoleCrew     Role = "crew"
	RoleMechanic Role = "mechanic"
)
