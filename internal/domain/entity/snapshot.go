// internal/domain/entity/snapshot.go
package entity

// Snapshot is the full in-memory state of the fleet, keyed by entity ID.
// It is what the persistence layer loads at startup and saves after each
// successful mutation.
type Snapshot struct {
	Users       map[string]*User              `json:"users"`
	Customers   map[string]*Customer          `json:"customers"`
	Passengers  map[string]*Passenger         `json:"passengers"`
	Crew        map[string]*CrewMember        `json:"crew"`
	Jets        map[string]*Jet               `json:"jets"`
	Flights     map[string]*Flight            `json:"flights"`
	Maintenance map[string]*MaintenanceRecord `json:"maintenance"`
}

// NewSnapshot returns a snapshot with all maps initialized.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Users:       make(map[string]*User),
		Customers:   make(map[string]*Customer),
		Passengers:  make(map[string]*Passenger),
		Crew:        make(map[string]*CrewMember),
		Jets:        make(map[string]*Jet),
		Flights:     make(map[string]*Flight),
		Maintenance: make(map[string]*MaintenanceRecord),
	}
}
