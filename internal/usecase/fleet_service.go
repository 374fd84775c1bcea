package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"manajet-service/internal/domain/entity"
	"manajet-service/internal/domain/repository"
	"manajet-service/pkg/logger"
	"manajet-service/pkg/metrics"
)

// ID prefixes, one per entity type. Generated IDs are the prefix plus a
// zero-padded sequence number, e.g. JET001, FL002.
const (
	UserIDPrefix        = "USER"
	CustomerIDPrefix    = "CUST"
	PassengerIDPrefix   = "P"
	CrewIDPrefix        = "CREW"
	JetIDPrefix         = "JET"
	FlightIDPrefix      = "FL"
	MaintenanceIDPrefix = "MAINT"
)

// FleetService is the entity store for the scheduling system. It owns the
// in-memory snapshot, generates IDs, guards referential integrity, and
// persists through the fleet repository after every successful mutation.
//
// Mutations are synchronous and run to completion; the service does no
// locking of its own. Concurrent writers race at the persistence boundary,
// last write wins.
type FleetService struct {
	repo     repository.FleetRepository
	activity repository.ActivityRepository
	logger   logger.Logger
	metrics  *metrics.Metrics
	state    *entity.Snapshot
}

// NewFleetService creates a fleet service with an empty snapshot. Call
// Load to pull persisted state before serving.
func NewFleetService(
	repo repository.FleetRepository,
	activity repository.ActivityRepository,
	log logger.Logger,
	m *metrics.Metrics,
) *FleetService {
	return &FleetService{
		repo:     repo,
		activity: activity,
		logger:   log,
		metrics:  m,
		state:    entity.NewSnapshot(),
	}
}

// Load replaces the in-memory snapshot with persisted state.
func (s *FleetService) Load(ctx context.Context) error {
	snapshot, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load fleet snapshot: %w", err)
	}
	if snapshot != nil {
		s.state = snapshot
	}
	s.logger.Info("Fleet snapshot loaded",
		"customers", len(s.state.Customers),
		"jets", len(s.state.Jets),
		"flights", len(s.state.Flights),
		"maintenance", len(s.state.Maintenance))
	return nil
}

// persist writes the snapshot through the repository. Persistence faults
// propagate to the caller; the in-memory mutation stays applied.
func (s *FleetService) persist(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.state); err != nil {
		s.metrics.ErrorsCount.WithLabelValues("persist").Inc()
		return fmt.Errorf("save fleet snapshot: %w", err)
	}
	return nil
}

// recordActivity appends to the audit log. Audit failures are logged and
// swallowed; they never fail the mutation that triggered them.
func (s *FleetService) recordActivity(ctx context.Context, action, entityType, entityID, details string) {
	err := s.activity.Record(ctx, &entity.Activity{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		Timestamp:  time.Now(),
	})
	if err != nil {
		s.logger.Warn("Failed to record activity", "action", action, "entity", entityID, "error", err)
	}
}

func (s *FleetService) committed(ctx context.Context, entityType, action, entityID, details string) error {
	s.metrics.Mutations.WithLabelValues(entityType, action).Inc()
	s.recordActivity(ctx, action, entityType, entityID, details)
	return s.persist(ctx)
}

// RecentActivity returns the newest audit entries, newest first.
func (s *FleetService) RecentActivity(ctx context.Context, limit int64) ([]*entity.Activity, error) {
	return s.activity.Recent(ctx, limit)
}

// nextID scans existing keys with the prefix and returns prefix + max+1,
// zero-padded to three digits. IDs are never reused.
func nextID(prefix string, keys []string) string {
	next := 1
	for _, key := range keys {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		n, err := strconv.Atoi(key[len(prefix):])
		if err != nil {
			continue
		}
		if n >= next {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%03d", prefix, next)
}

func keysOf[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// User management

// AddUser registers a user. An empty ID is auto-generated; usernames must
// be unique across all users.
func (s *FleetService) AddUser(ctx context.Context, user entity.User) (string, error) {
	if strings.TrimSpace(user.UserID) == "" {
		user.UserID = nextID(UserIDPrefix, keysOf(s.state.Users))
	}
	if _, exists := s.state.Users[user.UserID]; exists {
		return "", fmt.Errorf("user %s: %w", user.UserID, ErrConflict)
	}
	for _, existing := range s.state.Users {
		if existing.Username == user.Username {
			return "", fmt.Errorf("username %s: %w", user.Username, ErrConflict)
		}
	}

	s.state.Users[user.UserID] = &user
	s.logger.Info("User added", "userID", user.UserID, "username", user.Username, "role", user.Role)
	return user.UserID, s.committed(ctx, "user", "created", user.UserID, user.Username)
}

// GetUser returns the user or ErrNotFound.
func (s *FleetService) GetUser(userID string) (*entity.User, error) {
	user, ok := s.state.Users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return user, nil
}

// GetUserByUsername returns the user with the given username or ErrNotFound.
func (s *FleetService) GetUserByUsername(username string) (*entity.User, error) {
	for _, user := range s.state.Users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, fmt.Errorf("username %s: %w", username, ErrNotFound)
}

// UpdateUser replaces the full user record.
func (s *FleetService) UpdateUser(ctx context.Context, user entity.User) error {
	if _, ok := s.state.Users[user.UserID]; !ok {
		return fmt.Errorf("user %s: %w", user.UserID, ErrNotFound)
	}
	for _, existing := range s.state.Users {
		if existing.Username == user.Username && existing.UserID != user.UserID {
			return fmt.Errorf("username %s: %w", user.Username, ErrConflict)
		}
	}

	s.state.Users[user.UserID] = &user
	s.logger.Info("User updated", "userID", user.UserID)
	return s.committed(ctx, "user", "updated", user.UserID, user.Username)
}

// DeleteUser removes a user. Users have no dependents.
func (s *FleetService) DeleteUser(ctx context.Context, userID string) error {
	if _, ok := s.state.Users[userID]; !ok {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	delete(s.state.Users, userID)
	s.logger.Info("User deleted", "userID", userID)
	return s.committed(ctx, "user", "deleted", userID, "")
}

// Customer management

// AddCustomer registers a customer. An empty ID is auto-generated.
func (s *FleetService) AddCustomer(ctx context.Context, customer entity.Customer) (string, error) {
	if strings.TrimSpace(customer.CustomerID) == "" {
		customer.CustomerID = nextID(CustomerIDPrefix, keysOf(s.state.Customers))
	}
	if _, exists := s.state.Customers[customer.CustomerID]; exists {
		return "", fmt.Errorf("customer %s: %w", customer.CustomerID, ErrConflict)
	}

	s.state.Customers[customer.CustomerID] = &customer
	s.logger.Info("Customer added", "customerID", customer.CustomerID, "name", customer.Name)
	return customer.CustomerID, s.committed(ctx, "customer", "created", customer.CustomerID, customer.Name)
}

// GetCustomer returns the customer or ErrNotFound.
func (s *FleetService) GetCustomer(customerID string) (*entity.Customer, error) {
	customer, ok := s.state.Customers[customerID]
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", customerID, ErrNotFound)
	}
	return customer, nil
}

// UpdateCustomer replaces the full customer record.
func (s *FleetService) UpdateCustomer(ctx context.Context, customer entity.Customer) error {
	if _, ok := s.state.Customers[customer.CustomerID]; !ok {
		return fmt.Errorf("customer %s: %w", customer.CustomerID, ErrNotFound)
	}
	s.state.Customers[customer.CustomerID] = &customer
	s.logger.Info("Customer updated", "customerID", customer.CustomerID)
	return s.committed(ctx, "customer", "updated", customer.CustomerID, customer.Name)
}

// DeleteCustomer removes a customer unless jets or passengers still
// reference it. The caller must detach dependents first.
func (s *FleetService) DeleteCustomer(ctx context.Context, customerID string) error {
	if _, ok := s.state.Customers[customerID]; !ok {
		return fmt.Errorf("customer %s: %w", customerID, ErrNotFound)
	}
	if jets := s.CustomerJets(customerID); len(jets) > 0 {
		return fmt.Errorf("customer %s has %d jet(s): %w", customerID, len(jets), ErrDependencyBlock)
	}
	if passengers := s.CustomerPassengers(customerID); len(passengers) > 0 {
		return fmt.Errorf("customer %s has %d passenger(s): %w", customerID, len(passengers), ErrDependencyBlock)
	}

	delete(s.state.Customers, customerID)
	s.logger.Info("Customer deleted", "customerID", customerID)
	return s.committed(ctx, "customer", "deleted", customerID, "")
}

// CustomerJets returns all jets owned by a customer.
func (s *FleetService) CustomerJets(customerID string) []*entity.Jet {
	var jets []*entity.Jet
	for _, jet := range s.state.Jets {
		if jet.CustomerID == customerID {
			jets = append(jets, jet)
		}
	}
	sort.Slice(jets, func(i, j int) bool { return jets[i].JetID < jets[j].JetID })
	return jets
}

// CustomerPassengers returns all passengers associated with a customer.
func (s *FleetService) CustomerPassengers(customerID string) []*entity.Passenger {
	var passengers []*entity.Passenger
	for _, p := range s.state.Passengers {
		if p.CustomerID == customerID {
			passengers = append(passengers, p)
		}
	}
	sort.Slice(passengers, func(i, j int) bool { return passengers[i].PassengerID < passengers[j].PassengerID })
	return passengers
}

// Passenger management

// AddPassenger registers a passenger. An empty ID is auto-generated.
func (s *FleetService) AddPassenger(ctx context.Context, passenger entity.Passenger) (string, error) {
	if strings.TrimSpace(passenger.PassengerID) == "" {
		passenger.PassengerID = nextID(PassengerIDPrefix, keysOf(s.state.Passengers))
	}
	if _, exists := s.state.Passengers[passenger.PassengerID]; exists {
		return "", fmt.Errorf("passenger %s: %w", passenger.PassengerID, ErrConflict)
	}

	s.state.Passengers[passenger.PassengerID] = &passenger
	s.logger.Info("Passenger added", "passengerID", passenger.PassengerID, "name", passenger.Name)
	return passenger.PassengerID, s.committed(ctx, "passenger", "created", passenger.PassengerID, passenger.Name)
}

// GetPassenger returns the passenger or ErrNotFound.
func (s *FleetService) GetPassenger(passengerID string) (*entity.Passenger, error) {
	passenger, ok := s.state.Passengers[passengerID]
	if !ok {
		return nil, fmt.Errorf("passenger %s: %w", passengerID, ErrNotFound)
	}
	return passenger, nil
}

// UpdatePassenger replaces the full passenger record.
func (s *FleetService) UpdatePassenger(ctx context.Context, passenger entity.Passenger) error {
	if _, ok := s.state.Passengers[passenger.PassengerID]; !ok {
		return fmt.Errorf("passenger %s: %w", passenger.PassengerID, ErrNotFound)
	}
	s.state.Passengers[passenger.PassengerID] = &passenger
	s.logger.Info("Passenger updated", "passengerID", passenger.PassengerID)
	return s.committed(ctx, "passenger", "updated", passenger.PassengerID, passenger.Name)
}

// DeletePassenger removes a passenger unless a flight still lists it.
func (s *FleetService) DeletePassenger(ctx context.Context, passengerID string) error {
	if _, ok := s.state.Passengers[passengerID]; !ok {
		return fmt.Errorf("passenger %s: %w", passengerID, ErrNotFound)
	}
	for _, flight := range s.state.Flights {
		for _, pid := range flight.PassengerIDs {
			if pid == passengerID {
				return fmt.Errorf("passenger %s is assigned to flight %s: %w",
					passengerID, flight.FlightID, ErrDependencyBlock)
			}
		}
	}

	delete(s.state.Passengers, passengerID)
	s.logger.Info("Passenger deleted", "passengerID", passengerID)
	return s.committed(ctx, "passenger", "deleted", passengerID, "")
}

// Crew management

// AddCrew registers a crew member. Pilots must carry a license number.
func (s *FleetService) AddCrew(ctx context.Context, crew entity.CrewMember) (string, error) {
	if strings.TrimSpace(crew.CrewID) == "" {
		crew.CrewID = nextID(CrewIDPrefix, keysOf(s.state.Crew))
	}
	if _, exists := s.state.Crew[crew.CrewID]; exists {
		return "", fmt.Errorf("crew %s: %w", crew.CrewID, ErrConflict)
	}
	if err := validateCrewLicense(crew); err != nil {
		return "", err
	}

	s.state.Crew[crew.CrewID] = &crew
	s.logger.Info("Crew member added", "crewID", crew.CrewID, "name", crew.Name, "type", crew.CrewType)
	return crew.CrewID, s.committed(ctx, "crew", "created", crew.CrewID, crew.Name)
}

// GetCrew returns the crew member or ErrNotFound.
func (s *FleetService) GetCrew(crewID string) (*entity.CrewMember, error) {
	crew, ok := s.state.Crew[crewID]
	if !ok {
		return nil, fmt.Errorf("crew %s: %w", crewID, ErrNotFound)
	}
	return crew, nil
}

// UpdateCrew replaces the full crew record; the license rule applies to
// updates the same as to creation.
func (s *FleetService) UpdateCrew(ctx context.Context, crew entity.CrewMember) error {
	if _, ok := s.state.Crew[crew.CrewID]; !ok {
		return fmt.Errorf("crew %s: %w", crew.CrewID, ErrNotFound)
	}
	if err := validateCrewLicense(crew); err != nil {
		return err
	}

	s.state.Crew[crew.CrewID] = &crew
	s.logger.Info("Crew member updated", "crewID", crew.CrewID)
	return s.committed(ctx, "crew", "updated", crew.CrewID, crew.Name)
}

// DeleteCrew removes a crew member unless a flight still lists it.
func (s *FleetService) DeleteCrew(ctx context.Context, crewID string) error {
	if _, ok := s.state.Crew[crewID]; !ok {
		return fmt.Errorf("crew %s: %w", crewID, ErrNotFound)
	}
	for _, flight := range s.state.Flights {
		for _, cid := range flight.CrewIDs {
			if cid == crewID {
				return fmt.Errorf("crew %s is assigned to flight %s: %w",
					crewID, flight.FlightID, ErrDependencyBlock)
			}
		}
	}

	delete(s.state.Crew, crewID)
	s.logger.Info("Crew member deleted", "crewID", crewID)
	return s.committed(ctx, "crew", "deleted", crewID, "")
}

// ListCrew returns crew members, optionally filtered by type.
func (s *FleetService) ListCrew(crewType entity.CrewType) []*entity.CrewMember {
	var members []*entity.CrewMember
	for _, crew := range s.state.Crew {
		if crewType != "" && crew.CrewType != crewType {
			continue
		}
		members = append(members, crew)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].CrewID < members[j].CrewID })
	return members
}

// Jet management

// AddJet registers a jet. Capacity must be at least one; tail numbers are
// unique; a referenced customer must exist. Status defaults to Available.
func (s *FleetService) AddJet(ctx context.Context, jet entity.Jet) (string, error) {
	if strings.TrimSpace(jet.JetID) == "" {
		jet.JetID = nextID(JetIDPrefix, keysOf(s.state.Jets))
	}
	if _, exists := s.state.Jets[jet.JetID]; exists {
		return "", fmt.Errorf("jet %s: %w", jet.JetID, ErrConflict)
	}
	if err := s.validateJet(jet); err != nil {
		return "", err
	}
	if jet.Status == "" {
		jet.Status = entity.JetAvailable
	}

	s.state.Jets[jet.JetID] = &jet
	s.logger.Info("Jet added", "jetID", jet.JetID, "model", jet.Model, "tailNumber", jet.TailNumber)
	return jet.JetID, s.committed(ctx, "jet", "created", jet.JetID, jet.Model)
}

// GetJet returns the jet or ErrNotFound.
func (s *FleetService) GetJet(jetID string) (*entity.Jet, error) {
	jet, ok := s.state.Jets[jetID]
	if !ok {
		return nil, fmt.Errorf("jet %s: %w", jetID, ErrNotFound)
	}
	return jet, nil
}

// ListJets returns all jets sorted by ID.
func (s *FleetService) ListJets() []*entity.Jet {
	jets := make([]*entity.Jet, 0, len(s.state.Jets))
	for _, jet := range s.state.Jets {
		jets = append(jets, jet)
	}
	sort.Slice(jets, func(i, j int) bool { return jets[i].JetID < jets[j].JetID })
	return jets
}

// UpdateJet replaces the jet record. Status is derived: a manual status
// edit only sticks while nothing active references the jet; with an
// in-progress flight or maintenance record the derived status wins.
func (s *FleetService) UpdateJet(ctx context.Context, jet entity.Jet) error {
	current, ok := s.state.Jets[jet.JetID]
	if !ok {
		return fmt.Errorf("jet %s: %w", jet.JetID, ErrNotFound)
	}
	if err := s.validateJet(jet); err != nil {
		return err
	}
	if jet.Status == "" {
		jet.Status = current.Status
	}
	if derived := s.recomputeJetStatus(jet.JetID); derived != entity.JetAvailable {
		if jet.Status != derived {
			s.logger.Warn("Manual jet status overridden by active records",
				"jetID", jet.JetID, "requested", jet.Status, "derived", derived)
		}
		jet.Status = derived
	}

	s.state.Jets[jet.JetID] = &jet
	s.logger.Info("Jet updated", "jetID", jet.JetID)
	return s.committed(ctx, "jet", "updated", jet.JetID, jet.Model)
}

// DeleteJet removes a jet unless flights or maintenance records still
// reference it.
func (s *FleetService) DeleteJet(ctx context.Context, jetID string) error {
	if _, ok := s.state.Jets[jetID]; !ok {
		return fmt.Errorf("jet %s: %w", jetID, ErrNotFound)
	}
	flights := s.jetFlights(jetID)
	maintenance := s.jetMaintenance(jetID)
	if len(flights) > 0 || len(maintenance) > 0 {
		return fmt.Errorf("jet %s has %d flight(s) and %d maintenance record(s): %w",
			jetID, len(flights), len(maintenance), ErrDependencyBlock)
	}

	delete(s.state.Jets, jetID)
	s.logger.Info("Jet deleted", "jetID", jetID)
	return s.committed(ctx, "jet", "deleted", jetID, "")
}

func (s *FleetService) validateJet(jet entity.Jet) error {
	if jet.Capacity < 1 {
		return constraintErr("capacity", "must be at least 1, got %d", jet.Capacity)
	}
	if jet.CustomerID != "" {
		if _, ok := s.state.Customers[jet.CustomerID]; !ok {
			return fmt.Errorf("customer %s: %w", jet.CustomerID, ErrNotFound)
		}
	}
	for _, other := range s.state.Jets {
		if other.TailNumber == jet.TailNumber && other.JetID != jet.JetID {
			return fmt.Errorf("tail number %s: %w", jet.TailNumber, ErrConflict)
		}
	}
	return nil
}

func (s *FleetService) jetFlights(jetID string) []*entity.Flight {
	var flights []*entity.Flight
	for _, flight := range s.state.Flights {
		if flight.JetID == jetID {
			flights = append(flights, flight)
		}
	}
	sort.Slice(flights, func(i, j int) bool { return flights[i].FlightID < flights[j].FlightID })
	return flights
}

func (s *FleetService) jetMaintenance(jetID string) []*entity.MaintenanceRecord {
	var records []*entity.MaintenanceRecord
	for _, record := range s.state.Maintenance {
		if record.JetID == jetID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].MaintenanceID < records[j].MaintenanceID })
	return records
}

// JetSchedule returns the jet together with every flight and maintenance
// record that references it.
func (s *FleetService) JetSchedule(jetID string) (*entity.Jet, []*entity.Flight, []*entity.MaintenanceRecord, error) {
	jet, ok := s.state.Jets[jetID]
	if !ok {
		return nil, nil, nil, fmt.Errorf("jet %s: %w", jetID, ErrNotFound)
	}
	return jet, s.jetFlights(jetID), s.jetMaintenance(jetID), nil
}

func validateCrewLicense(crew entity.CrewMember) error {
	if crew.CrewType == entity.CrewPilot && strings.TrimSpace(crew.LicenseNumber) == "" {
		return constraintErr("license_number", "pilots must have a license number")
	}
	return nil
}
