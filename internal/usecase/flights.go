package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"manajet-service/internal/domain/entity"
)

// validateFlight applies the flight constraint rules in fixed order, first
// failure wins: jet exists, crew non-empty, crew resolve, at least one
// pilot, passenger count within capacity, passengers resolve.
func (s *FleetService) validateFlight(flight entity.Flight) error {
	jet, ok := s.state.Jets[flight.JetID]
	if !ok {
		return fmt.Errorf("jet %s: %w", flight.JetID, ErrNotFound)
	}

	if len(flight.CrewIDs) == 0 {
		return constraintErr("crew_ids", "flight must have at least one crew member")
	}

	hasPilot := false
	for _, cid := range flight.CrewIDs {
		crew, ok := s.state.Crew[cid]
		if !ok {
			return fmt.Errorf("crew %s: %w", cid, ErrNotFound)
		}
		if crew.CrewType == entity.CrewPilot {
			hasPilot = true
		}
	}
	if !hasPilot {
		return constraintErr("crew_ids", "flight must have at least one pilot")
	}

	if len(flight.PassengerIDs) > jet.Capacity {
		return constraintErr("passenger_ids", "too many passengers (%d) for jet capacity (%d)",
			len(flight.PassengerIDs), jet.Capacity)
	}
	for _, pid := range flight.PassengerIDs {
		if _, ok := s.state.Passengers[pid]; !ok {
			return fmt.Errorf("passenger %s: %w", pid, ErrNotFound)
		}
	}

	return nil
}

// jetConflictWarnings reports advisory double-booking conflicts against a
// jet with an active in-progress flight or maintenance record. Scheduling
// proceeds regardless; callers decide how to present the conflict.
func (s *FleetService) jetConflictWarnings(jetID string) []string {
	var warnings []string

	var activeFlights, activeMaintenance []string
	for _, flight := range s.state.Flights {
		if flight.JetID == jetID && flight.Status == entity.FlightInProgress {
			activeFlights = append(activeFlights, flight.FlightID)
		}
	}
	for _, record := range s.state.Maintenance {
		if record.JetID == jetID && record.Status == entity.MaintenanceInProgress {
			activeMaintenance = append(activeMaintenance, record.MaintenanceID)
		}
	}
	sort.Strings(activeFlights)
	sort.Strings(activeMaintenance)

	if len(activeFlights) > 0 {
		warnings = append(warnings, fmt.Sprintf("jet %s is currently in flight (active flights: %s)",
			jetID, strings.Join(activeFlights, ", ")))
	}
	if len(activeMaintenance) > 0 {
		warnings = append(warnings, fmt.Sprintf("jet %s is currently in maintenance (active maintenance: %s)",
			jetID, strings.Join(activeMaintenance, ", ")))
	}
	return warnings
}

// ScheduleFlight creates a flight in Scheduled state. An empty ID is
// auto-generated. The returned warnings flag advisory conflicts with the
// jet's current activity; they never block creation.
func (s *FleetService) ScheduleFlight(ctx context.Context, flight entity.Flight) (string, []string, error) {
	if strings.TrimSpace(flight.FlightID) == "" {
		flight.FlightID = nextID(FlightIDPrefix, keysOf(s.state.Flights))
	}
	if _, exists := s.state.Flights[flight.FlightID]; exists {
		return "", nil, fmt.Errorf("flight %s: %w", flight.FlightID, ErrConflict)
	}
	if err := s.validateFlight(flight); err != nil {
		return "", nil, err
	}

	warnings := s.jetConflictWarnings(flight.JetID)
	for _, w := range warnings {
		s.logger.Warn("Flight scheduled against busy jet", "flightID", flight.FlightID, "conflict", w)
	}

	flight.Status = entity.FlightScheduled
	s.state.Flights[flight.FlightID] = &flight
	s.logger.Info("Flight scheduled", "flightID", flight.FlightID, "jetID", flight.JetID,
		"route", flight.Departure+" -> "+flight.Destination, "crew", len(flight.CrewIDs))
	return flight.FlightID, warnings, s.committed(ctx, "flight", "created", flight.FlightID, flight.JetID)
}

// UpdateFlight replaces the full flight record. The same constraint rules
// apply as on creation; the status field is taken as given and does not
// touch jet state (UpdateFlightStatus owns that).
func (s *FleetService) UpdateFlight(ctx context.Context, flight entity.Flight) error {
	if _, ok := s.state.Flights[flight.FlightID]; !ok {
		return fmt.Errorf("flight %s: %w", flight.FlightID, ErrNotFound)
	}
	if err := s.validateFlight(flight); err != nil {
		return err
	}

	s.state.Flights[flight.FlightID] = &flight
	s.logger.Info("Flight updated", "flightID", flight.FlightID)
	return s.committed(ctx, "flight", "updated", flight.FlightID, flight.JetID)
}

// DeleteFlight removes a flight.
func (s *FleetService) DeleteFlight(ctx context.Context, flightID string) error {
	if _, ok := s.state.Flights[flightID]; !ok {
		return fmt.Errorf("flight %s: %w", flightID, ErrNotFound)
	}
	delete(s.state.Flights, flightID)
	s.logger.Info("Flight deleted", "flightID", flightID)
	return s.committed(ctx, "flight", "deleted", flightID, "")
}

// GetFlight returns the flight or ErrNotFound.
func (s *FleetService) GetFlight(flightID string) (*entity.Flight, error) {
	flight, ok := s.state.Flights[flightID]
	if !ok {
		return nil, fmt.Errorf("flight %s: %w", flightID, ErrNotFound)
	}
	return flight, nil
}

// ListFlights returns flights, optionally filtered by status.
func (s *FleetService) ListFlights(status entity.FlightStatus) []*entity.Flight {
	var flights []*entity.Flight
	for _, flight := range s.state.Flights {
		if status != "" && flight.Status != status {
			continue
		}
		flights = append(flights, flight)
	}
	sort.Slice(flights, func(i, j int) bool { return flights[i].FlightID < flights[j].FlightID })
	return flights
}
