package usecase

import (
	"context"
	"fmt"

	"manajet-service/internal/domain/entity"
)

// The status synchronizer keeps Jet.Status consistent with the flight and
// maintenance lifecycles. It is event-driven: it runs exactly once per
// explicit status transition (and per record the time sweep changes),
// never continuously.

// recomputeJetStatus derives a jet's status from the current snapshot:
// any in-progress flight claims the jet first, then any in-progress
// maintenance, otherwise the jet is available.
func (s *FleetService) recomputeJetStatus(jetID string) entity.JetStatus {
	for _, flight := range s.state.Flights {
		if flight.JetID == jetID && flight.Status == entity.FlightInProgress {
			return entity.JetInFlight
		}
	}
	for _, record := range s.state.Maintenance {
		if record.JetID == jetID && record.Status == entity.MaintenanceInProgress {
			return entity.JetMaintenance
		}
	}
	return entity.JetAvailable
}

// transitionFlight applies a flight status change and its jet effect,
// returning the informational message describing what happened to the jet.
// Persistence is the caller's responsibility.
func (s *FleetService) transitionFlight(flight *entity.Flight, newStatus entity.FlightStatus) string {
	flight.Status = newStatus
	s.metrics.StatusTransitions.WithLabelValues("flight", string(newStatus)).Inc()

	jet, ok := s.state.Jets[flight.JetID]
	if !ok {
		return fmt.Sprintf("flight %s status updated to %s (jet %s not found)",
			flight.FlightID, newStatus, flight.JetID)
	}

	switch newStatus {
	case entity.FlightInProgress:
		jet.Status = entity.JetInFlight
		return fmt.Sprintf("jet %s status automatically updated to 'In Flight'", jet.JetID)

	case entity.FlightCompleted, entity.FlightCancelled:
		derived := s.recomputeJetStatus(jet.JetID)
		jet.Status = derived
		switch derived {
		case entity.JetInFlight:
			return fmt.Sprintf("jet %s remains 'In Flight' (other active flights exist)", jet.JetID)
		case entity.JetMaintenance:
			return fmt.Sprintf("jet %s has active maintenance, status set to 'Maintenance'", jet.JetID)
		default:
			return fmt.Sprintf("jet %s status automatically updated to 'Available'", jet.JetID)
		}

	default:
		// Scheduled: the flight has not started, jet state stays as-is.
		return fmt.Sprintf("jet %s status unchanged (flight not yet started)", jet.JetID)
	}
}

// transitionMaintenance applies a maintenance status change and its jet
// effect. A completion date is only recorded on transition to Completed.
func (s *FleetService) transitionMaintenance(record *entity.MaintenanceRecord, newStatus entity.MaintenanceStatus, completedDate string) string {
	record.Status = newStatus
	if newStatus == entity.MaintenanceCompleted && completedDate != "" {
		record.CompletedDate = completedDate
	}
	s.metrics.StatusTransitions.WithLabelValues("maintenance", string(newStatus)).Inc()

	jet, ok := s.state.Jets[record.JetID]
	if !ok {
		return fmt.Sprintf("maintenance %s status updated to %s (jet %s not found)",
			record.MaintenanceID, newStatus, record.JetID)
	}

	switch newStatus {
	case entity.MaintenanceInProgress:
		jet.Status = entity.JetMaintenance
		return fmt.Sprintf("jet %s status automatically updated to 'Maintenance'", jet.JetID)

	case entity.MaintenanceCompleted:
		derived := s.recomputeJetStatus(jet.JetID)
		jet.Status = derived
		switch derived {
		case entity.JetInFlight:
			return fmt.Sprintf("jet %s has active flights, status set to 'In Flight'", jet.JetID)
		case entity.JetMaintenance:
			return fmt.Sprintf("jet %s remains 'Maintenance' (other maintenance tasks active)", jet.JetID)
		default:
			return fmt.Sprintf("jet %s status automatically updated to 'Available'", jet.JetID)
		}

	default:
		// Scheduled: the maintenance has not started, jet state stays as-is.
		return fmt.Sprintf("jet %s status unchanged (maintenance not yet started)", jet.JetID)
	}
}

// UpdateFlightStatus transitions a flight and synchronizes the jet. The
// returned message describes the dependent jet status change for audit
// display.
func (s *FleetService) UpdateFlightStatus(ctx context.Context, flightID string, newStatus entity.FlightStatus) (string, error) {
	flight, ok := s.state.Flights[flightID]
	if !ok {
		return "", fmt.Errorf("flight %s: %w", flightID, ErrNotFound)
	}

	oldStatus := flight.Status
	msg := s.transitionFlight(flight, newStatus)
	s.logger.Info("Flight status updated", "flightID", flightID,
		"from", oldStatus, "to", newStatus, "effect", msg)

	s.recordActivity(ctx, "status_changed", "flight", flightID,
		fmt.Sprintf("%s -> %s; %s", oldStatus, newStatus, msg))
	return msg, s.persist(ctx)
}

// UpdateMaintenanceStatus transitions a maintenance record and
// synchronizes the jet. completedDate is optional and only applied on
// transition to Completed.
func (s *FleetService) UpdateMaintenanceStatus(ctx context.Context, maintenanceID string, newStatus entity.MaintenanceStatus, completedDate string) (string, error) {
	record, ok := s.state.Maintenance[maintenanceID]
	if !ok {
		return "", fmt.Errorf("maintenance %s: %w", maintenanceID, ErrNotFound)
	}

	oldStatus := record.Status
	msg := s.transitionMaintenance(record, newStatus, completedDate)
	s.logger.Info("Maintenance status updated", "maintenanceID", maintenanceID,
		"from", oldStatus, "to", newStatus, "effect", msg)

	s.recordActivity(ctx, "status_changed", "maintenance", maintenanceID,
		fmt.Sprintf("%s -> %s; %s", oldStatus, newStatus, msg))
	return msg, s.persist(ctx)
}

// CompleteMaintenance marks a maintenance record completed with the given
// completion date.
func (s *FleetService) CompleteMaintenance(ctx context.Context, maintenanceID, completedDate string) (string, error) {
	return s.UpdateMaintenanceStatus(ctx, maintenanceID, entity.MaintenanceCompleted, completedDate)
}
