package usecase

import (
	"context"
	"time"

	"manajet-service/internal/domain/entity"
	"manajet-service/pkg/logger"
	"manajet-service/pkg/metrics"
	"manajet-service/pkg/utils"
)

// StatusSweeper recomputes flight and maintenance status from wall-clock
// time against the records' scheduled timestamps. Records whose timestamps
// parse against none of the supported formats are skipped, never errored.
// Each changed record flows through the same jet-status effects as an
// explicit transition.
type StatusSweeper struct {
	fleet   *FleetService
	logger  logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewStatusSweeper creates a sweeper over the given fleet.
func NewStatusSweeper(fleet *FleetService, log logger.Logger, m *metrics.Metrics) *StatusSweeper {
	return &StatusSweeper{
		fleet:   fleet,
		logger:  log,
		metrics: m,
		now:     time.Now,
	}
}

// SweepResult summarizes one sweep run.
type SweepResult struct {
	FlightsUpdated     int
	MaintenanceUpdated int
}

// flightStatusAt derives a flight's status from the clock. The ok result
// is false when either timestamp is unparseable.
func flightStatusAt(flight *entity.Flight, now time.Time) (entity.FlightStatus, bool) {
	departure, err := utils.ParseDateTime(flight.DepartureTime)
	if err != nil {
		return "", false
	}
	arrival, err := utils.ParseDateTime(flight.ArrivalTime)
	if err != nil {
		return "", false
	}

	switch {
	case now.Before(departure):
		return entity.FlightScheduled, true
	case now.Before(arrival):
		return entity.FlightInProgress, true
	default:
		return entity.FlightCompleted, true
	}
}

// maintenanceStatusAt derives a maintenance record's status from the
// clock. An unparseable completed date is treated as unset; an
// unparseable scheduled date skips the record.
func maintenanceStatusAt(record *entity.MaintenanceRecord, now time.Time) (entity.MaintenanceStatus, bool) {
	scheduled, err := utils.ParseDateTime(record.ScheduledDate)
	if err != nil {
		return "", false
	}

	var completed time.Time
	if record.CompletedDate != "" {
		if t, err := utils.ParseDateTime(record.CompletedDate); err == nil {
			completed = t
		}
	}

	switch {
	case !completed.IsZero() && !now.Before(completed):
		return entity.MaintenanceCompleted, true
	case completed.IsZero() && !now.Before(scheduled):
		return entity.MaintenanceInProgress, true
	default:
		return record.Status, true
	}
}

// SweepAll recomputes every flight and maintenance status and persists
// once if anything changed. Completed maintenance is sticky: the sweep
// never downgrades it.
func (sw *StatusSweeper) SweepAll(ctx context.Context) (SweepResult, error) {
	start := sw.now()
	sw.metrics.SweepRuns.Inc()
	sw.logger.Info("Running status sweep", "time", start.Format(utils.DATE_TIME_LAYOUT))

	var result SweepResult

	for _, flight := range sw.fleet.state.Flights {
		newStatus, ok := flightStatusAt(flight, start)
		if !ok {
			sw.logger.Debug("Skipping flight with unparseable timestamps", "flightID", flight.FlightID)
			continue
		}
		if newStatus == flight.Status {
			continue
		}
		oldStatus := flight.Status
		msg := sw.fleet.transitionFlight(flight, newStatus)
		result.FlightsUpdated++
		sw.logger.Info("Flight status swept", "flightID", flight.FlightID,
			"from", oldStatus, "to", newStatus, "effect", msg)
	}

	for _, record := range sw.fleet.state.Maintenance {
		newStatus, ok := maintenanceStatusAt(record, start)
		if !ok {
			sw.logger.Debug("Skipping maintenance with unparseable date", "maintenanceID", record.MaintenanceID)
			continue
		}
		if record.Status == entity.MaintenanceCompleted && newStatus != entity.MaintenanceCompleted {
			continue
		}
		if newStatus == record.Status {
			continue
		}
		oldStatus := record.Status
		msg := sw.fleet.transitionMaintenance(record, newStatus, "")
		result.MaintenanceUpdated++
		sw.logger.Info("Maintenance status swept", "maintenanceID", record.MaintenanceID,
			"from", oldStatus, "to", newStatus, "effect", msg)
	}

	sw.metrics.SweepDuration.Observe(sw.now().Sub(start).Seconds())

	if result.FlightsUpdated == 0 && result.MaintenanceUpdated == 0 {
		sw.logger.Info("No status updates needed")
		return result, nil
	}

	updates := result.FlightsUpdated + result.MaintenanceUpdated
	sw.metrics.SweepUpdates.Add(float64(updates))
	sw.logger.Info("Status sweep complete",
		"flightsUpdated", result.FlightsUpdated,
		"maintenanceUpdated", result.MaintenanceUpdated)
	return result, sw.fleet.persist(ctx)
}

// UpcomingFlight is a flight departing within the queried horizon.
type UpcomingFlight struct {
	FlightID    string
	Departure   string
	Destination string
	Time        string
	HoursUntil  float64
}

// UpcomingMaintenance is a maintenance record starting within the queried
// horizon.
type UpcomingMaintenance struct {
	MaintenanceID string
	JetID         string
	Type          entity.MaintenanceType
	Time          string
	HoursUntil    float64
}

// UpcomingEvents returns flights departing and non-completed maintenance
// starting within the next given number of hours.
func (sw *StatusSweeper) UpcomingEvents(hours float64) ([]UpcomingFlight, []UpcomingMaintenance) {
	now := sw.now()
	var flights []UpcomingFlight
	var maintenance []UpcomingMaintenance

	for _, flight := range sw.fleet.state.Flights {
		until, err := utils.HoursUntil(flight.DepartureTime, now)
		if err != nil || until <= 0 || until > hours {
			continue
		}
		flights = append(flights, UpcomingFlight{
			FlightID:    flight.FlightID,
			Departure:   flight.Departure,
			Destination: flight.Destination,
			Time:        flight.DepartureTime,
			HoursUntil:  until,
		})
	}

	for _, record := range sw.fleet.state.Maintenance {
		if record.Status == entity.MaintenanceCompleted {
			continue
		}
		until, err := utils.HoursUntil(record.ScheduledDate, now)
		if err != nil || until <= 0 || until > hours {
			continue
		}
		maintenance = append(maintenance, UpcomingMaintenance{
			MaintenanceID: record.MaintenanceID,
			JetID:         record.JetID,
			Type:          record.MaintenanceType,
			Time:          record.ScheduledDate,
			HoursUntil:    until,
		})
	}

	return flights, maintenance
}
