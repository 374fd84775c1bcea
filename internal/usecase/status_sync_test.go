package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"manajet-service/internal/domain/entity"
)

func jetStatus(t *testing.T, fleet *FleetService, jetID string) entity.JetStatus {
	t.Helper()
	jet, err := fleet.GetJet(jetID)
	if err != nil {
		t.Fatalf("get jet: %v", err)
	}
	return jet.Status
}

func scheduleTestFlight(t *testing.T, fleet *FleetService, jetID, pilotID string) string {
	t.Helper()
	id, _, err := fleet.ScheduleFlight(context.Background(), entity.Flight{
		JetID:   jetID,
		CrewIDs: []string{pilotID},
	})
	if err != nil {
		t.Fatalf("schedule flight: %v", err)
	}
	return id
}

func TestFlightLifecycleSyncsJet(t *testing.T) {
	fleet, _, _ := newTestFleet()
	ctx := context.Background()

	jetID := addTestJet(fleet, 4, "N1SY")
	pilotID := addTestPilot(fleet)
	flightID := scheduleTestFlight(t, fleet, jetID, pilotID)

	// Scheduled flight leaves the jet alone.
	if got := jetStatus(t, fleet, jetID); got != entity.JetAvailable {
		t.Fatalf("after scheduling: expected Available, got %s", got)
	}

	msg, err := fleet.UpdateFlightStatus(ctx, flightID, entity.FlightInProgress)
	if err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if got := jetStatus(t, fleet, jetID); got != entity.JetInFlight {
		t.Fatalf("after departure: expected In Flight, got %s", got)
	}
	if !strings.Contains(msg, "In Flight") {
		t.Fatalf("expected jet effect in message, got %q", msg)
	}

	if _, err := fleet.UpdateFlightStatus(ctx, flightID, entity.FlightCompleted); err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if got := jetStatus(t, fleet, jetID); got != entity.JetAvailable {
		t.Fatalf("after completion: expected Available, got %s", got)
	}
}

func TestCancelledFlightReleasesJet(t *testing.T) {
	fleet, _, _ := newTestFleet()
	ctx := context.Background()

	jetID := addTestJet(fleet, 4, "N2SY")
	pilotID := addTestPilot(fleet)
	flightID := scheduleTestFlight(t, fleet, jetID, pilotID)

	fleet.UpdateFlightStatus(ctx, flightID, entity.FlightInProgress)
	if _, err := fleet.UpdateFlightStatus(ctx, flightID, entity.FlightCancelled); err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if got := jetStatus(t, fleet, jetID); got != entity.JetAvailable {
		t.Fatalf("after cancellation: expected Available, got %s", got)
	}
}

func TestOverlappingFlightsKeepJetInFlight(t *testing.T) {
	fleet, _, _ := newTestFleet()
	ctx := context.Background()

	jetID := addTestJet(fleet, 4, "N3SY")
	pilotID := addTestPilot(fleet)
	first := scheduleTestFlight(t, fleet, jetID, pilotID)
	second := scheduleTestFlight(t, fleet, jetID, pilotID)

	fleet.UpdateFlightStatus(ctx, first, entity.FlightInProgress)
	fleet.UpdateFlightStatus(ctx, second, entity.FlightInProgress)

	msg, err := fleet.UpdateFlightStatus(ctx, first, entity.FlightCompleted)
	if err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if got := jetStatus(t, fleet, jetID); got != entity.JetInFlight {
		t.Fatalf("other flight still active: expected In Flight, got %s", got)
	}
	if !strings.Contains(msg, "other active flights") {
		t.Fatalf("expected explanation in message, got %q", msg)
	}

	fleet.UpdateFlightStatus(ctx, second, entity.FlightCompleted)
	if got := jetStatus(t, fleet, jetID); got != entity.JetAvailable {
		t.Fatalf("all flights done: expected Available, got %s", got)
	}
}

func TestFlightCompletionFallsBackToMaintenance(t *testing.T) {
	fleet, _, _ := newTestFleet()
	ctx := context.Background()

	jetID := addTestJet(fleet, 4, "N4SY")
	pilotID := addTestPilot(fleet)
	flightID := scheduleTestFlight(t, fleet, jetID, pilotID)
	maintID, _, _ := fleet.ScheduleMaintenance(ctx, entity.MaintenanceRecord{
		JetID:         jetID,
		ScheduledDate: "2030-01-01",
	})

	fleet.UpdateMaintenanceStatus(ctx, maintID, entity.MaintenanceInProgress, "")
	fleet.UpdateFlightStatus(ctx, flightID, entity.FlightInProgress)

	// Flight ends while maintenance is still open: the jet is not freed.
	if _, err := fleet.UpdateFlightStatus(ctx, flightID, entity.FlightCompleted); err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if got := jetStatus(t, fleet, jetID); got != entity.JetMaintenance {
		t.Fatalf("expected Maintenance, got %s", got)
	}
}

func TestMaintenanceLifecycleSyncsJet(t *testing.T) {
	fleet, _, _ := newTestFleet()
	ctx := context.Background()

	jetID := addTestJet(fleet, 4, "N5SY")
	maintID, _, _ := fleet.ScheduleMaintenance(ctx, entity.MaintenanceRecord{
		JetID:           jetID,
		ScheduledDate:   "2030-01-01",
		MaintenanceType: entity.MaintenanceRoutine,
	})

	if got := jetStatus(t, fleet, jetID); got != entity.JetAvailable {
		t.Fatalf("after scheduling: expected Available, got %s", got)
	}

	if _, err := fleet.UpdateMaintenanceStatus(ctx, maintID, entity.MaintenanceInProgress, ""); err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if got := jetStatus(t, fleet, jetID); got != entity.JetMaintenance {
		t.Fatalf("in progress: expected Maintenance, got %s", got)
	}

	if _, err := fleet.CompleteMaintenance(ctx, maintID, "2030-01-02"); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	record, _ := fleet.GetMaintenance(maintID)
	if record.Status != entity.MaintenanceCompleted || record.CompletedDate != "2030-01-02" {
		t.Fatalf("completion not recorded: %+v", record)
	}
	if got := jetStatus(t, fleet, jetID); got != entity.JetAvailable {
		t.Fatalf("after completion: expected Available, got %s", got)
	}
}

func TestMaintenanceStartClaimsJetUnconditionally(t *testing.T) {
	fleet, _, _ := newTestFleet()
	ctx := context.Background()

	jetID := addTestJet(fleet, 4, "N6SY")
	pilotID := addTestPilot(fleet)
	flightID := scheduleTestFlight(t, fleet, jetID, pilotID)
	maintID, _, _ := fleet.ScheduleMaintenance(ctx, entity.MaintenanceRecord{
		JetID:         jetID,
		ScheduledDate: "2030-01-01",
	})

	fleet.UpdateFlightStatus(ctx, flightID, entity.FlightInProgress)
	fleet.UpdateMaintenanceStatus(ctx, maintID, entity.MaintenanceInProgress, "")
	if got := jetStatus(t, fleet, jetID); got != entity.JetMaintenance {
		t.Fatalf("maintenance start is unconditional: expected Maintenance, got %s", got)
	}

	// When the maintenance finishes, the still-active flight reclaims the jet.
	if _, err := fleet.CompleteMaintenance(ctx, maintID, "2030-01-02"); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if got := jetStatus(t, fleet, jetID); got != entity.JetInFlight {
		t.Fatalf("expected In Flight, got %s", got)
	}
}

func TestParallelMaintenanceKeepsJetDown(t *testing.T) {
	fleet, _, _ := newTestFleet()
	ctx := context.Background()

	jetID := addTestJet(fleet, 4, "N7SY")
	first, _, _ := fleet.ScheduleMaintenance(ctx, entity.MaintenanceRecord{JetID: jetID, ScheduledDate: "2030-01-01"})
	second, _, _ := fleet.ScheduleMaintenance(ctx, entity.MaintenanceRecord{JetID: jetID, ScheduledDate: "2030-01-01"})

	fleet.UpdateMaintenanceStatus(ctx, first, entity.MaintenanceInProgress, "")
	fleet.UpdateMaintenanceStatus(ctx, second, entity.MaintenanceInProgress, "")

	msg, err := fleet.CompleteMaintenance(ctx, first, "2030-01-03")
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if got := jetStatus(t, fleet, jetID); got != entity.JetMaintenance {
		t.Fatalf("other task still open: expected Maintenance, got %s", got)
	}
	if !strings.Contains(msg, "other maintenance tasks active") {
		t.Fatalf("expected explanation in message, got %q", msg)
	}

	fleet.CompleteMaintenance(ctx, second, "2030-01-03")
	if got := jetStatus(t, fleet, jetID); got != entity.JetAvailable {
		t.Fatalf("all tasks done: expected Available, got %s", got)
	}
}

func TestStatusTransitionNotFound(t *testing.T) {
	fleet, _, _ := newTestFleet()
	ctx := context.Background()

	if _, err := fleet.UpdateFlightStatus(ctx, "FL404", entity.FlightInProgress); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := fleet.UpdateMaintenanceStatus(ctx, "MAINT404", entity.MaintenanceCompleted, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestManualJetStatusEditOnlySticksWhenIdle(t *testing.T) {
	fleet, _, _ := newTestFleet()
	ctx := context.Background()

	jetID := addTestJet(fleet, 4, "N8SY")
	pilotID := addTestPilot(fleet)
	flightID := scheduleTestFlight(t, fleet, jetID, pilotID)
	fleet.UpdateFlightStatus(ctx, flightID, entity.FlightInProgress)

	jet, _ := fleet.GetJet(jetID)
	edited := *jet
	edited.Status = entity.JetAvailable
	if err := fleet.UpdateJet(ctx, edited); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got := jetStatus(t, fleet, jetID); got != entity.JetInFlight {
		t.Fatalf("active flight: manual edit must not stick, got %s", got)
	}

	// With nothing active the manual value is kept.
	fleet.UpdateFlightStatus(ctx, flightID, entity.FlightCompleted)
	jet, _ = fleet.GetJet(jetID)
	edited = *jet
	edited.Status = entity.JetMaintenance
	if err := fleet.UpdateJet(ctx, edited); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got := jetStatus(t, fleet, jetID); got != entity.JetMaintenance {
		t.Fatalf("idle jet: manual edit should stick, got %s", got)
	}
}
