package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"manajet-service/internal/domain/entity"
)

// ScheduleMaintenance creates a maintenance record in Scheduled state.
// Only the jet reference is validated; crew and capacity rules do not
// apply. Warnings flag advisory conflicts with the jet's activity.
func (s *FleetService) ScheduleMaintenance(ctx context.Context, record entity.MaintenanceRecord) (string, []string, error) {
	if strings.TrimSpace(record.MaintenanceID) == "" {
		record.MaintenanceID = nextID(MaintenanceIDPrefix, keysOf(s.state.Maintenance))
	}
	if _, exists := s.state.Maintenance[record.MaintenanceID]; exists {
		return "", nil, fmt.Errorf("maintenance %s: %w", record.MaintenanceID, ErrConflict)
	}
	if _, ok := s.state.Jets[record.JetID]; !ok {
		return "", nil, fmt.Errorf("jet %s: %w", record.JetID, ErrNotFound)
	}

	warnings := s.jetConflictWarnings(record.JetID)
	for _, w := range warnings {
		s.logger.Warn("Maintenance scheduled against busy jet",
			"maintenanceID", record.MaintenanceID, "conflict", w)
	}

	record.Status = entity.MaintenanceScheduled
	record.CompletedDate = ""
	s.state.Maintenance[record.MaintenanceID] = &record
	s.logger.Info("Maintenance scheduled", "maintenanceID", record.MaintenanceID,
		"jetID", record.JetID, "type", record.MaintenanceType)
	return record.MaintenanceID, warnings, s.committed(ctx, "maintenance", "created", record.MaintenanceID, record.JetID)
}

// UpdateMaintenance replaces the full maintenance record. The status field
// is taken as given and does not touch jet state (UpdateMaintenanceStatus
// owns that).
func (s *FleetService) UpdateMaintenance(ctx context.Context, record entity.MaintenanceRecord) error {
	if _, ok := s.state.Maintenance[record.MaintenanceID]; !ok {
		return fmt.Errorf("maintenance %s: %w", record.MaintenanceID, ErrNotFound)
	}
	if _, ok := s.state.Jets[record.JetID]; !ok {
		return fmt.Errorf("jet %s: %w", record.JetID, ErrNotFound)
	}

	s.state.Maintenance[record.MaintenanceID] = &record
	s.logger.Info("Maintenance updated", "maintenanceID", record.MaintenanceID)
	return s.committed(ctx, "maintenance", "updated", record.MaintenanceID, record.JetID)
}

// DeleteMaintenance removes a maintenance record.
func (s *FleetService) DeleteMaintenance(ctx context.Context, maintenanceID string) error {
	if _, ok := s.state.Maintenance[maintenanceID]; !ok {
		return fmt.Errorf("maintenance %s: %w", maintenanceID, ErrNotFound)
	}
	delete(s.state.Maintenance, maintenanceID)
	s.logger.Info("Maintenance deleted", "maintenanceID", maintenanceID)
	return s.committed(ctx, "maintenance", "deleted", maintenanceID, "")
}

// GetMaintenance returns the maintenance record or ErrNotFound.
func (s *FleetService) GetMaintenance(maintenanceID string) (*entity.MaintenanceRecord, error) {
	record, ok := s.state.Maintenance[maintenanceID]
	if !ok {
		return nil, fmt.Errorf("maintenance %s: %w", maintenanceID, ErrNotFound)
	}
	return record, nil
}

// ListMaintenance returns maintenance records, optionally filtered by jet
// and/or status.
func (s *FleetService) ListMaintenance(jetID string, status entity.MaintenanceStatus) []*entity.MaintenanceRecord {
	var records []*entity.MaintenanceRecord
	for _, record := range s.state.Maintenance {
		if jetID != "" && record.JetID != jetID {
			continue
		}
		if status != "" && record.Status != status {
			continue
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].MaintenanceID < records[j].MaintenanceID })
	return records
}
