package usecase

import (
	"context"

	"manajet-service/internal/domain/entity"
	"manajet-service/pkg/logger"
	"manajet-service/pkg/metrics"
)

// Shared metrics instance: promauto registers against the default
// registry, so the test binary creates it exactly once.
var testMetrics = metrics.NewMetrics("manajet_test")

// memFleetRepo keeps the last saved snapshot in memory.
type memFleetRepo struct {
	saves int
	last  *entity.Snapshot
}

func (r *memFleetRepo) Load(ctx context.Context) (*entity.Snapshot, error) {
	return r.last, nil
}

func (r *memFleetRepo) Save(ctx context.Context, snapshot *entity.Snapshot) error {
	r.saves++
	r.last = snapshot
	return nil
}

// memActivityRepo collects audit entries in memory.
type memActivityRepo struct {
	entries []*entity.Activity
}

func (r *memActivityRepo) Record(ctx context.Context, activity *entity.Activity) error {
	r.entries = append(r.entries, activity)
	return nil
}

func (r *memActivityRepo) Recent(ctx context.Context, limit int64) ([]*entity.Activity, error) {
	if int64(len(r.entries)) <= limit {
		return r.entries, nil
	}
	return r.entries[int64(len(r.entries))-limit:], nil
}

func newTestFleet() (*FleetService, *memFleetRepo, *memActivityRepo) {
	repo := &memFleetRepo{}
	activity := &memActivityRepo{}
	fleet := NewFleetService(repo, activity, logger.NewNop(), testMetrics)
	return fleet, repo, activity
}

// Fixture helpers.

func addTestJet(fleet *FleetService, capacity int, tailNumber string) string {
	id, _ := fleet.AddJet(context.Background(), entity.Jet{
		Model:      "Gulfstream G650",
		TailNumber: tailNumber,
		Capacity:   capacity,
	})
	return id
}

func addTestPilot(fleet *FleetService) string {
	id, _ := fleet.AddCrew(context.Background(), entity.CrewMember{
		Name:          "Sam Turner",
		CrewType:      entity.CrewPilot,
		LicenseNumber: "ATP-9931",
	})
	return id
}

func addTestCabinCrew(fleet *FleetService) string {
	id, _ := fleet.AddCrew(context.Background(), entity.CrewMember{
		Name:     "Dana Reyes",
		CrewType: entity.CrewCabin,
	})
	return id
}

func addTestPassenger(fleet *FleetService) string {
	id, _ := fleet.AddPassenger(context.Background(), entity.Passenger{
		Name:           "Alex Morgan",
		PassportNumber: "X1234567",
		Nationality:    "US",
	})
	return id
}
