package repository

import (
	"context"
	"encoding/json"

	"manajet-service/internal/domain/entity"
	"manajet-service/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFleetRepository implements the FleetRepository interface on Postgres
type GormFleetRepository struct {
	db *gorm.DB
}

// NewGormFleetRepository creates a new GORM fleet repository and migrates
// the schema
func NewGormFleetRepository(db *gorm.DB) (repository.FleetRepository, error) {
	err := db.AutoMigrate(
		&Users{}, &Customers{}, &Passengers{}, &CrewMembers{},
		&Jets{}, &Flights{}, &MaintenanceRecords{},
	)
	if err != nil {
		return nil, err
	}
	return &GormFleetRepository{db: db}, nil
}

// Users GORM model for database mapping
type Users struct {
	UserID       string `gorm:"column:user_id;primaryKey"`
	Username     string `gorm:"column:username;unique"`
	PasswordHash string `gorm:"column:password_hash"`
	Role         string `gorm:"column:role"`
	RelatedID    string `gorm:"column:related_id"`
	Email        string `gorm:"column:email"`
}

func (Users) TableName() string { return "users" }

// Customers GORM model for database mapping
type Customers struct {
	CustomerID string `gorm:"column:customer_id;primaryKey"`
	Name       string `gorm:"column:name"`
	Company    string `gorm:"column:company"`
	Email      string `gorm:"column:email"`
	Phone      string `gorm:"column:phone"`
	Address    string `gorm:"column:address"`
}

func (Customers) TableName() string { return "customers" }

// Passengers GORM model for database mapping
type Passengers struct {
	PassengerID    string `gorm:"column:passenger_id;primaryKey"`
	Name           string `gorm:"column:name"`
	PassportNumber string `gorm:"column:passport_number"`
	Nationality    string `gorm:"column:nationality"`
	PassportExpiry string `gorm:"column:passport_expiry"`
	Contact        string `gorm:"column:contact"`
	CustomerID     string `gorm:"column:customer_id;index"`
}

func (Passengers) TableName() string { return "passengers" }

// CrewMembers GORM model for database mapping
type CrewMembers struct {
	CrewID         string `gorm:"column:crew_id;primaryKey"`
	Name           string `gorm:"column:name"`
	CrewType       string `gorm:"column:crew_type"`
	PassportNumber string `gorm:"column:passport_number"`
	Nationality    string `gorm:"column:nationality"`
	PassportExpiry string `gorm:"column:passport_expiry"`
	Contact        string `gorm:"column:contact"`
	LicenseNumber  string `gorm:"column:license_number"`
}

func (CrewMembers) TableName() string { return "crew" }

// Jets GORM model for database mapping
type Jets struct {
	JetID      string `gorm:"column:jet_id;primaryKey"`
	Model      string `gorm:"column:model"`
	TailNumber string `gorm:"column:tail_number;unique"`
	Capacity   int    `gorm:"column:capacity"`
	CustomerID string `gorm:"column:customer_id;index"`
	Status     string `gorm:"column:status"`
}

func (Jets) TableName() string { return "jets" }

// Flights GORM model for database mapping. Passenger and crew ID lists are
// stored as JSON text columns.
type Flights struct {
	FlightID      string `gorm:"column:flight_id;primaryKey"`
	JetID         string `gorm:"column:jet_id;index"`
	Departure     string `gorm:"column:departure"`
	Destination   string `gorm:"column:destination"`
	DepartureTime string `gorm:"column:departure_time"`
	ArrivalTime   string `gorm:"column:arrival_time"`
	PassengerIDs  string `gorm:"column:passenger_ids;type:jsonb"`
	CrewIDs       string `gorm:"column:crew_ids;type:jsonb"`
	Status        string `gorm:"column:status"`
}

func (Flights) TableName() string { return "flights" }

// MaintenanceRecords GORM model for database mapping
type MaintenanceRecords struct {
	MaintenanceID   string `gorm:"column:maintenance_id;primaryKey"`
	JetID           string `gorm:"column:jet_id;index"`
	ScheduledDate   string `gorm:"column:scheduled_date"`
	MaintenanceType string `gorm:"column:maintenance_type"`
	Description     string `gorm:"column:description"`
	Status          string `gorm:"column:status"`
	CompletedDate   string `gorm:"column:completed_date"`
}

func (MaintenanceRecords) TableName() string { return "maintenance" }

func marshalIDs(ids []string) string {
	if ids == nil {
		ids = []string{}
	}
	data, _ := json.Marshal(ids)
	return string(data)
}

func unmarshalIDs(data string) []string {
	var ids []string
	if data != "" {
		json.Unmarshal([]byte(data), &ids)
	}
	return ids
}

// Load reads every table into a snapshot
func (r *GormFleetRepository) Load(ctx context.Context) (*entity.Snapshot, error) {
	snapshot := entity.NewSnapshot()
	db := r.db.WithContext(ctx)

	var users []Users
	if err := db.Find(&users).Error; err != nil {
		return nil, err
	}
	for _, row := range users {
		snapshot.Users[row.UserID] = &entity.User{
			UserID:       row.UserID,
			Username:     row.Username,
			PasswordHash: row.PasswordHash,
			Role:         entity.Role(row.Role),
			RelatedID:    row.RelatedID,
			Email:        row.Email,
		}
	}

	var customers []Customers
	if err := db.Find(&customers).Error; err != nil {
		return nil, err
	}
	for _, row := range customers {
		snapshot.Customers[row.CustomerID] = &entity.Customer{
			CustomerID: row.CustomerID,
			Name:       row.Name,
			Company:    row.Company,
			Email:      row.Email,
			Phone:      row.Phone,
			Address:    row.Address,
		}
	}

	var passengers []Passengers
	if err := db.Find(&passengers).Error; err != nil {
		return nil, err
	}
	for _, row := range passengers {
		snapshot.Passengers[row.PassengerID] = &entity.Passenger{
			PassengerID:    row.PassengerID,
			Name:           row.Name,
			PassportNumber: row.PassportNumber,
			Nationality:    row.Nationality,
			PassportExpiry: row.PassportExpiry,
			Contact:        row.Contact,
			CustomerID:     row.CustomerID,
		}
	}

	var crew []CrewMembers
	if err := db.Find(&crew).Error; err != nil {
		return nil, err
	}
	for _, row := range crew {
		snapshot.Crew[row.CrewID] = &entity.CrewMember{
			CrewID:         row.CrewID,
			Name:           row.Name,
			CrewType:       entity.CrewType(row.CrewType),
			PassportNumber: row.PassportNumber,
			Nationality:    row.Nationality,
			PassportExpiry: row.PassportExpiry,
			Contact:        row.Contact,
			LicenseNumber:  row.LicenseNumber,
		}
	}

	var jets []Jets
	if err := db.Find(&jets).Error; err != nil {
		return nil, err
	}
	for _, row := range jets {
		snapshot.Jets[row.JetID] = &entity.Jet{
			JetID:      row.JetID,
			Model:      row.Model,
			TailNumber: row.TailNumber,
			Capacity:   row.Capacity,
			CustomerID: row.CustomerID,
			Status:     entity.JetStatus(row.Status),
		}
	}

	var flights []Flights
	if err := db.Find(&flights).Error; err != nil {
		return nil, err
	}
	for _, row := range flights {
		snapshot.Flights[row.FlightID] = &entity.Flight{
			FlightID:      row.FlightID,
			JetID:         row.JetID,
			Departure:     row.Departure,
			Destination:   row.Destination,
			DepartureTime: row.DepartureTime,
			ArrivalTime:   row.ArrivalTime,
			PassengerIDs:  unmarshalIDs(row.PassengerIDs),
			CrewIDs:       unmarshalIDs(row.CrewIDs),
			Status:        entity.FlightStatus(row.Status),
		}
	}

	var maintenance []MaintenanceRecords
	if err := db.Find(&maintenance).Error; err != nil {
		return nil, err
	}
	for _, row := range maintenance {
		snapshot.Maintenance[row.MaintenanceID] = &entity.MaintenanceRecord{
			MaintenanceID:   row.MaintenanceID,
			JetID:           row.JetID,
			ScheduledDate:   row.ScheduledDate,
			MaintenanceType: entity.MaintenanceType(row.MaintenanceType),
			Description:     row.Description,
			Status:          entity.MaintenanceStatus(row.Status),
			CompletedDate:   row.CompletedDate,
		}
	}

	return snapshot, nil
}

// Save upserts every record in the snapshot and prunes rows whose IDs are
// no longer present, all in one transaction
func (r *GormFleetRepository) Save(ctx context.Context, snapshot *entity.Snapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userIDs := make([]string, 0, len(snapshot.Users))
		for id, user := range snapshot.Users {
			userIDs = append(userIDs, id)
			row := Users{
				UserID:       user.UserID,
				Username:     user.Username,
				PasswordHash: user.PasswordHash,
				Role:         string(user.Role),
				RelatedID:    user.RelatedID,
				Email:        user.Email,
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
				return err
			}
		}
		if err := pruneRows(tx, &Users{}, "user_id", userIDs); err != nil {
			return err
		}

		customerIDs := make([]string, 0, len(snapshot.Customers))
		for id, customer := range snapshot.Customers {
			customerIDs = append(customerIDs, id)
			row := Customers{
				CustomerID: customer.CustomerID,
				Name:       customer.Name,
				Company:    customer.Company,
				Email:      customer.Email,
				Phone:      customer.Phone,
				Address:    customer.Address,
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
				return err
			}
		}
		if err := pruneRows(tx, &Customers{}, "customer_id", customerIDs); err != nil {
			return err
		}

		passengerIDs := make([]string, 0, len(snapshot.Passengers))
		for id, passenger := range snapshot.Passengers {
			passengerIDs = append(passengerIDs, id)
			row := Passengers{
				PassengerID:    passenger.PassengerID,
				Name:           passenger.Name,
				PassportNumber: passenger.PassportNumber,
				Nationality:    passenger.Nationality,
				PassportExpiry: passenger.PassportExpiry,
				Contact:        passenger.Contact,
				CustomerID:     passenger.CustomerID,
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
				return err
			}
		}
		if err := pruneRows(tx, &Passengers{}, "passenger_id", passengerIDs); err != nil {
			return err
		}

		crewIDs := make([]string, 0, len(snapshot.Crew))
		for id, crew := range snapshot.Crew {
			crewIDs = append(crewIDs, id)
			row := CrewMembers{
				CrewID:         crew.CrewID,
				Name:           crew.Name,
				CrewType:       string(crew.CrewType),
				PassportNumber: crew.PassportNumber,
				Nationality:    crew.Nationality,
				PassportExpiry: crew.PassportExpiry,
				Contact:        crew.Contact,
				LicenseNumber:  crew.LicenseNumber,
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
				return err
			}
		}
		if err := pruneRows(tx, &CrewMembers{}, "crew_id", crewIDs); err != nil {
			return err
		}

		jetIDs := make([]string, 0, len(snapshot.Jets))
		for id, jet := range snapshot.Jets {
			jetIDs = append(jetIDs, id)
			row := Jets{
				JetID:      jet.JetID,
				Model:      jet.Model,
				TailNumber: jet.TailNumber,
				Capacity:   jet.Capacity,
				CustomerID: jet.CustomerID,
				Status:     string(jet.Status),
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
				return err
			}
		}
		if err := pruneRows(tx, &Jets{}, "jet_id", jetIDs); err != nil {
			return err
		}

		flightIDs := make([]string, 0, len(snapshot.Flights))
		for id, flight := range snapshot.Flights {
			flightIDs = append(flightIDs, id)
			row := Flights{
				FlightID:      flight.FlightID,
				JetID:         flight.JetID,
				Departure:     flight.Departure,
				Destination:   flight.Destination,
				DepartureTime: flight.DepartureTime,
				ArrivalTime:   flight.ArrivalTime,
				PassengerIDs:  marshalIDs(flight.PassengerIDs),
				CrewIDs:       marshalIDs(flight.CrewIDs),
				Status:        string(flight.Status),
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
				return err
			}
		}
		if err := pruneRows(tx, &Flights{}, "flight_id", flightIDs); err != nil {
			return err
		}

		maintenanceIDs := make([]string, 0, len(snapshot.Maintenance))
		for id, record := range snapshot.Maintenance {
			maintenanceIDs = append(maintenanceIDs, id)
			row := MaintenanceRecords{
				MaintenanceID:   record.MaintenanceID,
				JetID:           record.JetID,
				ScheduledDate:   record.ScheduledDate,
				MaintenanceType: string(record.MaintenanceType),
				Description:     record.Description,
				Status:          string(record.Status),
				CompletedDate:   record.CompletedDate,
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
				return err
			}
		}
		return pruneRows(tx, &MaintenanceRecords{}, "maintenance_id", maintenanceIDs)
	})
}

// pruneRows deletes rows whose primary key is no longer in the snapshot
func pruneRows(tx *gorm.DB, model interface{}, column string, keep []string) error {
	if len(keep) == 0 {
		return tx.Where("1 = 1").Delete(model).Error
	}
	return tx.Where(column+" NOT IN ?", keep).Delete(model).Error
}
