// internal/domain/entity/crew_member.go
package entity

// CrewMember is a pilot or cabin crew member. LicenseNumber is required
// when CrewType is Pilot.
type CrewMember struct {
	CrewID         string   `json:"crew_id"`
	Name           string   `json:"name"`
	CrewType       CrewType `json:"crew_type"`
	PassportNumber string   `json:"passport_number"`
	Nationality    string   `json:"nationality"`
	PassportExpiry string   `json:"passport_expiry"`
	Contact        string   `json:"contact"`
	LicenseNumber  string   `json:"license_number,omitempty"`
}
