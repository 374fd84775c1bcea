// internal/domain/entity/activity.go
package entity

import "time"

// Activity is a single audit-log entry recorded after a successful
// mutation. Actor fields are filled in by the web layer when known.
type Activity struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     string    `json:"user_id,omitempty" bson:"userId,omitempty"`
	Username   string    `json:"username,omitempty" bson:"username,omitempty"`
	Action     string    `json:"action" bson:"action"`
	EntityType string    `json:"entity_type" bson:"entityType"`
	EntityID   string    `json:"entity_id" bson:"entityId"`
	Details    string    `json:"details,omitempty" bson:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}
