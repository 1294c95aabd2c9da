package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserSignedUp   EventType = "user_signed_up"
	EventProductCreated EventType = "product_created"
	EventProductUpdated EventType = "product_updated"
	EventProductDeleted EventType = "product_deleted"
)

// AllTypes lists every event type the service emits.
var AllTypes = []EventType{
	EventUserSignedUp,
	EventProductCreated,
	EventProductUpdated,
	EventProductDeleted,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	ProductID string      `json:"product_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// UserSignedUpPayload payload.
type UserSignedUpPayload struct {
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
}

// ProductPayload carries the product fields after the change.
type ProductPayload struct {
	Title    string   `json:"title"`
	Material *string  `json:"material,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Company  *string  `json:"company,omitempty"`
}
